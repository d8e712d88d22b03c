// Package tclcodec reads and writes Tcl list syntax as plain data.
//
// Lists decode to []string, dicts to an insertion-ordered *ast.Dict and a
// single word to a string. Going the other way, Dump accepts ast values as
// well as plain Go strings, numbers, slices and maps, and writes each word in
// the shortest form that reads back unchanged.
//
//	words, err := tclcodec.ParseList(ctx, `a {b c} "d e"`)
//	// words == []string{"a", "b c", "d e"}
//
//	text, err := tclcodec.Dump([]string{"a", "b c"})
//	// text == "{a {b c}}"
//
// Nothing is ever evaluated: [command] substitution is rejected and $variables
// are plain text.
package tclcodec

import (
	"context"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/formatter"
	"github.com/robinvdvleuten/tclcodec/parser"
)

// Option configures decoding.
type Option = parser.Option

// WithFilename sets the filename reported in error positions.
func WithFilename(filename string) Option {
	return parser.WithFilename(filename)
}

// WithEscapeMode selects how backslash sequences are decoded.
func WithEscapeMode(mode escape.Mode) Option {
	return parser.WithEscapeMode(mode)
}

// ParseList decodes s as a list of words.
func ParseList(ctx context.Context, s string, opts ...Option) ([]string, error) {
	return parser.ParseList(ctx, []byte(s), opts...)
}

// ParseListBytes decodes src as a list of words.
func ParseListBytes(ctx context.Context, src []byte, opts ...Option) ([]string, error) {
	return parser.ParseList(ctx, src, opts...)
}

// ParseDict decodes s as alternating keys and values.
func ParseDict(ctx context.Context, s string, opts ...Option) (*ast.Dict, error) {
	return parser.ParseDict(ctx, []byte(s), opts...)
}

// ParseDictBytes decodes src as alternating keys and values.
func ParseDictBytes(ctx context.Context, src []byte, opts ...Option) (*ast.Dict, error) {
	return parser.ParseDict(ctx, src, opts...)
}

// ParseScalar decodes s as exactly one word.
func ParseScalar(ctx context.Context, s string, opts ...Option) (string, error) {
	return parser.ParseScalar(ctx, []byte(s), opts...)
}

// ParseScalarBytes decodes src as exactly one word.
func ParseScalarBytes(ctx context.Context, src []byte, opts ...Option) (string, error) {
	return parser.ParseScalar(ctx, src, opts...)
}

// Dump writes v as a single word. v is either an ast.Value or a Go value
// accepted by ast.FromGo.
func Dump(v any) (string, error) {
	val, err := toValue(v)
	if err != nil {
		return "", err
	}
	return formatter.Dump(val)
}

// DumpRaw writes the elements of a list, or the pairs of a dict, without
// enclosing braces.
func DumpRaw(v any) (string, error) {
	val, err := toValue(v)
	if err != nil {
		return "", err
	}
	return formatter.DumpRaw(val)
}

// DumpString writes a single word.
func DumpString(s string) string {
	return formatter.DumpString(s)
}

func toValue(v any) (ast.Value, error) {
	if val, ok := v.(ast.Value); ok && val != nil {
		return val, nil
	}
	return ast.FromGo(v)
}
