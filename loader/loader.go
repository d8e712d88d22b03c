// Package loader reads list-format files and decodes them into values.
//
// A Loader decodes its input in one of four shapes, selected with WithMode:
//   - ModeList: a list of words (the default)
//   - ModeDict: alternating keys and values
//   - ModeScalar: exactly one word
//   - ModeNested: a list whose elements are themselves lists
//
// Example usage:
//
//	ldr := loader.New(loader.WithMode(loader.ModeDict))
//	result, err := ldr.Load(ctx, "settings.tcl")
//	d := result.Value.(*ast.Dict)
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/parser"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

// Mode selects the shape the input is decoded into.
type Mode int

const (
	ModeList Mode = iota
	ModeDict
	ModeScalar
	ModeNested
)

var modeNames = []string{"list", "dict", "scalar", "nested"}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a mode name. The empty string selects ModeList.
func ParseMode(s string) (Mode, error) {
	if s == "" {
		return ModeList, nil
	}
	for i, name := range modeNames {
		if name == s {
			return Mode(i), nil
		}
	}
	return ModeList, fmt.Errorf("unknown mode %q (want list, dict, scalar or nested)", s)
}

// Loader reads and decodes list-format input.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithMode(ModeDict), WithEscapeMode(escape.Literal))
type Loader struct {
	// Mode selects the decoded shape.
	Mode Mode

	// Escape selects how backslash sequences are decoded.
	Escape escape.Mode
}

// Option configures how input is decoded.
type Option func(*Loader)

// WithMode sets the decoded shape.
func WithMode(mode Mode) Option {
	return func(l *Loader) {
		l.Mode = mode
	}
}

// WithEscapeMode sets the backslash decoding rules.
func WithEscapeMode(mode escape.Mode) Option {
	return func(l *Loader) {
		l.Escape = mode
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		Mode:   ModeList,
		Escape: escape.Mnemonic,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Result is a decoded input together with its source.
type Result struct {
	// Filename is the name errors were reported against.
	Filename string

	// Source holds the raw input, for rendering error context.
	Source []byte

	// Value is a List for ModeList, a *Dict for ModeDict, a Text for
	// ModeScalar and a List of Lists for ModeNested.
	Value ast.Value

	// Tokens holds the words of the input with their positions. Only set
	// for ModeList and ModeDict.
	Tokens []parser.Token
}

// Load reads filename and decodes it.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	timer := telemetry.StartTimer(ctx, fmt.Sprintf("loader.read %s", filepath.Base(filename)))
	data, err := os.ReadFile(filename)
	timer.End()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes decodes data, reporting errors against filename.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	opts := []parser.Option{
		parser.WithFilename(filename),
		parser.WithEscapeMode(l.Escape),
	}

	result := &Result{
		Filename: filename,
		Source:   data,
	}

	switch l.Mode {
	case ModeList:
		tokens, err := parser.ParseTokens(ctx, data, opts...)
		if err != nil {
			return nil, err
		}
		result.Tokens = tokens
		result.Value = ast.NewTextList(parser.Texts(tokens)...)

	case ModeDict:
		tokens, err := parser.ParseTokens(ctx, data, opts...)
		if err != nil {
			return nil, err
		}
		d, err := parser.DictFromTokens(tokens, opts...)
		if err != nil {
			return nil, err
		}
		result.Tokens = tokens
		result.Value = d

	case ModeScalar:
		s, err := parser.ParseScalar(ctx, data, opts...)
		if err != nil {
			return nil, err
		}
		result.Value = ast.Text(s)

	case ModeNested:
		rows, err := parser.ParseNested(ctx, data, opts...)
		if err != nil {
			return nil, err
		}
		list := make(ast.List, len(rows))
		for i, row := range rows {
			list[i] = ast.NewTextList(row...)
		}
		result.Value = list

	default:
		return nil, fmt.Errorf("unknown mode %d", l.Mode)
	}

	return result, nil
}
