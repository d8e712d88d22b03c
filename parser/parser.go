// Package parser decodes list-format text into words, lists and dicts.
//
// The format is the data subset of Tcl list syntax: words are separated by
// blanks, semicolons or newlines, and quoted with {braces} (verbatim),
// "double quotes" (backslash-decoded) or backslash escapes. Command
// substitution with [brackets] is rejected; this package never evaluates
// anything.
//
// Every entry point is stateless and safe for concurrent use. Errors are
// returned as *ParseError and abort the whole parse.
package parser

import (
	"context"
	"errors"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

// Option configures parsing.
type Option func(*config)

type config struct {
	filename string
	mode     escape.Mode
}

func newConfig(opts []Option) config {
	cfg := config{mode: escape.Mnemonic}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithFilename sets the filename reported in error positions.
func WithFilename(filename string) Option {
	return func(c *config) {
		c.filename = filename
	}
}

// WithEscapeMode selects how backslash sequences are decoded.
// The default is escape.Mnemonic.
func WithEscapeMode(mode escape.Mode) Option {
	return func(c *config) {
		c.mode = mode
	}
}

// ParseTokens decodes every word in source, keeping source positions.
func ParseTokens(ctx context.Context, source []byte, opts ...Option) ([]Token, error) {
	timer := telemetry.StartTimer(ctx, "parser.tokens")
	defer timer.End()

	return scan(ctx, source, newConfig(opts))
}

// ParseList decodes source as a list and returns its elements. Empty input
// yields an empty list.
func ParseList(ctx context.Context, source []byte, opts ...Option) ([]string, error) {
	timer := telemetry.StartTimer(ctx, "parser.list")
	defer timer.End()

	tokens, err := scan(ctx, source, newConfig(opts))
	if err != nil {
		return nil, err
	}
	return Texts(tokens), nil
}

// ParseDict decodes source as a list of alternating keys and values.
// Duplicate keys keep their first position and take the last value.
func ParseDict(ctx context.Context, source []byte, opts ...Option) (*ast.Dict, error) {
	timer := telemetry.StartTimer(ctx, "parser.dict")
	defer timer.End()

	cfg := newConfig(opts)
	tokens, err := scan(ctx, source, cfg)
	if err != nil {
		return nil, err
	}
	return dictFromTokens(tokens, cfg.filename)
}

// DictFromTokens pairs up words already returned by ParseTokens, with the
// same rules as ParseDict. Only WithFilename is consulted among opts.
func DictFromTokens(tokens []Token, opts ...Option) (*ast.Dict, error) {
	return dictFromTokens(tokens, newConfig(opts).filename)
}

func dictFromTokens(tokens []Token, filename string) (*ast.Dict, error) {
	if len(tokens)%2 != 0 {
		last := tokens[len(tokens)-1]
		return nil, newParseError(ErrOddDictArity, last.Position(filename),
			"uneven element count in dict (%d elements, key %q has no value)", len(tokens), last.Text)
	}

	d := &ast.Dict{}
	for i := 0; i < len(tokens); i += 2 {
		d.Set(tokens[i].Text, ast.Text(tokens[i+1].Text))
	}
	return d, nil
}

// ParseScalar decodes source as exactly one word.
func ParseScalar(ctx context.Context, source []byte, opts ...Option) (string, error) {
	timer := telemetry.StartTimer(ctx, "parser.scalar")
	defer timer.End()

	cfg := newConfig(opts)
	l := NewLexer(source, cfg.filename, opts...)

	tok, ok, err := l.Next()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", newParseError(ErrEmpty, l.Position(), "nothing to load")
	}

	extra, ok, err := l.Next()
	if err != nil {
		return "", err
	}
	if ok {
		return "", newParseError(ErrExtraTrailingData, extra.Position(cfg.filename),
			"extra data after value: %q", extra.Raw(source))
	}

	return tok.Text, nil
}

// ParseNested decodes source as a list and then decodes each element as a
// list again. It is the common shape of a list of records. An error inside
// an element is reported at the position of that element.
func ParseNested(ctx context.Context, source []byte, opts ...Option) ([][]string, error) {
	timer := telemetry.StartTimer(ctx, "parser.nested")
	defer timer.End()

	cfg := newConfig(opts)
	tokens, err := scan(ctx, source, cfg)
	if err != nil {
		return nil, err
	}

	inner := config{mode: cfg.mode}
	out := make([][]string, len(tokens))
	for i, tok := range tokens {
		elems, err := scan(ctx, []byte(tok.Text), inner)
		if err != nil {
			var parseErr *ParseError
			if errors.As(err, &parseErr) {
				return nil, newParseError(parseErr.Kind, tok.Position(cfg.filename),
					"in element %d: %s", i, parseErr.Message)
			}
			return nil, err
		}
		out[i] = Texts(elems)
	}
	return out, nil
}

func scan(ctx context.Context, source []byte, cfg config) ([]Token, error) {
	l := NewLexer(source, cfg.filename, WithEscapeMode(cfg.mode))

	var tokens []Token
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		tokens = append(tokens, tok)
	}

	if tokens == nil {
		tokens = []Token{}
	}
	return tokens, nil
}
