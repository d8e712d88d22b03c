package parser

import (
	"errors"
	"fmt"

	"github.com/robinvdvleuten/tclcodec/ast"
)

// Error kinds. Every *ParseError unwraps to exactly one of these, so callers
// can branch with errors.Is.
var (
	ErrUnmatchedBrace    = errors.New("unmatched brace")
	ErrUnmatchedQuote    = errors.New("unmatched quote")
	ErrInvalidEscape     = errors.New("invalid escape")
	ErrUnsupportedSyntax = errors.New("unsupported syntax")
	ErrOddDictArity      = errors.New("odd dict arity")
	ErrExtraTrailingData = errors.New("extra trailing data")
	ErrEmpty             = errors.New("empty input")
)

// ParseError is a failure at a specific position of the input. Parsing
// stops at the first error and no partial result is returned.
type ParseError struct {
	Pos     ast.Position
	Kind    error
	Message string
}

func (e *ParseError) Error() string {
	location := e.Pos.String()
	if e.Pos.Line == 0 {
		location = e.Pos.Filename
	}
	if location == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", location, e.Message)
}

// GetPosition returns where the error occurred.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// newParseError builds a positioned error of the given kind.
func newParseError(kind error, pos ast.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{
		Pos:     pos,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
