package cli

import (
	"context"
	stdErrors "errors"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/parser"
)

func TestErrorRenderer_RenderParseErrorWithSourceContext(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	source := []byte("a b\nc [d]")
	_, err := parser.ParseList(context.Background(), source, parser.WithFilename("data.tcl"))
	assert.Error(t, err)

	output := NewErrorRenderer(source).Render(err)

	expected := "data.tcl:2:3: command substitution is not supported\n\n" +
		"   a b\n" +
		"   c [d]\n" +
		"     ^\n"
	assert.Equal(t, expected, output)
}

func TestErrorRenderer_RenderParseErrorWithoutSourceContext(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos:     ast.Position{Filename: "data.tcl", Line: 6, Column: 4},
		Kind:    parser.ErrUnmatchedQuote,
		Message: "missing closing quote",
	}

	output := NewErrorRenderer(nil).Render(parseErr)
	assert.Equal(t, "data.tcl:6:4: missing closing quote", output)
}

func TestErrorRenderer_RenderWrappedError(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)

	source := []byte("{a b")
	_, err := parser.ParseList(context.Background(), source)
	assert.Error(t, err)

	wrapped := stdErrors.Join(err)
	output := NewErrorRenderer(source).Render(wrapped)
	assert.Contains(t, output, "   {a b\n")
	assert.Contains(t, output, "^")
}

func TestErrorRenderer_RenderUnpositioned(t *testing.T) {
	err := &ast.TypeError{Value: true, Path: "[0]"}
	output := NewErrorRenderer([]byte("ignored")).Render(err)
	assert.Equal(t, "unserializable type at [0]: bool", output)
}

func TestErrorRenderer_RenderPositionOutsideSource(t *testing.T) {
	parseErr := &parser.ParseError{
		Pos:     ast.Position{Line: 10, Column: 1},
		Kind:    parser.ErrUnmatchedBrace,
		Message: "missing closing brace",
	}

	output := NewErrorRenderer([]byte("one line")).Render(parseErr)
	assert.Equal(t, "10:1: missing closing brace", output)
}

func TestErrorRenderer_RenderAll(t *testing.T) {
	renderer := NewErrorRenderer(nil)

	assert.Equal(t, "", renderer.RenderAll(nil))

	output := renderer.RenderAll([]error{
		stdErrors.New("first"),
		stdErrors.New("second"),
	})
	assert.Equal(t, "first\n\nsecond", output)
}
