package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robinvdvleuten/tclcodec/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	source []byte
}

// NewErrorRenderer creates a renderer with source content for context.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{source: source}
}

// Render formats a single error. Positioned errors get the surrounding
// source lines and a caret under the failing column; anything else is
// returned as its message.
func (r *ErrorRenderer) Render(err error) string {
	pos, ok := errors.Position(err)
	if !ok {
		return err.Error()
	}

	snippet, ok := errors.SourceSnippet(pos, r.source)
	if !ok {
		return err.Error()
	}

	var buf strings.Builder

	buf.WriteString(errorStyle.Render(err.Error()))
	buf.WriteString("\n\n")

	for _, line := range snippet.Lines {
		buf.WriteString("   ")
		buf.WriteString(errContextStyle.Render(line.Text))
		buf.WriteByte('\n')

		if line.IsError {
			buf.WriteString("   ")
			buf.WriteString(snippet.CaretPadding)
			buf.WriteString(errCaretStyle.Render("^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(r.Render(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}
