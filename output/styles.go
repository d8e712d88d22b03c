// Package output provides styling helpers for terminal output.
package output

import (
	"io"

	"github.com/muesli/termenv"
)

// Styles provides styled output helpers for the CLI.
type Styles struct {
	output *termenv.Output
}

// NewStyles creates a new Styles instance for the given writer.
func NewStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w),
	}
}

// NewPlainStyles creates a Styles instance that never emits escape codes,
// regardless of the terminal behind w.
func NewPlainStyles(w io.Writer) *Styles {
	return &Styles{
		output: termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii)),
	}
}

// Key returns a styled dict key (yellow).
func (s *Styles) Key(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("3")).
		String()
}

// Number returns a styled number (magenta).
func (s *Styles) Number(text string) string {
	return s.output.String(text).
		Foreground(s.output.Color("5")).
		String()
}

// Keyword returns a styled keyword (bold).
func (s *Styles) Keyword(text string) string {
	return s.output.String(text).
		Bold().
		String()
}

// Dim returns dimmed text (for secondary information).
func (s *Styles) Dim(text string) string {
	return s.output.String(text).
		Faint().
		String()
}

// Word returns a decoded word colored by the quoting style it was read
// with: bare words plain, braced words blue, quoted words green, words
// mixing several styles cyan.
func (s *Styles) Word(style, text string) string {
	var color string
	switch style {
	case "BRACED":
		color = "4"
	case "QUOTED":
		color = "2"
	case "MIXED":
		color = "6"
	default:
		return text
	}
	return s.output.String(text).
		Foreground(s.output.Color(color)).
		String()
}

// Timing returns a styled timing string: red for slow operations, dimmed
// otherwise.
func (s *Styles) Timing(text string, isSlowOperation bool) string {
	if isSlowOperation {
		return s.output.String(text).
			Foreground(s.output.Color("1")).
			String()
	}
	return s.Dim(text)
}
