// Package errors provides error formatting infrastructure for codec errors.
// It separates error formatting from domain logic, allowing errors to be rendered in
// multiple formats (text, JSON) for different consumers (CLI, web UI, API).
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: Formats errors for command-line output with source context
//   - JSONFormatter: Formats errors as structured JSON for APIs and web interfaces
//
// Domain-specific error types remain in their respective packages (parser, ast),
// while this package handles the presentation layer.
package errors

import (
	"bytes"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positioned is implemented by errors that know where in the input they
// occurred.
type positioned interface {
	GetPosition() ast.Position
}

// Position returns the position carried by err or any error it wraps.
func Position(err error) (ast.Position, bool) {
	var p positioned
	if stdErrors.As(err, &p) {
		return p.GetPosition(), true
	}
	return ast.Position{}, false
}

// ContextLine is a single source line shown around an error.
type ContextLine struct {
	Number  int    // 1-indexed line number
	Text    string // Line content without the newline
	IsError bool   // Whether the error points into this line
}

// Snippet is the source excerpt shown for a positioned error.
type Snippet struct {
	Lines []ContextLine

	// CaretPadding is the whitespace that puts a caret under the error
	// column of the error line. Tabs are kept as tabs and wide runes count
	// for their display width.
	CaretPadding string
}

// SourceSnippet extracts up to two lines before and one line after pos.
// It returns false when pos does not point into source.
func SourceSnippet(pos ast.Position, source []byte) (Snippet, bool) {
	if source == nil || pos.Line <= 0 {
		return Snippet{}, false
	}

	lines := strings.Split(string(source), "\n")
	errLine := pos.Line - 1
	if errLine >= len(lines) {
		return Snippet{}, false
	}

	start := errLine - 2
	if start < 0 {
		start = 0
	}
	end := errLine + 1
	if end >= len(lines) {
		end = len(lines) - 1
	}

	var snippet Snippet
	for i := start; i <= end; i++ {
		text := strings.TrimSuffix(lines[i], "\r")
		snippet.Lines = append(snippet.Lines, ContextLine{
			Number:  i + 1,
			Text:    text,
			IsError: i == errLine,
		})
		if i == errLine {
			snippet.CaretPadding = caretPadding(text, pos.Column)
		}
	}

	return snippet, true
}

// caretPadding returns the indent for a caret under the 1-indexed byte
// column of line.
func caretPadding(line string, column int) string {
	n := column - 1
	if n <= 0 {
		return ""
	}
	if n > len(line) {
		n = len(line)
	}

	var buf strings.Builder
	for _, r := range line[:n] {
		if r == '\t' {
			buf.WriteByte('\t')
			continue
		}
		buf.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return buf.String()
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceContent []byte // Optional source content for parse error context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content for parse error context.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceContent = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Positioned errors are followed by the
// source lines around the position and a caret under the error column.
//
//	input.tcl:2:3: missing closing brace
//
//	   a b
//	   c {d
//	     ^
func (tf *TextFormatter) Format(err error) string {
	if pos, ok := Position(err); ok {
		if snippet, ok := SourceSnippet(pos, tf.sourceContent); ok {
			return formatSnippet(err.Error(), snippet)
		}
	}

	var typeErr *ast.TypeError
	if stdErrors.As(err, &typeErr) && typeErr.Path != "" {
		return fmt.Sprintf("%s\n\n   value: %#v", err.Error(), typeErr.Value)
	}

	return err.Error()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		// Add blank line between errors (but not after the last one)
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func formatSnippet(message string, snippet Snippet) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	for _, line := range snippet.Lines {
		buf.WriteString("   ")
		buf.WriteString(line.Text)
		buf.WriteByte('\n')

		if line.IsError {
			buf.WriteString("   ")
			buf.WriteString(snippet.CaretPadding)
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string                 `json:"type"`
	Message  string                 `json:"message"`
	Position *PositionJSON          `json:"position,omitempty"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	errJSON := jf.ToJSON(err)
	data, _ := json.Marshal(errJSON)
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := jf.FormatAllToSlice(errs)
	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.ToJSON(err))
	}
	return result
}

// ToJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) ToJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]interface{}),
	}

	if pos, ok := Position(err); ok {
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
			Offset:   pos.Offset,
		}
	}

	var parseErr *parser.ParseError
	var typeErr *ast.TypeError
	switch {
	case stdErrors.As(err, &parseErr):
		errJSON.Details["kind"] = parseErr.Kind.Error()
	case stdErrors.As(err, &typeErr):
		errJSON.Details["kind"] = ast.ErrUnserializableType.Error()
		errJSON.Details["type"] = fmt.Sprintf("%T", typeErr.Value)
		if typeErr.Path != "" {
			errJSON.Details["path"] = typeErr.Path
		}
	case stdErrors.Is(err, ast.ErrNumberRange):
		errJSON.Details["kind"] = ast.ErrNumberRange.Error()
	}

	return errJSON
}
