// Package formatter serializes structured values into the list format.
//
// Each scalar is written in the shortest form that reads back unchanged:
// bare, {braced} or backslash-escaped (see Classify). Lists and dicts are
// written as braced, space separated sequences; dicts as alternating keys
// and values in insertion order.
package formatter

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

// Formatter writes values in the list format. A Formatter is immutable once
// created and safe for concurrent use.
type Formatter struct {
	// Raw drops the outer braces of a top-level list or dict, so the result
	// can be spliced into a larger command as independent words.
	Raw bool

	// LineSeparated puts each top-level element (each key/value pair for a
	// dict) on its own line. Only applies with Raw.
	LineSeparated bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithRaw makes Format write the top-level value without outer braces.
func WithRaw() Option {
	return func(f *Formatter) {
		f.Raw = true
	}
}

// WithLineSeparated makes raw output use one line per top-level element.
func WithLineSeparated() Option {
	return func(f *Formatter) {
		f.LineSeparated = true
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var defaultFormatter = New()

// Dump writes v using the default formatter.
func Dump(v ast.Value) (string, error) {
	return defaultFormatter.Dump(v)
}

// DumpRaw writes v without outer braces using the default formatter.
func DumpRaw(v ast.Value) (string, error) {
	return defaultFormatter.DumpRaw(v)
}

// DumpAny converts a plain Go value with ast.FromGo and writes it.
func DumpAny(v any) (string, error) {
	val, err := ast.FromGo(v)
	if err != nil {
		return "", err
	}
	return Dump(val)
}

// Format writes v to w followed by a newline, honoring the Raw and
// LineSeparated settings.
func (f *Formatter) Format(ctx context.Context, v ast.Value, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	var (
		text string
		err  error
	)
	if f.Raw {
		text, err = f.DumpRaw(v)
	} else {
		text, err = f.Dump(v)
	}
	if err != nil {
		return err
	}

	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// DumpString writes a single word.
func (f *Formatter) DumpString(word string) string {
	return DumpString(word)
}

// Dump writes v as a single word. Lists and dicts are enclosed in braces.
func (f *Formatter) Dump(v ast.Value) (string, error) {
	var buf strings.Builder
	if err := writeValue(&buf, v, ""); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// DumpRaw writes the elements of a list, or the pairs of a dict, as
// separate words without enclosing braces. Scalars are written as by Dump.
func (f *Formatter) DumpRaw(v ast.Value) (string, error) {
	sep := " "
	if f.LineSeparated {
		sep = "\n"
	}

	var buf strings.Builder

	switch v := v.(type) {
	case ast.List:
		for i, elem := range v {
			if i > 0 {
				buf.WriteString(sep)
			}
			if err := writeValue(&buf, elem, indexPath("", i)); err != nil {
				return "", err
			}
		}

	case *ast.Dict:
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteString(sep)
			}
			buf.WriteString(DumpString(e.Key))
			buf.WriteByte(' ')
			if err := writeValue(&buf, e.Value, "."+e.Key); err != nil {
				return "", err
			}
		}

	default:
		if err := writeValue(&buf, v, ""); err != nil {
			return "", err
		}
	}

	return buf.String(), nil
}

// writeValue writes v into buf. path locates v for error messages.
func writeValue(buf *strings.Builder, v ast.Value, path string) error {
	switch v := v.(type) {
	case ast.Text:
		buf.WriteString(DumpString(string(v)))

	case ast.Number:
		buf.WriteString(DumpString(v.Text()))

	case ast.List:
		buf.WriteByte('{')
		for i, elem := range v {
			if i > 0 {
				buf.WriteByte(' ')
			}
			if err := writeValue(buf, elem, indexPath(path, i)); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	case *ast.Dict:
		buf.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteByte(' ')
			}
			buf.WriteString(DumpString(e.Key))
			buf.WriteByte(' ')
			if err := writeValue(buf, e.Value, path+"."+e.Key); err != nil {
				return err
			}
		}
		buf.WriteByte('}')

	default:
		return &ast.TypeError{Value: v, Path: path}
	}

	return nil
}

func indexPath(path string, i int) string {
	return path + "[" + strconv.Itoa(i) + "]"
}
