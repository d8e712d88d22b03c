// Package ast defines the structured values exchanged through the list format.
//
// A Value is exactly one of Text, Number, List or *Dict. The set is closed:
// the marker method is unexported, so code switching over a Value only ever
// has to handle these four cases.
//
// The wire format itself is untyped. Decoding always yields strings; the
// structured shape only exists on the way out, where the formatter turns a
// Value into text, and when a caller reinterprets a decoded token by parsing
// it again.
package ast

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the variant of a Value.
type Kind uint8

const (
	KindText Kind = iota + 1
	KindNumber
	KindList
	KindDict
)

var kindNames = map[Kind]string{
	KindText:   "text",
	KindNumber: "number",
	KindList:   "list",
	KindDict:   "dict",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Value is a structured value that can be serialized to the list format.
type Value interface {
	Kind() Kind
	value()
}

// Text is a string scalar.
type Text string

var _ Value = Text("")

func (Text) Kind() Kind { return KindText }
func (Text) value()     {}

// String returns the text itself.
func (t Text) String() string { return string(t) }

// Number is a numeric scalar. It is written using its canonical decimal
// text, without exponent and without trailing fractional zeros.
type Number struct {
	decimal.Decimal
}

var _ Value = Number{}

func (Number) Kind() Kind { return KindNumber }
func (Number) value()     {}

// Text returns the canonical decimal text of the number.
func (n Number) Text() string {
	return n.Decimal.String()
}

// List is an ordered sequence of values.
type List []Value

var _ Value = List(nil)

func (List) Kind() Kind { return KindList }
func (List) value()     {}

// Strings returns the list of its text elements. It reports false when any
// element is not Text.
func (l List) Strings() ([]string, bool) {
	out := make([]string, len(l))
	for i, v := range l {
		t, ok := v.(Text)
		if !ok {
			return nil, false
		}
		out[i] = string(t)
	}
	return out, true
}

// Flatten returns the scalar leaves of v in wire order. Dicts contribute
// their keys and values alternately, which is how they appear on the wire.
func Flatten(v Value) []string {
	var out []string
	flatten(v, &out)
	return out
}

func flatten(v Value, out *[]string) {
	switch v := v.(type) {
	case Text:
		*out = append(*out, string(v))
	case Number:
		*out = append(*out, v.Text())
	case List:
		for _, e := range v {
			flatten(e, out)
		}
	case *Dict:
		for _, e := range v.Entries() {
			*out = append(*out, e.Key)
			flatten(e.Value, out)
		}
	}
}

// Describe renders a short, human readable summary of a value for logs and
// diagnostics. It is not the wire format.
func Describe(v Value) string {
	var buf strings.Builder
	describe(v, &buf)
	return buf.String()
}

func describe(v Value, buf *strings.Builder) {
	switch v := v.(type) {
	case nil:
		buf.WriteString("<nil>")
	case Text:
		buf.WriteByte('"')
		buf.WriteString(string(v))
		buf.WriteByte('"')
	case Number:
		buf.WriteString(v.Text())
	case List:
		buf.WriteByte('[')
		for i, e := range v {
			if i > 0 {
				buf.WriteString(", ")
			}
			describe(e, buf)
		}
		buf.WriteByte(']')
	case *Dict:
		buf.WriteByte('{')
		for i, e := range v.Entries() {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(e.Key)
			buf.WriteString(": ")
			describe(e.Value, buf)
		}
		buf.WriteByte('}')
	}
}
