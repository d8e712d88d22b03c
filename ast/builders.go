package ast

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// NewText creates a Text value.
func NewText(s string) Text {
	return Text(s)
}

// NewInt creates a Number from an integer.
func NewInt(n int64) Number {
	return Number{decimal.NewFromInt(n)}
}

// NewFloat creates a Number from a float. The decimal keeps the shortest
// representation that round-trips the float, so 0.1 is written as "0.1".
// NewFloat panics on NaN and infinities; FromGo reports those as a
// *TypeError instead.
func NewFloat(f float64) Number {
	return Number{decimal.NewFromFloat(f)}
}

// NewDecimal wraps an existing decimal.
func NewDecimal(d decimal.Decimal) Number {
	return Number{d}
}

// NewNumber parses a decimal string such as "42", "-3.50" or "1e3".
//
// Example:
//
//	n, err := ast.NewNumber("19.99")
func NewNumber(s string) (Number, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Number{}, err
	}
	if !inRange(d) {
		return Number{}, fmt.Errorf("%w: exponent %d", ErrNumberRange, d.Exponent())
	}
	return Number{d}, nil
}

func inRange(d decimal.Decimal) bool {
	exp := d.Exponent()
	return exp >= -MaxExponent && exp <= MaxExponent
}

// NewList creates a List from the given values.
func NewList(values ...Value) List {
	return List(values)
}

// NewTextList creates a List of Text values.
func NewTextList(items ...string) List {
	l := make(List, len(items))
	for i, s := range items {
		l[i] = Text(s)
	}
	return l
}

// NewDict creates a Dict from the given entries. Later duplicates replace
// earlier values.
//
// Example:
//
//	d := ast.NewDict(ast.E("name", ast.Text("folk")), ast.E("port", ast.NewInt(4273)))
func NewDict(entries ...Entry) *Dict {
	d := &Dict{}
	for _, e := range entries {
		d.Set(e.Key, e.Value)
	}
	return d
}

// E is shorthand for constructing an Entry.
func E(key string, value Value) Entry {
	return Entry{Key: key, Value: value}
}
