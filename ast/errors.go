package ast

import (
	"errors"
	"fmt"
)

// ErrUnserializableType is returned when a Go value has no representation
// in the list format.
var ErrUnserializableType = errors.New("unserializable type")

// ErrNumberRange is returned for numbers whose decimal exponent lies outside
// [-MaxExponent, MaxExponent]. Their canonical text would expand to that many
// digits.
var ErrNumberRange = errors.New("number exponent out of range")

// MaxExponent bounds the decimal exponent of a Number built from text or
// from a caller-supplied decimal.
const MaxExponent = 1000

// TypeError reports the offending value of an unserializable type.
type TypeError struct {
	Value any
	// Path locates the value inside the structure being converted, e.g.
	// "[2].name". Empty for the root.
	Path string
}

func (e *TypeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %T", ErrUnserializableType, e.Value)
	}
	return fmt.Sprintf("%s at %s: %T", ErrUnserializableType, e.Path, e.Value)
}

func (e *TypeError) Unwrap() error {
	return ErrUnserializableType
}
