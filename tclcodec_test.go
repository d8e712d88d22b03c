package tclcodec

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/parser"
)

func TestParse(t *testing.T) {
	ctx := context.Background()

	words, err := ParseList(ctx, `a {b c} "d e"`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b c", "d e"}, words)

	words, err = ParseListBytes(ctx, []byte(`x\ty`), WithEscapeMode(escape.Literal))
	assert.NoError(t, err)
	assert.Equal(t, []string{"xty"}, words)

	d, err := ParseDict(ctx, "a 1 b 2")
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, d.Keys())

	_, err = ParseDictBytes(ctx, []byte("a 1 b"))
	assert.True(t, errors.Is(err, parser.ErrOddDictArity))

	s, err := ParseScalar(ctx, "{hello world}")
	assert.NoError(t, err)
	assert.Equal(t, "hello world", s)

	_, err = ParseScalarBytes(ctx, []byte("a b"), WithFilename("x.tcl"))
	assert.EqualError(t, err, `x.tcl:1:3: extra data after value: "b"`)
}

func TestDump(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected string
		raw      string
	}{
		{
			name:     "Strings",
			value:    []string{"a", "b c"},
			expected: "{a {b c}}",
			raw:      "a {b c}",
		},
		{
			name:     "Mixed",
			value:    []any{"x", 1, 2.5},
			expected: "{x 1 2.5}",
			raw:      "x 1 2.5",
		},
		{
			name:     "Map",
			value:    map[string]string{"b": "2", "a": "1"},
			expected: "{a 1 b 2}",
			raw:      "a 1 b 2",
		},
		{
			name:     "Value",
			value:    ast.NewDict(ast.E("z", ast.Text("")), ast.E("a", ast.NewTextList())),
			expected: "{z {} a {}}",
			raw:      "z {} a {}",
		},
		{
			name:     "Scalar",
			value:    "a}b",
			expected: `a\}b`,
			raw:      `a\}b`,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := Dump(test.value)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, out)

			raw, err := DumpRaw(test.value)
			assert.NoError(t, err)
			assert.Equal(t, test.raw, raw)
		})
	}
}

func TestDumpUnserializable(t *testing.T) {
	for _, v := range []any{nil, true, struct{}{}, []any{"a", nil}, math.NaN(), []any{math.Inf(-1)}} {
		_, err := Dump(v)
		assert.True(t, errors.Is(err, ast.ErrUnserializableType), "%#v", v)
	}
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	words := []string{"", "a b", "{", "x\\", "#c", "q\"", "\t\n"}

	raw, err := DumpRaw(words)
	assert.NoError(t, err)

	got, err := ParseList(ctx, raw)
	assert.NoError(t, err)
	assert.Equal(t, words, got)

	for _, w := range words {
		s, err := ParseScalar(ctx, DumpString(w))
		assert.NoError(t, err)
		assert.Equal(t, w, s)
	}
}
