package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/parser"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     Mode
		input    string
		expected ast.Value
	}{
		{
			name:     "List",
			mode:     ModeList,
			input:    "a {b c}\nd",
			expected: ast.NewTextList("a", "b c", "d"),
		},
		{
			name:     "Dict",
			mode:     ModeDict,
			input:    "host localhost\nport 8080\n",
			expected: ast.NewDict(ast.E("host", ast.Text("localhost")), ast.E("port", ast.Text("8080"))),
		},
		{
			name:     "Scalar",
			mode:     ModeScalar,
			input:    "  {hello world}\n",
			expected: ast.Text("hello world"),
		},
		{
			name:  "Nested",
			mode:  ModeNested,
			input: "{a 1} {b {2 3}}",
			expected: ast.NewList(
				ast.NewTextList("a", "1"),
				ast.NewTextList("b", "2 3"),
			),
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "input.tcl", test.input)

			result, err := New(WithMode(test.mode)).Load(context.Background(), path)
			assert.NoError(t, err)
			assert.Equal(t, path, result.Filename)
			assert.Equal(t, test.input, string(result.Source))
			assert.True(t, ast.Equal(test.expected, result.Value), "got %s", ast.Describe(result.Value))
		})
	}
}

func TestLoadTokens(t *testing.T) {
	result, err := New().LoadBytes(context.Background(), "<stdin>", []byte("a\n{b}"))
	assert.NoError(t, err)
	assert.Equal(t, 2, len(result.Tokens))
	assert.Equal(t, 2, result.Tokens[1].Line)
	assert.Equal(t, parser.Braced, result.Tokens[1].Style)

	result, err = New(WithMode(ModeScalar)).LoadBytes(context.Background(), "<stdin>", []byte("a"))
	assert.NoError(t, err)
	assert.Zero(t, result.Tokens)
}

func TestLoadEscapeMode(t *testing.T) {
	ldr := New(WithEscapeMode(escape.Literal))
	result, err := ldr.LoadBytes(context.Background(), "<stdin>", []byte(`a\tb`))
	assert.NoError(t, err)
	assert.True(t, ast.Equal(ast.NewTextList("atb"), result.Value))
}

func TestLoadErrors(t *testing.T) {
	t.Run("ParseError", func(t *testing.T) {
		path := writeFile(t, "broken.tcl", "a\n{b")
		_, err := New().Load(context.Background(), path)

		var parseErr *parser.ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, path, parseErr.Pos.Filename)
		assert.Equal(t, 2, parseErr.Pos.Line)
		assert.True(t, errors.Is(err, parser.ErrUnmatchedBrace))
	})

	t.Run("OddDict", func(t *testing.T) {
		_, err := New(WithMode(ModeDict)).LoadBytes(context.Background(), "x", []byte("a"))
		assert.True(t, errors.Is(err, parser.ErrOddDictArity))
	})

	t.Run("NestedElement", func(t *testing.T) {
		_, err := New(WithMode(ModeNested)).LoadBytes(context.Background(), "x", []byte(`{a "b}`))
		assert.True(t, errors.Is(err, parser.ErrUnmatchedQuote))
	})

	t.Run("MissingFile", func(t *testing.T) {
		_, err := New().Load(context.Background(), filepath.Join(t.TempDir(), "missing.tcl"))
		assert.Error(t, err)
		assert.True(t, errors.Is(err, os.ErrNotExist))
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("Cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New().LoadBytes(ctx, "x", []byte("a b c"))
		assert.True(t, errors.Is(err, context.Canceled))
	})
}

func TestLoadTelemetry(t *testing.T) {
	path := writeFile(t, "input.tcl", "a b")

	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)
	root := telemetry.StartTimer(ctx, "check")
	ctx = telemetry.WithRootTimer(ctx, root)

	_, err := New().Load(ctx, path)
	assert.NoError(t, err)
	root.End()

	assert.Equal(t, 3, collector.Len())
}

func TestParseMode(t *testing.T) {
	for _, name := range []string{"list", "dict", "scalar", "nested"} {
		mode, err := ParseMode(name)
		assert.NoError(t, err)
		assert.Equal(t, name, mode.String())
	}

	mode, err := ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, ModeList, mode)

	_, err = ParseMode("tree")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Mode(42).String())
}
