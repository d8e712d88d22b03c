package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
)

// runCLI parses args against a fresh command tree and runs the selected
// command with captured output.
func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var cli Commands
	var out, errOut bytes.Buffer

	parser, err := kong.New(&cli,
		kong.Name("tclcodec"),
		kong.Writers(&out, &errOut),
		kong.Bind(&cli.Globals),
		kong.Exit(func(int) { t.Fatal("unexpected exit") }),
	)
	assert.NoError(t, err)

	kctx, err := parser.Parse(append([]string{"--no-color"}, args...))
	assert.NoError(t, err)

	err = kctx.Run()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	cmdErr, ok := err.(*CommandError)
	assert.True(t, ok, "expected *CommandError, got %T", err)
	return cmdErr.ExitCode()
}

func TestParseCmd(t *testing.T) {
	t.Run("CanonicalList", func(t *testing.T) {
		path := writeFile(t, "data.tcl", `a  {b c}  "d e" f\ g`)

		stdout, _, err := runCLI(t, "parse", path)
		assert.NoError(t, err)
		assert.Equal(t, "a\n{b c}\n{d e}\n{f g}\n", stdout)
	})

	t.Run("DictJSON", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "name folk port 80")

		stdout, _, err := runCLI(t, "parse", "--as", "dict", "--json", path)
		assert.NoError(t, err)
		assert.Equal(t, "{\n  \"name\": \"folk\",\n  \"port\": \"80\"\n}\n", stdout)
	})

	t.Run("NestedJSON", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "{a b} {c}")

		stdout, _, err := runCLI(t, "parse", "-a", "nested", "--json", path)
		assert.NoError(t, err)

		var got [][]string
		assert.NoError(t, json.Unmarshal([]byte(stdout), &got))
		assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, got)
	})

	t.Run("LiteralEscapes", func(t *testing.T) {
		path := writeFile(t, "data.tcl", `a\nb`)

		stdout, _, err := runCLI(t, "parse", "--as", "scalar", "--escape", "literal", path)
		assert.NoError(t, err)
		assert.Equal(t, "anb\n", stdout)
	})

	t.Run("SyntaxError", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a {b")

		stdout, stderr, err := runCLI(t, "parse", path)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Equal(t, "", stdout)
		assert.Contains(t, stderr, "missing closing brace")
		assert.Contains(t, stderr, "   a {b\n")
		assert.Contains(t, stderr, "parse error")
	})

	t.Run("SyntaxErrorJSON", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a [b]")

		stdout, _, err := runCLI(t, "parse", "--json", path)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, stdout, `"kind": "unsupported syntax"`)
	})

	t.Run("UnknownMode", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a")

		_, _, err := runCLI(t, "parse", "--as", "tree", path)
		assert.Error(t, err)
		_, isCommandErr := err.(*CommandError)
		assert.False(t, isCommandErr)
	})
}

func TestDumpCmd(t *testing.T) {
	input := `{"name": "folk", "ports": [80, 443], "motd": "hi there"}`

	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "Braced", expected: "{name folk ports {80 443} motd {hi there}}\n"},
		{name: "Raw", args: []string{"--raw"}, expected: "name folk ports {80 443} motd {hi there}\n"},
		{name: "Lines", args: []string{"--lines"}, expected: "name folk\nports {80 443}\nmotd {hi there}\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path := writeFile(t, "data.json", input)

			args := append([]string{"dump"}, test.args...)
			stdout, _, err := runCLI(t, append(args, path)...)
			assert.NoError(t, err)
			assert.Equal(t, test.expected, stdout)
		})
	}

	t.Run("Unserializable", func(t *testing.T) {
		path := writeFile(t, "data.json", `{"ok": null}`)

		_, stderr, err := runCLI(t, "dump", path)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, stderr, "unserializable type at .ok")
	})

	t.Run("OutputFile", func(t *testing.T) {
		path := writeFile(t, "data.json", `["a b", ""]`)
		target := filepath.Join(t.TempDir(), "out.tcl")

		stdout, _, err := runCLI(t, "dump", "--raw", "-o", target, path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Wrote")

		content, err := os.ReadFile(target)
		assert.NoError(t, err)
		assert.Equal(t, "{a b} {}\n", string(content))
	})

	t.Run("OutputFileExists", func(t *testing.T) {
		path := writeFile(t, "data.json", `["x"]`)
		target := writeFile(t, "out.tcl", "keep")

		// Without a terminal the overwrite prompt declines.
		_, _, err := runCLI(t, "dump", "-o", target, path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "use --force")

		content, err := os.ReadFile(target)
		assert.NoError(t, err)
		assert.Equal(t, "keep", string(content))

		_, _, err = runCLI(t, "dump", "-f", "-o", target, path)
		assert.NoError(t, err)

		content, err = os.ReadFile(target)
		assert.NoError(t, err)
		assert.Equal(t, "{x}\n", string(content))
	})
}

func TestCheckCmd(t *testing.T) {
	t.Run("Passes", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a {b c} d")

		stdout, _, err := runCLI(t, "check", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed (list, 3 elements)")
	})

	t.Run("Dict", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a 1 b 2")

		stdout, _, err := runCLI(t, "check", "--as", "dict", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "Check passed (dict, 2 keys)")
	})

	t.Run("OddDict", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a 1 b")

		_, stderr, err := runCLI(t, "check", "--as", "dict", path)
		assert.Equal(t, 1, exitCode(t, err))
		assert.Contains(t, stderr, "parse error")
	})

	t.Run("Telemetry", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a b")

		_, stderr, err := runCLI(t, "--telemetry", "check", path)
		assert.NoError(t, err)
		assert.Contains(t, stderr, "check data.tcl")
		assert.Contains(t, stderr, "loader.read data.tcl")
	})

	t.Run("SettingsFile", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a 1 b 2")
		settings := writeFile(t, "settings.toml", `mode = "dict"`)

		stdout, _, err := runCLI(t, "--config", settings, "check", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "dict, 2 keys")
	})

	t.Run("BadSettingsFile", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a")
		settings := writeFile(t, "settings.toml", `nope = 1`)

		_, _, err := runCLI(t, "--config", settings, "check", path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown keys")
	})
}

func TestDoctorCmd(t *testing.T) {
	t.Run("Lex", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a {b c}\n\"d\\te\"")

		stdout, _, err := runCLI(t, "doctor", "lex", path)
		assert.NoError(t, err)

		expected := "BARE       1:1    \"a\"\n" +
			"BRACED     1:3    \"{b c}\" => \"b c\"\n" +
			"QUOTED     2:1    \"\\\"d\\\\te\\\"\" => \"d\\te\"\n"
		assert.Equal(t, expected, stdout)
	})

	t.Run("ValueOutline", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a 1 b {x y}")

		stdout, _, err := runCLI(t, "doctor", "value", "--as", "dict", path)
		assert.NoError(t, err)
		assert.Equal(t, "a \"1\"\nb \"x y\"\n", stdout)
	})

	t.Run("ValueOutlineNested", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a {b c}")

		stdout, _, err := runCLI(t, "doctor", "value", "--as", "nested", path)
		assert.NoError(t, err)
		assert.Equal(t, "[0]\n  [0] \"a\"\n[1]\n  [0] \"b\"\n  [1] \"c\"\n", stdout)
	})

	t.Run("ValueGo", func(t *testing.T) {
		path := writeFile(t, "data.tcl", "a {b c}")

		stdout, _, err := runCLI(t, "doctor", "value", "--go", path)
		assert.NoError(t, err)
		assert.Contains(t, stdout, "ast.List")
		assert.Contains(t, stdout, `"b c"`)
	})
}
