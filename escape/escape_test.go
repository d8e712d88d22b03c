package escape

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  Mode
		want  string
	}{
		{"no escapes", "hello", Mnemonic, "hello"},
		{"newline mnemonic", `a\nb`, Mnemonic, "a\nb"},
		{"newline literal", `a\nb`, Literal, "anb"},
		{"bell mnemonic", `\a`, Mnemonic, "\a"},
		{"bell literal", `\a`, Literal, "a"},
		{"nul", `x\0y`, Mnemonic, "x\x00y"},
		{"all mnemonics", `\a\b\n\r\t\f\v`, Mnemonic, "\a\b\n\r\t\f\v"},
		{"unknown sequence drops backslash", `\q\{\}`, Mnemonic, "q{}"},
		{"escaped backslash", `a\\b`, Mnemonic, `a\b`},
		{"escaped space", `a\ b`, Literal, "a b"},
		{"trailing backslash kept", `abc\`, Mnemonic, `abc\`},
		{"lone backslash", `\`, Literal, `\`},
		{"double backslash then n", `\\n`, Mnemonic, `\n`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decode(tt.input, tt.mode))
		})
	}
}

func TestEncode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a b", `a\ b`},
		{"a{b", `a\{b`},
		{"}", `\}`},
		{"$var", `\$var`},
		{`say "hi"`, `say\ \"hi\"`},
		{"[cmd]", `\[cmd\]`},
		{"a;b", `a\;b`},
		{`back\slash`, `back\\slash`},
		{"line\nfeed", `line\nfeed`},
		{"\r\t\f\v", `\r\t\f\v`},
		{"#hash", "#hash"},
		{"\a", "\a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Encode(tt.input))
		})
	}
}

func TestEncodeDecodeAsymmetry(t *testing.T) {
	// Bell has a decode mnemonic but no encode entry.
	assert.Equal(t, "\a", Encode("\a"))
	assert.Equal(t, "\a", Decode(`\a`, Mnemonic))

	// Encoded control characters only survive under mnemonic decoding.
	encoded := Encode("a\tb")
	assert.Equal(t, "a\tb", Decode(encoded, Mnemonic))
	assert.Equal(t, "atb", Decode(encoded, Literal))
}

func TestEncodeRoundTripMnemonic(t *testing.T) {
	inputs := []string{
		"a b c", "{unbalanced", "close}", `back\`, "$x;y", "\n\r\t\f\v", `"q"`, "[x]",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Decode(Encode(in), Mnemonic), "input %q", in)
	}
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("literal")
	assert.NoError(t, err)
	assert.Equal(t, Literal, m)

	m, err = ParseMode(" Mnemonic ")
	assert.NoError(t, err)
	assert.Equal(t, Mnemonic, m)

	m, err = ParseMode("")
	assert.NoError(t, err)
	assert.Equal(t, Mnemonic, m)

	_, err = ParseMode("octal")
	assert.Error(t, err)

	assert.Equal(t, "literal", Literal.String())
	assert.Equal(t, "mnemonic", Mnemonic.String())
}
