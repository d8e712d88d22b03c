// Package escape implements the backslash escaping rules of the list format.
//
// Decoding and encoding use two independent tables. Decoding is total: a
// backslash followed by any byte yields a value, falling back to the byte
// itself. Encoding only touches the metacharacters listed in the encode
// table and leaves every other byte untouched.
package escape

import (
	"fmt"
	"strings"
)

// Mode selects how a backslash sequence is decoded.
type Mode int

const (
	// Mnemonic decodes the control-character mnemonics (\a \b \n \r \t \f \v \0)
	// and drops the backslash from every other sequence.
	Mnemonic Mode = iota
	// Literal drops the backslash from every sequence, so \n decodes to "n".
	Literal
)

func (m Mode) String() string {
	switch m {
	case Mnemonic:
		return "mnemonic"
	case Literal:
		return "literal"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as used in flags and config files.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mnemonic":
		return Mnemonic, nil
	case "literal":
		return Literal, nil
	default:
		return Mnemonic, fmt.Errorf("unknown escape mode %q (want mnemonic or literal)", s)
	}
}

// decodeTable maps the character after a backslash to the byte it stands for.
var decodeTable = [256]byte{
	'a': '\a',
	'b': '\b',
	'n': '\n',
	'r': '\r',
	't': '\t',
	'f': '\f',
	'v': '\v',
	'0': 0,
}

// hasDecode marks which entries of decodeTable are set; '0' maps to NUL so
// the zero value cannot be used as the marker.
var hasDecode = [256]bool{
	'a': true, 'b': true, 'n': true, 'r': true,
	't': true, 'f': true, 'v': true, '0': true,
}

// DecodeByte returns the value of the sequence backslash+c.
func DecodeByte(c byte, mode Mode) byte {
	if mode == Mnemonic && hasDecode[c] {
		return decodeTable[c]
	}
	return c
}

// Decode resolves every backslash sequence in s. A backslash in the final
// position has nothing to escape and is kept as is.
func Decode(s string, mode Mode) string {
	i := strings.IndexByte(s, '\\')
	if i < 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s))
	buf.WriteString(s[:i])

	for ; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i == len(s)-1 {
			buf.WriteByte(c)
			continue
		}
		i++
		buf.WriteByte(DecodeByte(s[i], mode))
	}

	return buf.String()
}

// encodeTable holds the escaped form of every byte that cannot appear in a
// bare word.
var encodeTable = [256]string{
	' ':  `\ `,
	'$':  `\$`,
	'"':  `\"`,
	'[':  `\[`,
	']':  `\]`,
	'{':  `\{`,
	'}':  `\}`,
	';':  `\;`,
	'\\': `\\`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'\f': `\f`,
	'\v': `\v`,
}

// NeedsEncode reports whether c has an entry in the encode table.
func NeedsEncode(c byte) bool {
	return encodeTable[c] != ""
}

// Encode replaces every metacharacter in s with its backslash form.
func Encode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if NeedsEncode(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + n)

	for i := 0; i < len(s); i++ {
		if e := encodeTable[s[i]]; e != "" {
			buf.WriteString(e)
		} else {
			buf.WriteByte(s[i])
		}
	}

	return buf.String()
}
