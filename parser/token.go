package parser

import "github.com/robinvdvleuten/tclcodec/ast"

// Style records how a token was quoted in the source.
type Style uint8

const (
	// Bare is an unquoted run of word characters, possibly with backslash pairs.
	Bare Style = iota + 1
	// Braced is a {...} span whose interior is taken verbatim.
	Braced
	// Quoted is a "..." span whose interior is backslash-decoded.
	Quoted
	// Mixed is a token built from adjacent spans of different styles, such
	// as foo{bar}"baz".
	Mixed
)

var styleNames = map[Style]string{
	Bare:   "BARE",
	Braced: "BRACED",
	Quoted: "QUOTED",
	Mixed:  "MIXED",
}

func (s Style) String() string {
	if name, ok := styleNames[s]; ok {
		return name
	}
	return "UNKNOWN"
}

// Token is one decoded word of the list format.
//
// Text holds the decoded value. The remaining fields locate the raw word in
// the source buffer: Start and End are byte offsets, Line and Column point
// at the first byte.
type Token struct {
	Text   string
	Style  Style
	Start  int // Byte offset into source buffer
	End    int // End offset (exclusive)
	Line   int // Line number (1-indexed)
	Column int // Column number (1-indexed)
}

// Raw returns the undecoded source text of the token.
func (t Token) Raw(source []byte) string {
	return ast.Span{Start: t.Start, End: t.End}.Text(source)
}

// Position returns the position of the first byte of the token.
func (t Token) Position(filename string) ast.Position {
	return ast.Position{
		Filename: filename,
		Offset:   t.Start,
		Line:     t.Line,
		Column:   t.Column,
	}
}

// addStyle merges the style of another span into the token.
func (t *Token) addStyle(s Style) {
	switch t.Style {
	case 0:
		t.Style = s
	case s:
	default:
		t.Style = Mixed
	}
}

// Texts returns the decoded text of each token.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Text
	}
	return out
}
