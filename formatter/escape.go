package formatter

import (
	"strings"

	"github.com/robinvdvleuten/tclcodec/escape"
)

// QuotingStyle is the form chosen to write a single word.
type QuotingStyle int

const (
	// QuoteBare writes the word unchanged.
	QuoteBare QuotingStyle = iota + 1
	// QuoteBraced wraps the word in braces, interior verbatim.
	QuoteBraced
	// QuoteEscaped backslash-escapes every metacharacter of the word.
	QuoteEscaped
)

func (q QuotingStyle) String() string {
	switch q {
	case QuoteBare:
		return "bare"
	case QuoteBraced:
		return "braced"
	case QuoteEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Classify picks the quoting style for word. The first rule that applies
// wins:
//
//  1. the empty word is braced, giving "{}";
//  2. a word made only of plain characters is written bare;
//  3. a word whose braces balance is braced;
//  4. anything else is escaped.
func Classify(word string) QuotingStyle {
	switch {
	case word == "":
		return QuoteBraced
	case isBareWord(word):
		return QuoteBare
	case canBrace(word):
		return QuoteBraced
	default:
		return QuoteEscaped
	}
}

// DumpString writes a single word in its shortest safe form.
func DumpString(word string) string {
	switch Classify(word) {
	case QuoteBare:
		return word
	case QuoteBraced:
		var buf strings.Builder
		buf.Grow(len(word) + 2)
		buf.WriteByte('{')
		buf.WriteString(word)
		buf.WriteByte('}')
		return buf.String()
	default:
		return escape.Encode(word)
	}
}

// isBareWord reports whether word reads back unchanged without quoting.
// Backslashes are excluded outright: a bare backslash pair would be decoded
// on the way back in. The single-character word "#" is excluded so it cannot
// read as a comment when spliced at the head of a command.
func isBareWord(word string) bool {
	if word == "#" {
		return false
	}
	for i := 0; i < len(word); i++ {
		if !isPlainChar(word[i]) {
			return false
		}
	}
	return true
}

func isPlainChar(c byte) bool {
	switch c {
	case ' ', '\t', '\n', ';', '{', '}', '[', ']', '"', '$', '\\':
		return false
	}
	return c >= 0x20 && c != 0x7f
}

// canBrace reports whether {word} reads back as word. The scan mirrors the
// brace matcher of the parser: a backslash hides the next byte, so the
// closing brace is found exactly where the word ends. Curly and square
// nesting may never go negative and curly nesting must end at zero.
//
// A backslash-newline pair is refused as well; Tcl substitutes it even
// inside braces.
func canBrace(word string) bool {
	if strings.Contains(word, "\\\n") {
		return false
	}

	curlies, brackets := 0, 0
	for i := 0; i < len(word); i++ {
		switch word[i] {
		case '\\':
			if i == len(word)-1 {
				// Would escape the closing brace.
				return false
			}
			i++
		case '{':
			curlies++
		case '}':
			curlies--
			if curlies < 0 {
				return false
			}
		case '[':
			brackets++
		case ']':
			brackets--
			if brackets < 0 {
				return false
			}
		}
	}

	return curlies == 0
}
