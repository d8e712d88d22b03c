package parser

import (
	"strings"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
)

// Lexer splits list-format text into decoded words.
//
// The lexer only moves forward: each call to Next consumes one word and
// never looks past its end. A word may be assembled from several adjacent
// spans (bare, {braced} and "quoted"), which are decoded individually and
// concatenated.
type Lexer struct {
	source   []byte      // Source buffer
	filename string      // Filename for error reporting
	mode     escape.Mode // Backslash decoding rules
	pos      int         // Current byte position
	line     int         // Current line (1-indexed)
	column   int         // Current column (1-indexed)
}

// NewLexer creates a new lexer for the given source.
func NewLexer(source []byte, filename string, opts ...Option) *Lexer {
	cfg := newConfig(opts)
	return &Lexer{
		source:   source,
		filename: filename,
		mode:     cfg.mode,
		line:     1,
		column:   1,
	}
}

// Next scans the next word. It returns false once the input holds nothing
// but separators.
func (l *Lexer) Next() (Token, bool, error) {
	l.skipSeparators()
	if l.pos >= len(l.source) {
		return Token{}, false, nil
	}

	tok := Token{
		Start:  l.pos,
		Line:   l.line,
		Column: l.column,
	}

	var buf strings.Builder

	for l.pos < len(l.source) && !isSeparator(l.source[l.pos]) {
		switch l.source[l.pos] {
		case '[':
			return Token{}, false, l.errorHere(ErrUnsupportedSyntax, "command substitution is not supported")

		case '{':
			interior, err := l.scanBraced()
			if err != nil {
				return Token{}, false, err
			}
			buf.WriteString(interior)
			tok.addStyle(Braced)

		case '"':
			interior, err := l.scanQuoted()
			if err != nil {
				return Token{}, false, err
			}
			buf.WriteString(escape.Decode(interior, l.mode))
			tok.addStyle(Quoted)

		default:
			word := l.scanWord()
			if word == "" {
				return Token{}, false, l.errorHere(ErrInvalidEscape, "invalid escape or closing brace")
			}
			buf.WriteString(escape.Decode(word, l.mode))
			tok.addStyle(Bare)
		}
	}

	tok.End = l.pos
	tok.Text = buf.String()

	return tok, true, nil
}

// ScanAll lexes the entire source and returns all words.
func (l *Lexer) ScanAll() ([]Token, error) {
	var tokens []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return tokens, nil
		}
		tokens = append(tokens, tok)
	}
}

// Position returns the current position of the lexer.
func (l *Lexer) Position() ast.Position {
	return ast.Position{
		Filename: l.filename,
		Offset:   l.pos,
		Line:     l.line,
		Column:   l.column,
	}
}

// scanBraced consumes a {...} span and returns its interior verbatim.
func (l *Lexer) scanBraced() (string, error) {
	n, ok := matchBrace(l.source[l.pos:])
	if !ok {
		return "", l.errorHere(ErrUnmatchedBrace, "missing closing brace")
	}
	interior := string(l.source[l.pos+1 : l.pos+n-1])
	l.advanceN(n)
	return interior, nil
}

// scanQuoted consumes a "..." span and returns its interior undecoded.
func (l *Lexer) scanQuoted() (string, error) {
	n, ok := findQuote(l.source[l.pos:])
	if !ok {
		return "", l.errorHere(ErrUnmatchedQuote, "missing closing quote")
	}
	interior := string(l.source[l.pos+1 : l.pos+n-1])
	l.advanceN(n)
	return interior, nil
}

// scanWord consumes a maximal run of word characters and backslash pairs.
// The result is empty when the current byte cannot start a word: a closing
// brace or bracket, or a backslash with nothing after it.
func (l *Lexer) scanWord() string {
	start := l.pos
	end := l.pos

	for end < len(l.source) {
		ch := l.source[end]
		if ch == '\\' {
			if end+1 >= len(l.source) {
				break
			}
			end += 2
			continue
		}
		if !isWordChar(ch) {
			break
		}
		end++
	}

	l.advanceN(end - start)
	return string(l.source[start:end])
}

// skipSeparators skips spaces, tabs, semicolons and newlines.
func (l *Lexer) skipSeparators() {
	for l.pos < len(l.source) && isSeparator(l.source[l.pos]) {
		l.advance()
	}
}

func (l *Lexer) errorHere(kind error, message string) *ParseError {
	return newParseError(kind, l.Position(), "%s", message)
}

// Helper methods

func (l *Lexer) advance() byte {
	if l.pos >= len(l.source) {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

// isSeparator reports whether ch ends a word. Semicolons and newlines
// separate words exactly like blanks do.
func isSeparator(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == ';'
}

// isWordChar reports whether ch may appear unescaped in a bare word.
func isWordChar(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', ';', '{', '}', '[', ']', '"', '\\':
		return false
	}
	return true
}
