package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/output"
	"github.com/robinvdvleuten/tclcodec/parser"
)

// DoctorCmd provides utilities for debugging list-format input.
type DoctorCmd struct {
	Lex   LexCmd   `cmd:"" help:"Show the words of the input with their quoting style and position."`
	Value ValueCmd `cmd:"" help:"Show the structure of the decoded input."`
}

// LexCmd shows the words of the input.
type LexCmd struct {
	File   FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Escape string      `help:"Backslash rules, mnemonic or literal." short:"e" default:"mnemonic"`
}

// Run executes the lex command.
func (cmd *LexCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	mode, err := escape.ParseMode(cmd.Escape)
	if err != nil {
		return err
	}

	lexer := parser.NewLexer(content, cmd.File.Filename, parser.WithEscapeMode(mode))
	tokens, err := lexer.ScanAll()
	if err != nil {
		return fmt.Errorf("failed to lex file: %w", err)
	}

	styles := newStyles(ctx.Stdout, globals)

	// Format: STYLE line:col "raw" => "decoded"
	for _, token := range tokens {
		style := token.Style.String()
		prefix := fmt.Sprintf("%s %s    ",
			styles.Word(style, fmt.Sprintf("%-10s", style)),
			styles.Dim(fmt.Sprintf("%d:%d", token.Line, token.Column)))

		raw := token.Raw(content)
		if raw == token.Text {
			_, _ = fmt.Fprintf(ctx.Stdout, "%s%q\n", prefix, raw)
			continue
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%s%q => %q\n", prefix, raw, token.Text)
	}

	return nil
}

// ValueCmd prints the decoded value as an outline or as a Go structure.
type ValueCmd struct {
	File   FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	As     string      `help:"Decode as list, dict, scalar or nested (defaults to the configured mode)." short:"a"`
	Escape string      `help:"Backslash rules, mnemonic or literal (defaults to the configured rules)." short:"e"`
	Go     bool        `help:"Print the Go structure instead of an outline."`
}

// Run executes the value command.
func (cmd *ValueCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s, err := newSession(ctx, globals, fmt.Sprintf("doctor value %s", cmd.File.Base()))
	if err != nil {
		return err
	}
	defer s.close()

	ldr, err := s.loader(cmd.As, cmd.Escape)
	if err != nil {
		return err
	}

	result, err := cmd.File.Load(s.ctx, ldr)
	if err != nil {
		return err
	}

	if cmd.Go {
		repr.New(ctx.Stdout, repr.Indent("  ")).Println(result.Value)
		return nil
	}

	writeOutline(ctx.Stdout, newStyles(ctx.Stdout, globals), result.Value, "")
	return nil
}

// writeOutline prints one line per scalar. List elements are labelled with
// their index, dict values with their key; nested containers are indented.
func writeOutline(w io.Writer, styles *output.Styles, v ast.Value, indent string) {
	switch v := v.(type) {
	case ast.List:
		for i, elem := range v {
			writeOutlineEntry(w, styles, styles.Dim(fmt.Sprintf("[%d]", i)), elem, indent)
		}
	case *ast.Dict:
		for _, e := range v.Entries() {
			writeOutlineEntry(w, styles, styles.Key(e.Key), e.Value, indent)
		}
	default:
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, outlineScalar(styles, v))
	}
}

func writeOutlineEntry(w io.Writer, styles *output.Styles, label string, v ast.Value, indent string) {
	switch v.(type) {
	case ast.List, *ast.Dict:
		_, _ = fmt.Fprintf(w, "%s%s\n", indent, label)
		writeOutline(w, styles, v, indent+"  ")
	default:
		_, _ = fmt.Fprintf(w, "%s%s %s\n", indent, label, outlineScalar(styles, v))
	}
}

func outlineScalar(styles *output.Styles, v ast.Value) string {
	switch v := v.(type) {
	case ast.Text:
		return strconv.Quote(string(v))
	case ast.Number:
		return styles.Number(v.Text())
	default:
		return fmt.Sprintf("%v", v)
	}
}
