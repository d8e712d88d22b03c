package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/tclcodec/errors"
	"github.com/robinvdvleuten/tclcodec/formatter"
)

type ParseCmd struct {
	File   FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	As     string      `help:"Decode as list, dict, scalar or nested (defaults to the configured mode)." short:"a"`
	Escape string      `help:"Backslash rules, mnemonic or literal (defaults to the configured rules)." short:"e"`
	JSON   bool        `help:"Print the decoded value, or the errors, as JSON." name:"json"`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s, err := newSession(ctx, globals, fmt.Sprintf("parse %s", cmd.File.Base()))
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
		if cmd.JSON {
			_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().Format(err))
			return NewCommandError(1)
		}

		sourceContent, readErr := cmd.File.GetSourceContent()
		if readErr != nil {
			return fmt.Errorf("failed to read file for error context: %w", readErr)
		}
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(sourceContent).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	if cmd.JSON {
		return writeJSON(ctx.Stdout, result.Value)
	}

	f := formatter.New(formatter.WithRaw(), formatter.WithLineSeparated())
	return f.Format(s.ctx, result.Value, ctx.Stdout)
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
