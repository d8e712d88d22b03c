package cli

import (
	"bytes"
	stdErrors "errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/formatter"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

type DumpCmd struct {
	File   FileOrStdin `help:"JSON input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Raw    bool        `help:"Write the elements of the top-level list or dict without outer braces."`
	Lines  bool        `help:"Write each top-level element on its own line (implies --raw)."`
	Output string      `help:"Write to this file instead of stdout." short:"o" type:"path"`
	Force  bool        `help:"Overwrite the output file without asking." short:"f"`
}

func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s, err := newSession(ctx, globals, fmt.Sprintf("dump %s", cmd.File.Base()))
	if err != nil {
		return err
	}
	defer s.close()

	contents, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	timer := telemetry.StartTimer(s.ctx, "dump.decode_json")
	value, err := ast.UnmarshalJSON(contents)
	timer.End()
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	var opts []formatter.Option
	if cmd.Raw || cmd.Lines {
		opts = append(opts, formatter.WithRaw())
	}
	if cmd.Lines {
		opts = append(opts, formatter.WithLineSeparated())
	}

	var buf bytes.Buffer
	if err := formatter.New(opts...).Format(s.ctx, value, &buf); err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if cmd.Output == "" {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	if _, err := os.Stat(cmd.Output); err == nil {
		if !cmd.Force {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q exists. Overwrite it?", cmd.Output))
			if err != nil {
				return fmt.Errorf("failed to read confirmation: %w", err)
			}
			if !confirmed {
				return fmt.Errorf("file exists: %s (use --force to overwrite)", cmd.Output)
			}
		}
	} else if !stdErrors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to access file: %w", err)
	}

	if err := os.WriteFile(cmd.Output, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	s.logger.Debug("wrote output", "file", cmd.Output, "bytes", buf.Len())
	printSuccess(ctx.Stdout, fmt.Sprintf("Wrote %s", pathStyle.Render(cmd.Output)))

	return nil
}
