package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/tclcodec/ast"
	"github.com/robinvdvleuten/tclcodec/loader"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

type CheckCmd struct {
	File   FileOrStdin `help:"Input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	As     string      `help:"Decode as list, dict, scalar or nested (defaults to the configured mode)." short:"a"`
	Escape string      `help:"Backslash rules, mnemonic or literal (defaults to the configured rules)." short:"e"`
	Watch  bool        `help:"Check again whenever the file changes." short:"w"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	s, err := newSession(ctx, globals, fmt.Sprintf("check %s", cmd.File.Base()))
	if err != nil {
		return err
	}
	defer s.close()

	ldr, err := s.loader(cmd.As, cmd.Escape)
	if err != nil {
		return err
	}

	if !cmd.Watch {
		if !cmd.check(s.ctx, ldr, ctx.Stdout, ctx.Stderr) {
			return NewCommandError(1)
		}
		return nil
	}

	if cmd.File.IsStdin() {
		return fmt.Errorf("--watch needs a file argument")
	}

	runCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	cmd.check(runCtx, ldr, ctx.Stdout, ctx.Stderr)
	return cmd.watch(runCtx, ldr, ctx.Stdout, ctx.Stderr)
}

// check decodes the input once and reports the outcome. It returns false
// when the input does not decode.
func (cmd *CheckCmd) check(ctx context.Context, ldr *loader.Loader, stdout, stderr io.Writer) bool {
	result, err := cmd.File.Load(ctx, ldr)
	if err != nil {
		sourceContent, readErr := cmd.File.GetSourceContent()
		if readErr != nil {
			sourceContent = nil
		}
		_, _ = fmt.Fprintln(stderr, NewErrorRenderer(sourceContent).Render(err))
		_, _ = fmt.Fprintln(stderr)
		printError(stderr, "parse error")
		return false
	}

	printSuccess(stdout, fmt.Sprintf("Check passed (%s, %s)", ldr.Mode, describe(result.Value)))
	return true
}

// watch re-runs check after every change to the file until ctx is done.
func (cmd *CheckCmd) watch(ctx context.Context, ldr *loader.Loader, stdout, stderr io.Writer) error {
	logger := loggerFromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	filename := cmd.File.GetAbsoluteFilename()
	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	printInfof(stdout, "Watching %s", pathStyle.Render(filename))

	// Editors often write files in multiple steps
	const debounceDelay = 100 * time.Millisecond

	changed := make(chan struct{}, 1)
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(debounceDelay, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})

		case <-changed:
			logger.Debug("file changed", "file", filepath.Base(filename))

			timer := telemetry.StartTimer(ctx, fmt.Sprintf("recheck %s", filepath.Base(filename)))
			cmd.check(ctx, ldr, stdout, stderr)
			timer.End()

			// Atomic saves replace the file and drop the watch.
			if err := watcher.Add(filename); err != nil {
				logger.Warn("failed to watch file", "file", filename, "err", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "err", err)
		}
	}
}

// describe summarizes a decoded value, e.g. "3 elements" or "2 keys".
func describe(v ast.Value) string {
	switch v := v.(type) {
	case ast.List:
		return plural(len(v), "element")
	case *ast.Dict:
		return plural(v.Len(), "key")
	case ast.Text:
		return plural(len(v), "byte")
	default:
		return v.Kind().String()
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
