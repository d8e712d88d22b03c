package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/tclcodec/web"
)

type ServeCmd struct {
	File     string `help:"List-format file to serve and validate." arg:"" optional:""`
	Port     int    `help:"Port to listen on (0 uses the configured port)." default:"0"`
	Host     string `help:"Address to bind (defaults to the configured host)."`
	Create   bool   `help:"Automatically create file if it doesn't exist (no confirmation prompt)." short:"c"`
	ReadOnly bool   `help:"Enable read-only mode (no write operations allowed)." short:"r"`
	Watch    bool   `help:"Reload the file and notify the page when it changes." short:"w"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals) error {
	s, err := newSession(ctx, globals, "serve")
	if err != nil {
		return err
	}
	defer s.close()

	sourceFile := ""
	if cmd.File != "" {
		sourceFile, err = cmd.ensureFile(ctx)
		if err != nil {
			return err
		}
	}

	version := Version
	if version == "" {
		version = "dev"
	}
	commitSHA := CommitSHA
	if commitSHA == "" {
		commitSHA = "local"
	}

	port := cmd.Port
	if port == 0 {
		port = s.cfg.Serve.Port
	}

	server := web.NewWithVersion(port, sourceFile, version, commitSHA)
	server.Host = s.cfg.Serve.Host
	if cmd.Host != "" {
		server.Host = cmd.Host
	}
	server.ReadOnly = cmd.ReadOnly || s.cfg.Serve.ReadOnly
	server.WatchEnabled = cmd.Watch
	server.Mode = s.cfg.Mode
	server.Escape = s.cfg.Escape
	server.Logger = s.logger

	printInfof(ctx.Stdout, "Starting server on %s:%d", server.Host, port)
	if sourceFile != "" {
		printInfof(ctx.Stdout, "Serving file: %s", pathStyle.Render(sourceFile))
	}
	if server.ReadOnly {
		printInfof(ctx.Stdout, "Server running in READ-ONLY mode")
	}

	runCtx, stop := signal.NotifyContext(s.ctx, os.Interrupt)
	defer stop()

	return server.Start(runCtx)
}

// ensureFile resolves the served file, offering to create it when missing.
func (cmd *ServeCmd) ensureFile(ctx *kong.Context) (string, error) {
	sourceFile, err := filepath.Abs(cmd.File)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if _, err := os.Stat(sourceFile); err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to access file: %w", err)
		}

		shouldCreate := cmd.Create
		if !shouldCreate {
			confirmed, err := promptYesNo(ctx, fmt.Sprintf("File %q does not exist. Create it?", sourceFile))
			if err != nil {
				return "", fmt.Errorf("failed to read confirmation: %w", err)
			}
			shouldCreate = confirmed
		}

		if !shouldCreate {
			return "", fmt.Errorf("file does not exist: %s", sourceFile)
		}

		if err := os.MkdirAll(filepath.Dir(sourceFile), 0755); err != nil {
			return "", fmt.Errorf("failed to create parent directory: %w", err)
		}

		if err := os.WriteFile(sourceFile, []byte(""), 0600); err != nil {
			return "", fmt.Errorf("failed to create file: %w", err)
		}

		printInfof(ctx.Stdout, "Created empty file: %s", pathStyle.Render(sourceFile))
	}

	return sourceFile, nil
}
