package cli

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/robinvdvleuten/tclcodec/config"
	"github.com/robinvdvleuten/tclcodec/escape"
	"github.com/robinvdvleuten/tclcodec/loader"
	"github.com/robinvdvleuten/tclcodec/telemetry"
)

// session carries what every command needs: resolved settings, a context
// with the logger and the optional telemetry collector attached.
type session struct {
	ctx    context.Context
	cfg    config.Config
	logger *log.Logger
	stderr io.Writer

	collector *telemetry.TimingCollector
	timer     telemetry.Timer
	once      sync.Once
}

// newSession loads the settings file and prepares logging and telemetry.
// name labels the root timer. Call close when the command is done.
func newSession(kctx *kong.Context, globals *Globals, name string) (*session, error) {
	cfg, err := config.Load(globals.Config)
	if err != nil {
		return nil, err
	}

	if globals.NoColor || !cfg.Color {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	level := log.InfoLevel
	if globals.Verbose {
		level = log.DebugLevel
	}
	logger := newLogger(kctx.Stderr, level)

	s := &session{
		cfg:    cfg,
		logger: logger,
		stderr: kctx.Stderr,
	}

	ctx := withLogger(context.Background(), logger)
	if globals.Telemetry {
		s.collector = telemetry.NewTimingCollector()
		ctx = telemetry.WithCollector(ctx, s.collector)

		s.timer = s.collector.Start(name)
		ctx = telemetry.WithRootTimer(ctx, s.timer)
	}
	s.ctx = ctx

	if cfg.Path != "" {
		logger.Debug("loaded settings", "path", cfg.Path)
	}

	return s, nil
}

// close ends the root timer and prints the telemetry report, once.
func (s *session) close() {
	s.once.Do(func() {
		if s.collector == nil {
			return
		}
		s.timer.End()
		_, _ = fmt.Fprintln(s.stderr)
		s.collector.Report(s.stderr)
	})
}

// loader builds a loader from the as and escape flag values, falling back
// to the settings file for each one left empty.
func (s *session) loader(as, esc string) (*loader.Loader, error) {
	mode := s.cfg.Mode
	if as != "" {
		m, err := loader.ParseMode(as)
		if err != nil {
			return nil, err
		}
		mode = m
	}

	escapeMode := s.cfg.Escape
	if esc != "" {
		m, err := escape.ParseMode(esc)
		if err != nil {
			return nil, err
		}
		escapeMode = m
	}

	return loader.New(loader.WithMode(mode), loader.WithEscapeMode(escapeMode)), nil
}
