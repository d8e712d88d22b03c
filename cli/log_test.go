package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/charmbracelet/log"
)

func TestLoggerFromContext(t *testing.T) {
	t.Run("Stored", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, log.DebugLevel)

		ctx := withLogger(context.Background(), logger)
		loggerFromContext(ctx).Debug("file changed", "file", "data.tcl")

		assert.Contains(t, buf.String(), "file changed")
		assert.Contains(t, buf.String(), "file=data.tcl")
	})

	t.Run("Default", func(t *testing.T) {
		assert.Equal(t, log.Default(), loggerFromContext(context.Background()))
	})

	t.Run("Level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := newLogger(&buf, log.InfoLevel)
		logger.Debug("hidden")
		assert.Equal(t, "", buf.String())
	})
}
