package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/ctxport/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		" info ":  log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.WarnLevel,
		"verbose": log.WarnLevel,
	}
	for name, want := range cases {
		assert.Equal(t, want, logging.ParseLevel(name), "level %q", name)
		assert.Equal(t, want, logging.New(name).GetLevel(), "logger for %q", name)
	}
}

func TestNewWithWriterFiltersByLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "info")
	logger.Debug("skipped file")
	logger.Info("exported", logging.FieldPath, "main.go")

	out := buf.String()
	assert.NotContains(t, out, "skipped file")
	assert.Contains(t, out, "path=main.go")
}

func TestDiscardWritesNothing(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	require.NotNil(t, logger)
	assert.Equal(t, log.ErrorLevel, logger.GetLevel())
}

// The tests below swap the process-wide logger and must not run in parallel.

func TestSetDefaultAndLevel(t *testing.T) {
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	replacement := logging.New("warn")
	logging.SetDefault(replacement)
	assert.Same(t, replacement, logging.Default())
	assert.Same(t, replacement, logging.OrDefault(nil))

	logging.SetDefault(nil)
	assert.Same(t, replacement, logging.Default(), "nil must not clear the default")

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, replacement.GetLevel())
	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, replacement.GetLevel())
}

func TestOrDefaultKeepsGivenLogger(t *testing.T) {
	logger := logging.Discard()
	assert.Same(t, logger, logging.OrDefault(logger))
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	logger := logging.Discard()
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))

	assert.Equal(t, ctx, logging.WithLogger(ctx, nil))
}
