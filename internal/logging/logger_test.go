package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mdtree/internal/config"
	"mdtree/internal/logging"
	"mdtree/internal/services"
)

func noColor() *bool {
	v := false
	return &v
}

func TestConsoleLoggerHeaderAndFields(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Writer: &buf, Color: noColor()})
	require.NoError(t, err)

	logging.NewComponentLogger(logger, "builder").Info("project materialized",
		logging.String(logging.FieldDocument, "hello.md"),
		logging.Int("files", 3),
	)

	out := buf.String()
	assert.Contains(t, out, "INFO  [builder] hello.md - project materialized")
	assert.Contains(t, out, "    - files: 3")
	assert.NotContains(t, out, ".go:")
}

func TestConsoleLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Writer: &buf, Color: noColor()})
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown", logging.Error(errors.New("boom")))

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "WARN")
	assert.Contains(t, buf.String(), "error: boom")
}

func TestConsoleDebugIncludesSource(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Writer: &buf, Color: noColor()})
	require.NoError(t, err)

	logger.Debug("detail")
	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	require.NoError(t, err)

	logger.Info("hello", logging.String("k", "v"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "hello", record["msg"])
	assert.Equal(t, "info", record["level"])
	assert.Equal(t, "v", record["k"])
	assert.Contains(t, record, "ts")
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	assert.Error(t, err)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("verbose"))
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")
	cfg.Logging.Format = "json"

	logger, err := logging.NewFromConfig(&cfg, io.Discard)
	require.NoError(t, err)
	logger.Info("to file")

	content, err := os.ReadFile(filepath.Join(cfg.Paths.LogDir, logging.LogFileName))
	require.NoError(t, err)
	assert.Contains(t, string(content), `"msg":"to file"`)
}

func TestWithContextAddsFields(t *testing.T) {
	ctx := services.WithRunID(context.Background(), "run-1")
	ctx = services.WithDocument(ctx, "demo.md")
	ctx = services.WithPhase(ctx, "test")

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	logging.WithContext(ctx, logger).Info("contextual log")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "run-1", record[logging.FieldRunID])
	assert.Equal(t, "demo.md", record[logging.FieldDocument])
	assert.Equal(t, "test", record[logging.FieldPhase])
}

func TestTeeHandler(t *testing.T) {
	var a, b bytes.Buffer
	h := logging.TeeHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: slog.LevelInfo}),
		nil,
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("shared", "yes")
	logger.Info("info only")
	logger.Error("both")

	assert.Equal(t, 2, strings.Count(a.String(), "shared=yes"))
	assert.Equal(t, 1, strings.Count(b.String(), "shared=yes"))

	_, isNoop := logging.TeeHandler(nil).(logging.NoopHandler)
	assert.True(t, isNoop)
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewNop()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	logging.WithContext(context.Background(), nil).Info("discarded")
}

func TestAttrHelpersEncodeStructuredValues(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	attrs := []logging.Attr{
		logging.Strings("paths", []string{"a.rs", "b.rs"}),
		logging.Any("statuses", map[string]int{"ok": 2}),
	}
	logger.Info("summary", logging.Args(attrs...)...)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, []any{"a.rs", "b.rs"}, record["paths"])
	assert.Equal(t, map[string]any{"ok": float64(2)}, record["statuses"])
	assert.Empty(t, logging.Args())
}
