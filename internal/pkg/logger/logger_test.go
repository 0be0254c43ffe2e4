package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(format string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{
		Level:       "debug",
		Format:      format,
		Writer:      &buf,
		ServiceName: "seller-sync",
	})
	return l, &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestLogger_ContextValues(t *testing.T) {
	l, buf := newBufferedLogger("json")

	ctx, runID := WithRunID(context.Background(), "")
	require.NotEmpty(t, runID)
	assert.Equal(t, runID, RunID(ctx))

	ctx = WithTask(ctx, "task-1", "sync:run")
	l.InfoContext(ctx, "stocks pushed", slog.Int("count", 3))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, runID, lines[0]["run_id"])
	assert.Equal(t, "task-1", lines[0]["task_id"])
	assert.Equal(t, "sync:run", lines[0]["task_type"])
	assert.Equal(t, "seller-sync", lines[0]["service"])
	assert.Equal(t, "INFO", lines[0]["severity"])
	assert.EqualValues(t, 3, lines[0]["count"])
}

func TestLogger_ChildLoggersKeepContextHandling(t *testing.T) {
	l, buf := newBufferedLogger("json")

	child := l.With(slog.String("component", "marketplace"))
	ctx, runID := WithRunID(context.Background(), "fixed-run")
	child.InfoContext(ctx, "page fetched")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "fixed-run", runID)
	assert.Equal(t, "fixed-run", lines[0]["run_id"])
	assert.Equal(t, "marketplace", lines[0]["component"])
}

func TestLogger_RedactsCredentials(t *testing.T) {
	l, buf := newBufferedLogger("json")

	l.InfoContext(context.Background(), "calling api with api_key=abc123",
		slog.String("seller_token", "super-secret"),
		slog.String("offer_id", "A-1"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.NotContains(t, buf.String(), "abc123")
	assert.NotContains(t, buf.String(), "super-secret")
	assert.Equal(t, "***REDACTED***", lines[0]["seller_token"])
	assert.Equal(t, "A-1", lines[0]["offer_id"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "warn", Format: "json", Writer: &buf})

	l.InfoContext(context.Background(), "hidden")
	l.WarnContext(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogger_AddSourceSurvivesHandlerChain(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&LogConfig{Level: "debug", Format: "json", Writer: &buf, AddSource: true})

	l.ErrorContext(context.Background(), "sync failed")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	source, ok := lines[0]["source"].(map[string]any)
	require.True(t, ok, "source attribute missing")
	assert.Contains(t, source["file"], "logger_test.go")
}

func TestPrettyTextHandler(t *testing.T) {
	l, buf := newBufferedLogger("text")

	l.With(slog.String("component", "vendor")).Info("parsed", slog.Int("records", 2))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "parsed")
	assert.Contains(t, out, "component=vendor")
	assert.Contains(t, out, "records=2")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLevel("nonsense"))
}
