package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"":        slog.LevelInfo,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestPrettyHandler(t *testing.T) {
	var out bytes.Buffer
	log := New(&out, slog.LevelInfo, FormatPretty)

	log.Debug("hidden")
	log.With("session", 1).WithGroup("key").Info("toggled", "name", "ctrl+space")

	line := out.String()
	assert.NotContains(t, line, "hidden")
	assert.Contains(t, line, "INF")
	assert.Contains(t, line, "toggled")
	assert.Contains(t, line, "session"+reset+"=1")
	assert.Contains(t, line, "key.name"+reset+"=ctrl+space")
}

func TestJSONFormat(t *testing.T) {
	var out bytes.Buffer
	New(&out, slog.LevelDebug, FormatJSON).Debug("merged jamo", "result", "각")

	var record map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &record))
	assert.Equal(t, "merged jamo", record["msg"])
	assert.Equal(t, "각", record["result"])
}

func TestDiscard(t *testing.T) {
	assert.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
