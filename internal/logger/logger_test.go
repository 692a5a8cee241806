package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetByName(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })

	tests := []struct {
		name string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"err", slog.LevelError},
		{"", slog.LevelInfo},
	}
	for _, tc := range tests {
		require.True(t, Level.SetByName(tc.name), tc.name)
		assert.Equal(t, tc.want, Level.lvl.Level(), tc.name)
	}

	Level.Set(slog.LevelDebug)
	assert.False(t, Level.SetByName("loud"))
	assert.Equal(t, slog.LevelDebug, Level.lvl.Level())
}

func TestTextHandlerLowercasesLevel(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })
	Level.Set(slog.LevelInfo)

	var buf bytes.Buffer
	log := slog.New(newTextHandler(&buf))
	log.Debug("hidden")
	log.Warn("visible", "session_id", "abc")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "level=warn")
	assert.Contains(t, out, "session_id=abc")
}

func TestTerminalHandlerRespectsLevel(t *testing.T) {
	t.Cleanup(func() { Level.Set(slog.LevelInfo) })
	Level.Set(slog.LevelError)

	var buf bytes.Buffer
	log := slog.New(newTerminalHandler(&buf))
	log.Info("quiet")
	assert.Empty(t, buf.String())
	assert.True(t, Level.Enabled(slog.LevelError))
	assert.False(t, Level.Enabled(slog.LevelWarn))
}
