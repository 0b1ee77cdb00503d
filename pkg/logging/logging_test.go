package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		text     string
		expected slog.Level
		wantErr  bool
	}{
		{text: "trace", expected: LevelTrace},
		{text: "DEBUG", expected: slog.LevelDebug},
		{text: "", expected: slog.LevelInfo},
		{text: " warning ", expected: slog.LevelWarn},
		{text: "error", expected: slog.LevelError},
		{text: "loud", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			level, err := ParseLevel(tt.text)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLevel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}

func TestNewFansOut(t *testing.T) {
	var console bytes.Buffer
	recorder := NewRecorder(LevelTrace)
	file := filepath.Join(t.TempDir(), "patch.log")

	logger, closeLog, err := New(Options{
		Level:   slog.LevelDebug,
		Console: &console,
		File:    file,
		Extra:   []slog.Handler{recorder},
	})
	require.NoError(t, err)

	logger.With(slog.String("route", "boulder-cap")).Warn("route not matched", slog.String("cause", "PatternNotFound"))
	logger.Log(context.Background(), LevelTrace, "anchor search failed")
	require.NoError(t, closeLog())

	assert.Contains(t, console.String(), "level=WARN")
	assert.Contains(t, console.String(), "route=boulder-cap")
	assert.NotContains(t, console.String(), "anchor search failed")

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 1)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "WARN", record["level"])
	assert.Equal(t, "PatternNotFound", record["cause"])

	// The recorder has its own level
	entries := recorder.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "boulder-cap", entries[0].Attr("route"))
	assert.Equal(t, "TRACE", LevelName(entries[1].Level))
}

func TestNewWithoutHandlers(t *testing.T) {
	logger, closeLog, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
	assert.NoError(t, closeLog())
}

func TestNewBadLogFile(t *testing.T) {
	_, _, err := New(Options{File: filepath.Join(t.TempDir(), "missing", "patch.log")})
	assert.Error(t, err)
}

func TestRecorder(t *testing.T) {
	recorder := NewRecorder(slog.LevelWarn)
	logger := slog.New(recorder)

	logger.Info("ignored")
	logger.Warn("first", slog.Int("anchor", 3))
	logger.Error("second")

	assert.Len(t, recorder.Entries(), 2)
	assert.Len(t, recorder.AtLevel(slog.LevelWarn), 1)
	assert.Equal(t, "3", recorder.AtLevel(slog.LevelWarn)[0].Attr("anchor"))
	assert.Equal(t, "", recorder.AtLevel(slog.LevelWarn)[0].Attr("missing"))

	recorder.Reset()
	assert.Empty(t, recorder.Entries())
}

func TestRecorderFilter(t *testing.T) {
	recorder := NewRecorder(LevelTrace)
	logger := slog.New(recorder)

	logger.With(slog.String("method", "Hud::DrawMinimap()")).Warn("not matched")
	logger.With(slog.String("method", "Player::get_Speed()")).Log(context.Background(), LevelTrace, "anchor search failed")
	logger.Info("no method")

	entries := recorder.Filter("method", "Hud::DrawMinimap()")
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "not matched", entries[0].Message)
	}
	assert.Len(t, recorder.Filter("method", "Player::get_Speed()"), 1)
	assert.Empty(t, recorder.Filter("method", "Lantern::Update(float32)"))
}
