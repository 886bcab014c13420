package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatingWriter_WritesAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "erljump.log")

	w, err := NewRotatingWriter(path, 10, 5)
	require.NoError(t, err)
	_, err = w.Write([]byte("first\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	w, err = NewRotatingWriter(path, 10, 5)
	require.NoError(t, err)
	_, err = w.Write([]byte("second\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestRotatingWriter_RotatesAtSizeLimit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "erljump.log")

	// 1 MB limit; two writes of ~600 KB force one rotation.
	w, err := NewRotatingWriter(path, 1, 5)
	require.NoError(t, err)
	chunk := []byte(strings.Repeat("x", 600*1024))
	_, err = w.Write(chunk)
	require.NoError(t, err)
	_, err = w.Write(chunk)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	rotated, err := os.Stat(path + ".1")
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), rotated.Size())

	current, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(len(chunk)), current.Size())
}

func TestRotatingWriter_DropsOldestBeyondMaxFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "erljump.log")
	require.NoError(t, os.WriteFile(path+".1", []byte("old1"), 0o644))
	require.NoError(t, os.WriteFile(path+".2", []byte("old2"), 0o644))

	w, err := NewRotatingWriter(path, 1, 2)
	require.NoError(t, err)
	chunk := []byte(strings.Repeat("x", 600*1024))
	_, err = w.Write(chunk)
	require.NoError(t, err)
	_, err = w.Write(chunk)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	// .2 (at the limit) was deleted, .1 shifted to .2, fresh .1 appeared.
	data, err := os.ReadFile(path + ".2")
	require.NoError(t, err)
	assert.Equal(t, "old1", string(data))

	_, err = os.Stat(path + ".3")
	assert.True(t, os.IsNotExist(err))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "input %q", tt.in)
	}
}

func TestDebugConfig(t *testing.T) {
	cfg := DebugConfig()

	assert.Equal(t, "debug", cfg.Level)
	assert.Equal(t, DefaultLogPath(), cfg.FilePath)
}
