package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.Backend.Force)
	assert.False(t, cfg.Jump.Aggressive)
	assert.True(t, cfg.Jump.ConfirmStale)
	assert.Equal(t, "2s", cfg.Search.SlowWarnThreshold)
	assert.Equal(t, "erlang", cfg.Search.Language)
}

func TestLoadUserFrom_MissingFileIsDefaults(t *testing.T) {
	cfg, err := LoadUserFrom(filepath.Join(t.TempDir(), "nope.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadUserFrom_OverridesMergeWithDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`backend:
  prefer: rg
jump:
  aggressive: true
search:
  slow_warn_threshold: 500ms
`), 0o644))

	cfg, err := LoadUserFrom(path)

	require.NoError(t, err)
	assert.Equal(t, "rg", cfg.Backend.Prefer)
	assert.True(t, cfg.Jump.Aggressive)
	assert.Equal(t, "500ms", cfg.Search.SlowWarnThreshold)
	assert.Equal(t, "erlang", cfg.Search.Language, "untouched keys keep defaults")
	assert.True(t, cfg.Jump.ConfirmStale, "untouched keys keep defaults")
}

func TestLoadUserFrom_MalformedIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: [oops\n"), 0o644))

	_, err := LoadUserFrom(path)

	assert.Error(t, err)
}

func TestSlowWarnThreshold(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2*time.Second, cfg.SlowWarnThreshold())

	cfg.Search.SlowWarnThreshold = "750ms"
	assert.Equal(t, 750*time.Millisecond, cfg.SlowWarnThreshold())

	cfg.Search.SlowWarnThreshold = "not a duration"
	assert.Equal(t, 2*time.Second, cfg.SlowWarnThreshold(), "malformed value falls back")

	cfg.Search.SlowWarnThreshold = "-1s"
	assert.Equal(t, 2*time.Second, cfg.SlowWarnThreshold(), "non-positive value falls back")
}
