// Package config loads erljump configuration from two sources: a yaml
// user config under ~/.config/erljump/ and a per-project directive file
// named .erljump at the project root. The project file also doubles as
// a root marker.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the user-level erljump configuration.
type Config struct {
	Backend BackendConfig `yaml:"backend"`
	Jump    JumpConfig    `yaml:"jump"`
	Search  SearchConfig  `yaml:"search"`
}

// BackendConfig controls which search tool is used.
type BackendConfig struct {
	// Force pins the backend unconditionally; an error is raised if the
	// tool is missing. Values: ag, rg, git-grep, git-grep-plus-ag,
	// gnu-grep, grep.
	Force string `yaml:"force"`

	// Prefer is a soft preference, used when the tool is available.
	Prefer string `yaml:"prefer"`
}

// JumpConfig controls the jump decision and presentation.
type JumpConfig struct {
	// Aggressive jumps to the best candidate without confirmation even
	// when the context classification is ambiguous.
	Aggressive bool `yaml:"aggressive"`

	// PreferExternal ranks matches outside the origin file first, for
	// skipping past local noise.
	PreferExternal bool `yaml:"prefer_external"`

	// ConfirmStale asks before jumping into a file whose buffer has
	// unsaved modifications; false prints a warning and proceeds.
	ConfirmStale bool `yaml:"confirm_stale"`
}

// SearchConfig tunes search execution.
type SearchConfig struct {
	// SlowWarnThreshold is how long a whole search episode may take
	// before a one-shot "consider a faster backend" warning is
	// surfaced (e.g. "2s"). The search is never aborted.
	SlowWarnThreshold string `yaml:"slow_warn_threshold"`

	// Language overrides the project language (default: erlang).
	Language string `yaml:"language"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Jump: JumpConfig{
			ConfirmStale: true,
		},
		Search: SearchConfig{
			SlowWarnThreshold: "2s",
			Language:          "erlang",
		},
	}
}

// SlowWarnThreshold parses the configured threshold, falling back to
// the default on an empty or malformed value.
func (c Config) SlowWarnThreshold() time.Duration {
	d, err := time.ParseDuration(c.Search.SlowWarnThreshold)
	if err != nil || d <= 0 {
		return 2 * time.Second
	}
	return d
}

// UserConfigPath returns the user config file location.
func UserConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "erljump", "config.yaml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "erljump", "config.yaml")
	}
	return filepath.Join(home, ".config", "erljump", "config.yaml")
}

// LoadUser reads the user config, returning defaults when the file does
// not exist. A malformed file is an error; silently ignoring it would
// make misconfiguration invisible.
func LoadUser() (Config, error) {
	return LoadUserFrom(UserConfigPath())
}

// LoadUserFrom reads a user config from an explicit path.
func LoadUserFrom(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}
