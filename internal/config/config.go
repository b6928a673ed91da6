// Package config loads linecomment settings from TOML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Environment variables that override file settings.
const (
	EnvLogLevel  = "LINECOMMENT_LOG_LEVEL"
	EnvLogFormat = "LINECOMMENT_LOG_FORMAT"
	EnvBackup    = "LINECOMMENT_BACKUP"
)

// Config holds the command line tool's settings.
// Nothing here changes the comment marker or which lines get commented.
type Config struct {
	// LogLevel is one of "debug", "info", "warn", "error"
	LogLevel string `toml:"log_level"`
	// LogFormat is "logfmt" or "json"
	LogFormat string `toml:"log_format"`
	// Backup writes <file>.bak before an in-place rewrite
	Backup bool `toml:"backup"`

	UI UIConfig `toml:"ui"`
}

// UIConfig contains interactive editor settings.
type UIConfig struct {
	// HighlightBoundaries marks the two lines a pending selection would comment
	HighlightBoundaries bool `toml:"highlight_boundaries"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "logfmt",
		Backup:    false,
		UI: UIConfig{
			HighlightBoundaries: true,
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/linecomment/config.toml, falling back to the OS config dir.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate config dir: %w", err)
		}
	}
	return filepath.Join(dir, "linecomment", "config.toml"), nil
}

// LoadFromPath reads path over the defaults. A missing file yields the defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Load reads path (or the default path when empty), applies environment overrides and validates.
func Load(path string) (*Config, error) {
	if path == "" {
		if p, err := DefaultPath(); err == nil {
			path = p
		}
	}
	cfg, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnvOverrides applies LINECOMMENT_* environment variables.
func (c *Config) ApplyEnvOverrides() error {
	if lvl := os.Getenv(EnvLogLevel); lvl != "" {
		c.LogLevel = lvl
	}
	if format := os.Getenv(EnvLogFormat); format != "" {
		c.LogFormat = format
	}
	if backup := os.Getenv(EnvBackup); backup != "" {
		v, err := strconv.ParseBool(backup)
		if err != nil {
			return fmt.Errorf("invalid %s value %q: %w", EnvBackup, backup, err)
		}
		c.Backup = v
	}
	return nil
}

// Validate checks that enumerated settings hold known values.
func (c *Config) Validate() error {
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q: must be debug, info, warn or error", c.LogLevel)
	}
	switch strings.ToLower(c.LogFormat) {
	case "logfmt", "json":
	default:
		return fmt.Errorf("invalid log_format %q: must be logfmt or json", c.LogFormat)
	}
	return nil
}
