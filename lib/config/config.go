// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the master configuration for uniscope.
type Config struct {
	// API configures the Unison codebase HTTP API.
	API APIConfig `yaml:"api"`

	// Cache configures the on-disk definition cache.
	Cache CacheConfig `yaml:"cache"`

	// Snapshot configures offline snapshot browsing.
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// UI configures display behavior.
	UI UIConfig `yaml:"ui"`

	// Logging configures the debug log file.
	Logging LoggingConfig `yaml:"logging"`
}

// APIConfig configures the codebase server connection.
type APIConfig struct {
	// BaseURL is the root of the codebase HTTP API, for example
	// http://127.0.0.1:5858/api. Empty when browsing a snapshot.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each API request.
	// Default: 10s
	Timeout time.Duration `yaml:"timeout"`
}

// CacheConfig configures the on-disk definition cache.
type CacheConfig struct {
	// Dir is the cache directory.
	// Default: ${HOME}/.cache/uniscope
	Dir string `yaml:"dir"`

	// Disabled turns the cache off entirely.
	Disabled bool `yaml:"disabled"`
}

// SnapshotConfig configures offline browsing.
type SnapshotConfig struct {
	// Path is a JSONC snapshot file to browse instead of a live
	// server. Takes precedence over api.base_url when set.
	Path string `yaml:"path"`
}

// UIConfig configures display behavior.
type UIConfig struct {
	// DefaultZoom is the zoom level new items open at: far, medium,
	// or near.
	// Default: medium
	DefaultZoom string `yaml:"default_zoom"`

	// Namespace is the root namespace the sidebar browses from.
	// Empty means the codebase root.
	Namespace string `yaml:"namespace"`
}

// LoggingConfig configures the debug log file. The TUI owns the
// terminal, so file output is the only place verbose logs can go.
type LoggingConfig struct {
	// File receives JSON log lines. Empty disables file logging.
	File string `yaml:"file"`

	// Level is the minimum level written: debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`
}

// Default returns the built-in configuration. The config file is
// optional for uniscope: a bare `uniscope --api URL` works with these
// values alone.
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		API: APIConfig{
			Timeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Dir: filepath.Join(homeDir, ".cache", "uniscope"),
		},
		UI: UIConfig{
			DefaultZoom: "medium",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the UNISCOPE_CONFIG environment
// variable, falling back to the defaults when it is unset.
func Load() (*Config, error) {
	configPath := os.Getenv("UNISCOPE_CONFIG")
	if configPath == "" {
		return Default(), nil
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from a specific file path, merged over
// the defaults. Environment variables do not override config values;
// the only expansion performed is ${VAR} patterns in path fields.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	cfg.expandVariables()
	return cfg, nil
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in path
// fields.
func (c *Config) expandVariables() {
	vars := map[string]string{
		"HOME": os.Getenv("HOME"),
	}
	c.Cache.Dir = expandVars(c.Cache.Dir, vars)
	c.Snapshot.Path = expandVars(c.Snapshot.Path, vars)
	c.Logging.File = expandVars(c.Logging.File, vars)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

func expandVars(s string, vars map[string]string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		name := parts[1]
		defaultValue := ""
		if len(parts) >= 3 {
			defaultValue = parts[2]
		}

		if value, ok := vars[name]; ok && value != "" {
			return value
		}
		if value := os.Getenv(name); value != "" {
			return value
		}
		return defaultValue
	})
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error

	if c.API.BaseURL == "" && c.Snapshot.Path == "" {
		errs = append(errs, fmt.Errorf("either api.base_url or snapshot.path is required"))
	}
	if c.API.Timeout < 0 {
		errs = append(errs, fmt.Errorf("api.timeout must not be negative"))
	}

	zoomValues := []string{"far", "medium", "near"}
	if !contains(zoomValues, c.UI.DefaultZoom) {
		errs = append(errs, fmt.Errorf("ui.default_zoom must be one of: %v", zoomValues))
	}

	levelValues := []string{"debug", "info", "warn", "error"}
	if !contains(levelValues, c.Logging.Level) {
		errs = append(errs, fmt.Errorf("logging.level must be one of: %v", levelValues))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

func contains(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}
