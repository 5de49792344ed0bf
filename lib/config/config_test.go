// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uniscope.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.API.Timeout != 10*time.Second {
		t.Errorf("default timeout = %v", cfg.API.Timeout)
	}
	if cfg.UI.DefaultZoom != "medium" {
		t.Errorf("default zoom = %q", cfg.UI.DefaultZoom)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q", cfg.Logging.Level)
	}
	if !strings.HasSuffix(cfg.Cache.Dir, filepath.Join(".cache", "uniscope")) {
		t.Errorf("default cache dir = %q", cfg.Cache.Dir)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
api:
  base_url: http://127.0.0.1:5858/api
  timeout: 30s
ui:
  default_zoom: near
  namespace: base
logging:
  level: debug
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:5858/api" {
		t.Errorf("base url = %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Errorf("timeout = %v", cfg.API.Timeout)
	}
	if cfg.UI.DefaultZoom != "near" {
		t.Errorf("zoom = %q", cfg.UI.DefaultZoom)
	}
	if cfg.UI.Namespace != "base" {
		t.Errorf("namespace = %q", cfg.UI.Namespace)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q", cfg.Logging.Level)
	}
	// Unset fields keep their defaults.
	if cfg.Cache.Dir == "" {
		t.Error("cache dir default should survive a partial file")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("loading an absent file should fail")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	path := writeConfig(t, "api: [not a mapping")
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}

func TestLoadWithoutEnvUsesDefaults(t *testing.T) {
	t.Setenv("UNISCOPE_CONFIG", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.UI.DefaultZoom != "medium" {
		t.Errorf("zoom = %q, want the default", cfg.UI.DefaultZoom)
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "snapshot:\n  path: /tmp/snap.jsonc\n")
	t.Setenv("UNISCOPE_CONFIG", path)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Snapshot.Path != "/tmp/snap.jsonc" {
		t.Errorf("snapshot path = %q", cfg.Snapshot.Path)
	}
}

func TestVariableExpansion(t *testing.T) {
	t.Setenv("HOME", "/home/alice")
	path := writeConfig(t, `
cache:
  dir: ${HOME}/.cache/uniscope
snapshot:
  path: ${UNISCOPE_SNAPSHOT:-/var/lib/uniscope/snap.jsonc}
`)
	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Cache.Dir != "/home/alice/.cache/uniscope" {
		t.Errorf("cache dir = %q", cfg.Cache.Dir)
	}
	if cfg.Snapshot.Path != "/var/lib/uniscope/snap.jsonc" {
		t.Errorf("snapshot path should use the default, got %q", cfg.Snapshot.Path)
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	// No source configured.
	if err := cfg.Validate(); err == nil {
		t.Error("validation should require a source")
	}

	cfg.API.BaseURL = "http://127.0.0.1:5858/api"
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config rejected: %v", err)
	}

	cfg.UI.DefaultZoom = "cosmic"
	if err := cfg.Validate(); err == nil {
		t.Error("validation should reject an unknown zoom level")
	}

	cfg.UI.DefaultZoom = "far"
	cfg.Logging.Level = "loud"
	if err := cfg.Validate(); err == nil {
		t.Error("validation should reject an unknown log level")
	}
}
