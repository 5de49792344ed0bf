// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for uniscope.
//
// Configuration is loaded from a single file specified by either the
// UNISCOPE_CONFIG environment variable (via [Load]) or a --config
// flag (via [LoadFile]). There are no fallbacks, no ~/.config
// discovery, and no automatic file search. This ensures deterministic,
// auditable configuration with no hidden overrides.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded, so a config file
// can say ${HOME}/.cache/uniscope and stay portable. No other
// environment variables override config values.
//
// Key exports:
//
//   - [Config] -- master struct with API, Cache, Snapshot, UI, Logging
//   - [Default] -- returns a Config with built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
//
// This package depends on no other uniscope packages.
package config
