// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package codebase fetches definitions from a Unison codebase.
//
// The [Source] interface abstracts where definitions come from:
// [APISource] talks to UCM's local HTTP API, [SnapshotSource] serves a
// codebase snapshot file for offline use and tests. [Cache] is an
// optional content-addressed disk cache layered under APISource —
// definitions are immutable by hash, so a cached entry never goes
// stale.
//
// All fetch methods take a context and return errors as values. The
// workspace turns fetch errors into failed items; nothing in this
// package panics on bad server data.
package codebase
