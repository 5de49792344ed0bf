// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspace implements the open-definitions model at the
// center of the explorer: an ordered collection of open items with a
// single focus ([Items]), the per-item state machine ([Item] —
// loading, failed, or loaded with zoom and doc-fold state), and the
// [Workspace] orchestrator that translates user intents and fetch
// completions into collection operations.
//
// The collection is a zipper — a before sequence, an optional focused
// element, and an after sequence — rather than a slice plus index.
// Cursor movement and neighbor swaps are local shuffles with no
// index arithmetic, and removing the focused element has an explicit
// refocus policy (next element, else previous, else empty) instead of
// a clamped index.
//
// Everything here runs on the UI event loop: one event mutates the
// model to completion before the next arrives, so there is no locking.
// Fetches complete asynchronously and may race user actions only in
// the benign sense that a result can arrive for an item the user has
// already closed — Resolve finds no matching reference and does
// nothing, which is the designed behavior, not an error.
package workspace
