// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package workspaceui is the bubbletea front end for the workspace:
// keyboard capture, item card rendering, the namespace sidebar, and
// the finder overlay.
//
// The package owns all I/O and all presentation. Domain state lives in
// lib/workspace, which this package drives synchronously from Update:
// key chords become workspace shortcuts, completed fetches become
// Resolve calls, and the returned outcomes tell the view what to
// scroll or show. Definition fetches run as tea.Cmd functions against
// a codebase.Source, so the workspace itself never blocks.
package workspaceui
