// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides shared terminal UI building blocks for
// uniscope's viewer: the color theme (including Unison syntax
// category colors), scrollbar rendering, ANSI-aware overlay splicing
// for the finder, and the fzf-backed fuzzy matcher.
//
// The workspace viewer owns layout and domain rendering; this package
// holds only the generic pieces with no knowledge of definitions or
// workspaces beyond syntax categories.
package tui
