// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the workspace viewer.
type KeyMap struct {
	// Workspace navigation.
	Next key.Binding // Focus the next open item.
	Prev key.Binding // Focus the previous open item.

	// Item arrangement.
	MoveUp   key.Binding // Relocate the focused item one slot earlier.
	MoveDown key.Binding // Relocate the focused item one slot later.

	// Focused item display.
	Zoom       key.Binding // Cycle the zoom level.
	ToggleFold key.Binding // Fold or unfold the first doc section.
	FoldSelect key.Binding // Prefix key: the next digit picks the section.

	Close  key.Binding // Close the focused item.
	Finder key.Binding // Open the finder overlay.

	// Sidebar.
	SidebarToggle key.Binding // Move keyboard focus between panes.
	SidebarEnter  key.Binding // Descend into a namespace / open a definition.
	SidebarBack   key.Binding // Ascend one namespace level.

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style j/k
// alongside arrow keys; alt+arrows rearrange.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "next"),
	),
	Prev: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "prev"),
	),
	MoveUp: key.NewBinding(
		key.WithKeys("alt+up", "alt+k"),
		key.WithHelp("M-↑", "move up"),
	),
	MoveDown: key.NewBinding(
		key.WithKeys("alt+down", "alt+j"),
		key.WithHelp("M-↓", "move down"),
	),
	Zoom: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("z", "zoom"),
	),
	ToggleFold: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("↵", "fold section"),
	),
	FoldSelect: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f1-9", "fold nth"),
	),
	Close: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "close"),
	),
	Finder: key.NewBinding(
		key.WithKeys("/", "ctrl+k"),
		key.WithHelp("/", "find"),
	),
	SidebarToggle: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("Tab", "switch pane"),
	),
	SidebarEnter: key.NewBinding(
		key.WithKeys("enter", "l", "right"),
		key.WithHelp("↵", "open"),
	),
	SidebarBack: key.NewBinding(
		key.WithKeys("backspace", "h", "left"),
		key.WithHelp("BS", "up a level"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
