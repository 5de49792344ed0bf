// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/perspective"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/tui"
)

// sidebarWidth is the fixed column width of the namespace pane,
// including its right border.
const sidebarWidth = 28

// sidebarMinScreenWidth is the screen width below which the sidebar is
// hidden entirely to leave room for cards.
const sidebarMinScreenWidth = 80

// Sidebar is the namespace browser pane: a perspective into the name
// tree plus the listing of the current namespace.
type Sidebar struct {
	perspective perspective.Perspective
	listing     codebase.NamespaceListing
	cursor      int
	loading     bool
	err         error
}

// NewSidebar creates a sidebar rooted at the given namespace, with no
// listing loaded yet.
func NewSidebar(root ref.Name) Sidebar {
	return Sidebar{
		perspective: perspective.At(root),
		loading:     true,
	}
}

// Current returns the namespace the sidebar is showing.
func (sidebar *Sidebar) Current() ref.Name {
	return sidebar.perspective.Current()
}

// SetListing installs a browse response for the current namespace.
func (sidebar *Sidebar) SetListing(message browseResultMsg) {
	sidebar.loading = false
	sidebar.err = message.err
	if message.err != nil {
		sidebar.listing = codebase.NamespaceListing{}
		return
	}
	sidebar.listing = message.listing
	if sidebar.cursor >= len(sidebar.listing.Entries) {
		sidebar.cursor = 0
	}
}

// MoveCursor moves the entry selection, clamped to the listing.
func (sidebar *Sidebar) MoveCursor(delta int) {
	sidebar.cursor += delta
	if sidebar.cursor >= len(sidebar.listing.Entries) {
		sidebar.cursor = len(sidebar.listing.Entries) - 1
	}
	if sidebar.cursor < 0 {
		sidebar.cursor = 0
	}
}

// Selected returns the entry under the cursor, if any.
func (sidebar *Sidebar) Selected() (codebase.NamespaceEntry, bool) {
	if sidebar.cursor < 0 || sidebar.cursor >= len(sidebar.listing.Entries) {
		return codebase.NamespaceEntry{}, false
	}
	return sidebar.listing.Entries[sidebar.cursor], true
}

// Descend moves the perspective into the selected namespace entry.
// Reports whether a new listing needs to be fetched.
func (sidebar *Sidebar) Descend(entry codebase.NamespaceEntry) bool {
	if !entry.Namespace {
		return false
	}
	moved, err := sidebar.perspective.Into(entry.Name)
	if err != nil {
		return false
	}
	sidebar.perspective = moved
	sidebar.cursor = 0
	sidebar.loading = true
	sidebar.err = nil
	return true
}

// Ascend moves the perspective one namespace up, clamped at the root.
// Reports whether the perspective actually moved.
func (sidebar *Sidebar) Ascend() bool {
	if sidebar.perspective.AtRoot() {
		return false
	}
	sidebar.perspective = sidebar.perspective.Up()
	sidebar.cursor = 0
	sidebar.loading = true
	sidebar.err = nil
	return true
}

// View renders the sidebar as exactly height lines of sidebarWidth
// columns, with a vertical border on the right edge.
func (sidebar *Sidebar) View(theme tui.Theme, renderer *lipgloss.Renderer, height int, focused bool) []string {
	innerWidth := sidebarWidth - 2
	border := renderer.NewStyle().Foreground(theme.BorderColor).Render("│")

	pad := func(content string) string {
		padded := ansi.Truncate(content, innerWidth, "…")
		for ansi.StringWidth(padded) < innerWidth {
			padded += " "
		}
		return padded + " " + border
	}

	lines := []string{pad(sidebar.breadcrumbLine(theme, renderer))}

	switch {
	case sidebar.err != nil:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.ErrorText).
			Render("browse failed")))

	case sidebar.loading:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.FaintText).
			Render("loading…")))

	case len(sidebar.listing.Entries) == 0:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.FaintText).
			Render("(empty)")))

	default:
		visible := height - 1
		first := 0
		if sidebar.cursor >= visible {
			first = sidebar.cursor - visible + 1
		}
		for index := first; index < len(sidebar.listing.Entries) && index < first+visible; index++ {
			selected := focused && index == sidebar.cursor
			lines = append(lines, pad(sidebar.entryLine(theme, renderer, sidebar.listing.Entries[index], selected)))
		}
	}

	for len(lines) < height {
		lines = append(lines, pad(""))
	}
	return lines[:height]
}

// breadcrumbLine shows where the perspective sits below its root.
func (sidebar *Sidebar) breadcrumbLine(theme tui.Theme, renderer *lipgloss.Renderer) string {
	crumb := "."
	if segments := sidebar.perspective.Breadcrumb(); len(segments) > 0 {
		crumb = ""
		for index, segment := range segments {
			if index > 0 {
				crumb += "."
			}
			crumb += segment
		}
	}
	return renderer.NewStyle().
		Foreground(theme.HeaderForeground).
		Bold(true).
		Render(crumb)
}

func (sidebar *Sidebar) entryLine(theme tui.Theme, renderer *lipgloss.Renderer, entry codebase.NamespaceEntry, selected bool) string {
	marker := "  "
	if selected {
		marker = renderer.NewStyle().Foreground(theme.FocusAccent).Render("▸ ")
	}

	if entry.Namespace {
		return marker + renderer.NewStyle().
			Foreground(theme.SyntaxTypeRef).
			Render(entry.Name+"/")
	}

	color := theme.NormalText
	switch entry.Ref.Kind() {
	case ref.Type:
		color = theme.SyntaxTypeRef
	case ref.DataConstructor, ref.AbilityConstructor:
		color = theme.SyntaxConstructor
	}
	return marker + renderer.NewStyle().Foreground(color).Render(entry.Name)
}
