// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// thumbSpan computes the scrollbar thumb geometry: the first row of
// the thumb and its size, both in rows. When the content fits the
// viewport the thumb covers the whole track.
func thumbSpan(height, totalLines, visibleLines, scrollOffset int) (start, size int) {
	if totalLines <= visibleLines || totalLines <= 0 {
		return 0, height
	}

	size = height * visibleLines / totalLines
	if size < 1 {
		size = 1
	}

	scrollable := totalLines - visibleLines
	track := height - size
	if scrollable > 0 && track > 0 {
		start = scrollOffset * track / scrollable
	}
	if start+size > height {
		start = height - size
	}
	return start, size
}

// ScrollbarColumn renders a one-cell-wide scrollbar as individual
// rows, so callers can append a cell to each content line instead of
// compositing a separate column. The thumb marks the visible slice of
// the content and picks up the focus accent when the pane is focused.
func ScrollbarColumn(theme Theme, height, totalLines, visibleLines, scrollOffset int, focused bool) []string {
	if height <= 0 {
		return nil
	}

	thumbColor := theme.BorderColor
	if focused {
		thumbColor = theme.FocusAccent
	}
	thumb := lipgloss.NewStyle().Foreground(thumbColor).Render("┃")
	track := lipgloss.NewStyle().Foreground(theme.BorderColor).Render("│")

	start, size := thumbSpan(height, totalLines, visibleLines, scrollOffset)
	cells := make([]string, height)
	for row := range cells {
		cell := track
		if row >= start && row < start+size {
			cell = thumb
		}
		cells[row] = cell
	}
	return cells
}
