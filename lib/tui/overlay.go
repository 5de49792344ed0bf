// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay content, anchored at (anchorX, anchorY) in screen
// coordinates. Truncation is ANSI-aware, so escape sequences in the
// underlying view survive on both sides of the overlay. The finder
// uses this to float over the workspace without a separate screen.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		viewLineIndex := anchorY + index
		if viewLineIndex < 0 || viewLineIndex >= len(viewLines) {
			continue
		}

		viewLine := viewLines[viewLineIndex]
		viewLineWidth := ansi.StringWidth(viewLine)

		// prefix + reset + overlay + reset + suffix
		var result strings.Builder
		if anchorX > 0 {
			result.WriteString(ansi.Truncate(viewLine, anchorX, ""))
		}
		result.WriteString("\x1b[0m")
		result.WriteString(overlayLine)
		result.WriteString("\x1b[0m")

		suffixStart := anchorX + overlayWidth
		if suffixStart < viewLineWidth {
			result.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}

		viewLines[viewLineIndex] = result.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterAnchor returns the top-left anchor that centers a box of the
// given size on a screen of the given size. Coordinates are clamped
// at zero for boxes larger than the screen.
func CenterAnchor(screenWidth, screenHeight, boxWidth, boxHeight int) (anchorX, anchorY int) {
	anchorX = (screenWidth - boxWidth) / 2
	if anchorX < 0 {
		anchorX = 0
	}
	anchorY = (screenHeight - boxHeight) / 2
	if anchorY < 0 {
		anchorY = 0
	}
	return anchorX, anchorY
}

// PadOverlayLine pads styled content to the overlay's inner width with
// background-colored spaces, one-space margins on both sides.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	contentWidth := ansi.StringWidth(styledContent)
	rightPad := innerWidth - contentWidth
	if rightPad < 0 {
		rightPad = 0
	}
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}

// Excerpt returns the first maxLines non-blank lines of a text, each
// truncated to maxWidth with an ellipsis. Used for failure cards and
// one-line previews.
func Excerpt(text string, maxWidth, maxLines int) []string {
	var result []string
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if ansi.StringWidth(trimmed) > maxWidth {
			trimmed = ansi.Truncate(trimmed, maxWidth-1, "…")
		}
		result = append(result, trimmed)
		if len(result) >= maxLines {
			break
		}
	}
	return result
}
