// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/tui"
	"github.com/unison-tools/uniscope/lib/workspace"
)

// cardRenderer renders workspace item cards. One instance per model;
// it carries the style context every card needs.
type cardRenderer struct {
	theme    tui.Theme
	renderer *lipgloss.Renderer
	width    int
}

// Render produces the lines of one item card. Focused cards carry an
// accent bar down their left edge.
func (cards *cardRenderer) Render(item workspace.Item, focused bool) []string {
	var body []string
	switch item := item.(type) {
	case *workspace.LoadingItem:
		body = append(body, cards.headerLine(item.Ref, ""))
		body = append(body, cards.faint("  fetching…"))

	case *workspace.FailedItem:
		body = append(body, cards.headerLine(item.Ref, ""))
		errorStyle := cards.renderer.NewStyle().Foreground(cards.theme.ErrorText)
		for _, line := range tui.Excerpt(item.Err.Error(), cards.contentWidth()-2, 3) {
			body = append(body, "  "+errorStyle.Render(line))
		}
		body = append(body, cards.faint("  close and reopen to retry"))

	case *workspace.LoadedItem:
		body = cards.renderLoaded(item)
	}
	return cards.applyGutter(body, focused)
}

// contentWidth is the card width inside the focus gutter.
func (cards *cardRenderer) contentWidth() int {
	width := cards.width - 2
	if width < 20 {
		width = 20
	}
	return width
}

func (cards *cardRenderer) renderLoaded(item *workspace.LoadedItem) []string {
	payload := item.Definition
	lines := []string{cards.headerLine(item.Ref, item.Zoom.String())}

	switch item.Zoom {
	case workspace.ZoomFar:
		lines = append(lines, cards.syntaxLines(payload.Signature())...)

	case workspace.ZoomMedium:
		lines = append(lines, cards.sourceLines(payload)...)

	case workspace.ZoomNear:
		lines = append(lines, cards.sourceLines(payload)...)
		if docs := payload.Docs(); !docs.IsEmpty() {
			lines = append(lines, "")
			lines = append(lines, cards.docLines(docs, item.Folds)...)
		}
	}
	return lines
}

// sourceLines renders the full annotated source, or the signature
// with a builtin marker for definitions the runtime provides.
func (cards *cardRenderer) sourceLines(payload definition.Definition) []string {
	if isBuiltin(payload) {
		lines := cards.syntaxLines(payload.Signature())
		return append(lines, cards.faint("  (builtin)"))
	}
	source := payload.Source()
	if source.IsEmpty() {
		return cards.syntaxLines(payload.Signature())
	}
	return cards.syntaxLines(source)
}

func isBuiltin(payload definition.Definition) bool {
	switch payload := payload.(type) {
	case *definition.Term:
		return payload.Builtin
	case *definition.Type:
		return payload.Builtin
	default:
		return false
	}
}

// headerLine renders the card header: kind badge, qualified name with
// the last segment emphasized, short hash, and the zoom level.
func (cards *cardRenderer) headerLine(reference ref.Reference, zoom string) string {
	badge := cards.renderer.NewStyle().
		Foreground(cards.theme.FocusAccent).
		Render("[" + kindBadge(reference.Kind()) + "]")

	name := reference.Name()
	var nameText string
	if name.IsZero() {
		nameText = cards.renderer.NewStyle().
			Foreground(cards.theme.SyntaxHash).
			Render(reference.Hash().Short(10))
	} else {
		qualifier := ""
		if parent := name.Parent(); !parent.IsZero() {
			qualifier = parent.String() + "."
		}
		nameText = cards.renderer.NewStyle().Foreground(cards.theme.FaintText).Render(qualifier) +
			cards.renderer.NewStyle().Foreground(cards.theme.HeaderForeground).Bold(true).Render(name.Last())
		if !reference.Hash().IsZero() {
			nameText += cards.renderer.NewStyle().
				Foreground(cards.theme.SyntaxHash).
				Render(reference.Hash().Short(10))
		}
	}

	header := badge + " " + nameText
	if zoom != "" {
		zoomTag := cards.renderer.NewStyle().
			Foreground(cards.theme.FaintText).
			Render("· " + zoom)
		header += " " + zoomTag
	}
	return ansi.Truncate(header, cards.contentWidth(), "…")
}

func kindBadge(kind ref.Kind) string {
	switch kind {
	case ref.Term:
		return "term"
	case ref.Type:
		return "type"
	case ref.DataConstructor:
		return "ctor"
	case ref.AbilityConstructor:
		return "ability"
	default:
		return "?"
	}
}

// syntaxLines renders annotated source lines with syntax colors, two
// spaces of indent, truncated to the card width.
func (cards *cardRenderer) syntaxLines(source definition.SyntaxText) []string {
	var lines []string
	for _, line := range source.Lines() {
		var rendered strings.Builder
		rendered.WriteString("  ")
		for _, segment := range line {
			style := cards.renderer.NewStyle().
				Foreground(cards.theme.SyntaxColor(segment.Category))
			rendered.WriteString(style.Render(segment.Text))
		}
		lines = append(lines, ansi.Truncate(rendered.String(), cards.contentWidth(), "…"))
	}
	return lines
}

// visibleFoldIDs returns the fold ids of the sections currently
// visible on a card, in the order their numbers render. Sections
// inside a folded section are hidden and carry no number, so the f1-9
// chord and the rendered labels stay in agreement.
func visibleFoldIDs(docs definition.Docs, folds workspace.FoldSet) []definition.FoldID {
	var ids []definition.FoldID
	var walk func(blocks []definition.DocBlock)
	walk = func(blocks []definition.DocBlock) {
		for _, block := range blocks {
			section, ok := block.(*definition.DocSection)
			if !ok {
				continue
			}
			ids = append(ids, section.ID)
			if !folds.Folded(section.ID) {
				walk(section.Blocks)
			}
		}
	}
	walk(docs.Blocks)
	return ids
}

// docLines renders the documentation tree. Foldable sections are
// numbered in visible document order; folded sections show only their
// header.
func (cards *cardRenderer) docLines(docs definition.Docs, folds workspace.FoldSet) []string {
	walker := &docWalker{
		cards:   cards,
		folds:   folds,
		numbers: make(map[definition.FoldID]int),
	}
	for index, id := range visibleFoldIDs(docs, folds) {
		walker.numbers[id] = index + 1
	}
	walker.blocks(docs.Blocks, 0)
	return walker.lines
}

type docWalker struct {
	cards *cardRenderer
	folds workspace.FoldSet

	// numbers maps each visible section to its rendered label; the
	// f1-9 chord targets sections by this number.
	numbers map[definition.FoldID]int

	lines []string
}

func (walker *docWalker) blocks(blocks []definition.DocBlock, depth int) {
	indent := strings.Repeat("  ", depth) + "  "
	for _, block := range blocks {
		switch block := block.(type) {
		case *definition.DocParagraph:
			rendered := renderMarkdown(block.Markdown, walker.cards.theme,
				walker.cards.renderer, walker.cards.contentWidth()-len(indent))
			for _, line := range strings.Split(rendered, "\n") {
				walker.lines = append(walker.lines, indent+line)
			}

		case *definition.DocCode:
			highlighted := highlightCode(block.Source, block.Language)
			for _, line := range strings.Split(strings.TrimRight(highlighted, "\n"), "\n") {
				walker.lines = append(walker.lines, indent+"  "+line)
			}

		case *definition.DocSection:
			folded := walker.folds.Folded(block.ID)
			walker.lines = append(walker.lines, indent+walker.sectionHeader(block.Title, walker.numbers[block.ID], folded))
			if !folded {
				walker.blocks(block.Blocks, depth+1)
			}
		}
	}
}

func (walker *docWalker) sectionHeader(title string, number int, folded bool) string {
	marker := "▾"
	if folded {
		marker = "▸"
	}
	markerStyle := walker.cards.renderer.NewStyle().Foreground(walker.cards.theme.FocusAccent)
	numberStyle := walker.cards.renderer.NewStyle().Foreground(walker.cards.theme.FaintText)
	titleStyle := walker.cards.renderer.NewStyle().
		Foreground(walker.cards.theme.HeaderForeground).
		Bold(true)
	return markerStyle.Render(marker) + " " +
		titleStyle.Render(title) + " " +
		numberStyle.Render("["+strconv.Itoa(number)+"]")
}

// applyGutter prefixes every card line with the focus gutter: an
// accent bar for the focused card, blank space otherwise.
func (cards *cardRenderer) applyGutter(lines []string, focused bool) []string {
	gutter := "  "
	if focused {
		gutter = cards.renderer.NewStyle().
			Foreground(cards.theme.FocusAccent).
			Render("▌") + " "
	}
	result := make([]string, len(lines))
	for index, line := range lines {
		result[index] = gutter + line
	}
	return result
}

func (cards *cardRenderer) faint(text string) string {
	return cards.renderer.NewStyle().Foreground(cards.theme.FaintText).Render(text)
}
