// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/junegunn/fzf/src/util"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/tui"
)

// finderMaxRows is the maximum number of result rows the overlay
// shows at once.
const finderMaxRows = 12

// finderMatch is one ranked finder row: a server hit plus its fuzzy
// score and matched rune positions for highlighting.
type finderMatch struct {
	result    codebase.FindResult
	score     int
	positions []int
}

// Finder is the fuzzy-search overlay state. The server narrows
// candidates per query; fzf ranks and highlights them client-side.
type Finder struct {
	input   textinput.Model
	results []codebase.FindResult
	matches []finderMatch
	cursor  int
	pending bool
	err     error
	slab    *util.Slab
}

// NewFinder creates an inactive finder.
func NewFinder() Finder {
	input := textinput.New()
	input.Prompt = "/ "
	input.Placeholder = "find definitions"
	input.CharLimit = 120
	return Finder{
		input: input,
		slab:  tui.NewSlab(),
	}
}

// Open resets the finder for a fresh search and focuses its input.
func (finder *Finder) Open() {
	finder.input.SetValue("")
	finder.input.Focus()
	finder.results = nil
	finder.matches = nil
	finder.cursor = 0
	finder.err = nil
	finder.pending = true
}

// Query returns the current query text.
func (finder *Finder) Query() string { return finder.input.Value() }

// HandleInput feeds a message to the text input. Reports whether the
// query text changed, in which case the caller issues a new search.
func (finder *Finder) HandleInput(message tea.Msg) bool {
	before := finder.input.Value()
	finder.input, _ = finder.input.Update(message)
	return finder.input.Value() != before
}

// SetResults installs a server response. Responses for queries the
// user has already typed past are dropped.
func (finder *Finder) SetResults(message findResultsMsg) {
	if message.query != finder.input.Value() {
		return
	}
	finder.pending = false
	finder.err = message.err
	finder.results = message.results
	finder.rank()
}

// rank fuzzy-matches the current query over the server results and
// sorts by score, best first. Name order breaks ties for stability.
func (finder *Finder) rank() {
	pattern := []rune(finder.input.Value())
	finder.matches = finder.matches[:0]
	for _, result := range finder.results {
		name := result.Ref.Name().String()
		if name == "" {
			name = result.Ref.Hash().String()
		}
		match := tui.FuzzyMatch(name, pattern, finder.slab)
		if !match.Matched {
			continue
		}
		finder.matches = append(finder.matches, finderMatch{
			result:    result,
			score:     match.Score,
			positions: match.Positions,
		})
	}
	sort.SliceStable(finder.matches, func(left, right int) bool {
		if finder.matches[left].score != finder.matches[right].score {
			return finder.matches[left].score > finder.matches[right].score
		}
		return finder.matches[left].result.Ref.Compare(finder.matches[right].result.Ref) < 0
	})
	if finder.cursor >= len(finder.matches) {
		finder.cursor = 0
	}
}

// MoveCursor moves the result selection, clamped to the match list.
func (finder *Finder) MoveCursor(delta int) {
	finder.cursor += delta
	if finder.cursor < 0 {
		finder.cursor = 0
	}
	if finder.cursor >= len(finder.matches) {
		finder.cursor = len(finder.matches) - 1
	}
	if finder.cursor < 0 {
		finder.cursor = 0
	}
}

// Selected returns the highlighted result, if any.
func (finder *Finder) Selected() (codebase.FindResult, bool) {
	if finder.cursor < 0 || finder.cursor >= len(finder.matches) {
		return codebase.FindResult{}, false
	}
	return finder.matches[finder.cursor].result, true
}

// View renders the overlay box as fixed-width lines for splicing over
// the workspace view.
func (finder *Finder) View(theme tui.Theme, renderer *lipgloss.Renderer, width int) []string {
	innerWidth := width - 2
	background := renderer.NewStyle().Background(theme.FocusBackground)
	pad := func(content string) string {
		return tui.PadOverlayLine(content, innerWidth, background)
	}

	lines := []string{
		pad(renderer.NewStyle().
			Foreground(theme.HeaderForeground).
			Background(theme.FocusBackground).
			Render(ansi.Truncate(finder.input.View(), innerWidth, "…"))),
		pad(renderer.NewStyle().
			Foreground(theme.BorderColor).
			Background(theme.FocusBackground).
			Render(strings.Repeat("─", innerWidth))),
	}

	switch {
	case finder.err != nil:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.ErrorText).
			Background(theme.FocusBackground).
			Render(ansi.Truncate("search failed: "+finder.err.Error(), innerWidth, "…"))))

	case finder.pending && len(finder.matches) == 0:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.FaintText).
			Background(theme.FocusBackground).
			Render("searching…")))

	case len(finder.matches) == 0:
		lines = append(lines, pad(renderer.NewStyle().
			Foreground(theme.FaintText).
			Background(theme.FocusBackground).
			Render("no matches")))

	default:
		first := finder.visibleStart()
		for index := first; index < len(finder.matches) && index < first+finderMaxRows; index++ {
			lines = append(lines, pad(finder.renderRow(theme, renderer, finder.matches[index], index == finder.cursor, innerWidth)))
		}
	}
	return lines
}

// visibleStart returns the first visible row so the cursor stays in
// the window.
func (finder *Finder) visibleStart() int {
	if finder.cursor < finderMaxRows {
		return 0
	}
	return finder.cursor - finderMaxRows + 1
}

// renderRow renders one result: the name with matched runes
// highlighted, then the faint signature.
func (finder *Finder) renderRow(theme tui.Theme, renderer *lipgloss.Renderer, match finderMatch, selected bool, width int) string {
	background := theme.FocusBackground
	nameColor := theme.NormalText
	marker := "  "
	if selected {
		nameColor = theme.HeaderForeground
		marker = renderer.NewStyle().
			Foreground(theme.FocusAccent).
			Background(background).
			Render("▸ ")
	}

	name := match.result.Ref.Name().String()
	if name == "" {
		name = match.result.Ref.Hash().String()
	}
	highlighted := make(map[int]bool, len(match.positions))
	for _, position := range match.positions {
		highlighted[position] = true
	}

	var row strings.Builder
	row.WriteString(marker)
	plain := renderer.NewStyle().Foreground(nameColor).Background(background)
	accent := renderer.NewStyle().Foreground(theme.MatchForeground).Background(background).Bold(true)
	runes := []rune(name)
	for start := 0; start < len(runes); {
		end := start
		for end < len(runes) && highlighted[end] == highlighted[start] {
			end++
		}
		segment := string(runes[start:end])
		if highlighted[start] {
			row.WriteString(accent.Render(segment))
		} else {
			row.WriteString(plain.Render(segment))
		}
		start = end
	}

	if match.result.Signature != "" {
		row.WriteString(renderer.NewStyle().
			Foreground(theme.FaintText).
			Background(background).
			Render("  " + match.result.Signature))
	}
	return ansi.Truncate(row.String(), width, "…")
}
