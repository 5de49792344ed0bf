// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/tui"
	"github.com/unison-tools/uniscope/lib/workspace"
)

// FocusRegion identifies which pane receives keyboard input.
type FocusRegion int

const (
	// FocusWorkspace routes keys to the item cards.
	FocusWorkspace FocusRegion = iota
	// FocusSidebar routes keys to the namespace browser.
	FocusSidebar
	// FocusFinder routes keys to the finder overlay.
	FocusFinder
)

// ModelConfig carries everything the viewer needs at startup.
type ModelConfig struct {
	// Source answers definition, browse, and find requests.
	Source codebase.Source

	// Initial definitions to open before the first keypress,
	// typically from the --open flag.
	Initial []ref.Reference

	// Root is the namespace the sidebar browses from. Zero means the
	// codebase root.
	Root ref.Name

	// DefaultZoom overrides the zoom level freshly resolved items
	// open at. Nil means medium.
	DefaultZoom *workspace.Zoom

	// Theme overrides the default color scheme when non-nil.
	Theme *tui.Theme

	// Keys overrides the default key bindings when non-nil.
	Keys *KeyMap

	// Logger receives UI-level events. Nil discards them.
	Logger *slog.Logger
}

// Model is the bubbletea model for the whole viewer: the workspace of
// item cards, the namespace sidebar, and the finder overlay.
type Model struct {
	workspace *workspace.Workspace
	source    codebase.Source
	theme     tui.Theme
	keys      KeyMap
	logger    *slog.Logger
	renderer  *lipgloss.Renderer

	focus       FocusRegion
	finder      Finder
	sidebar     Sidebar
	defaultZoom workspace.Zoom

	width  int
	height int
	ready  bool

	// scrollOffset is the first visible line of the card column.
	scrollOffset int

	// scrollTarget is the reference to scroll into view on the next
	// render, set when an operation changes focus.
	scrollTarget ref.Reference

	// foldPending is set after the fold-select prefix key: the next
	// digit picks which numbered doc section to toggle.
	foldPending bool

	// statusLog holds a log record shown in the status bar until its
	// fade timer fires. Empty shows the help line.
	statusLog      string
	statusLogLevel slog.Level
}

// NewModel builds the viewer model. Fetches for the initial
// references start from Init.
func NewModel(config ModelConfig) Model {
	theme := tui.DefaultTheme
	if config.Theme != nil {
		theme = *config.Theme
	}
	keys := DefaultKeyMap
	if config.Keys != nil {
		keys = *config.Keys
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaultZoom := workspace.ZoomMedium
	if config.DefaultZoom != nil {
		defaultZoom = *config.DefaultZoom
	}

	return Model{
		workspace:   workspace.New(logger, config.Initial...),
		source:      config.Source,
		theme:       theme,
		keys:        keys,
		logger:      logger,
		renderer:    newLipglossRenderer(),
		finder:      NewFinder(),
		sidebar:     NewSidebar(config.Root),
		defaultZoom: defaultZoom,
	}
}

// Init starts the initial definition fetches and the first sidebar
// listing.
func (model Model) Init() tea.Cmd {
	commands := []tea.Cmd{browseNamespace(model.source, model.sidebar.Current())}
	for _, reference := range model.workspace.Items().References() {
		commands = append(commands, fetchDefinition(model.source, reference))
	}
	return tea.Batch(commands...)
}

func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		return model, nil

	case fetchResultMsg:
		outcome := model.workspace.Resolve(message.ref, message.payload, message.err)
		model.applyDefaultZoom(message.ref)
		model.applyOutcome(outcome)
		return model, nil

	case browseResultMsg:
		model.sidebar.SetListing(message)
		return model, nil

	case findResultsMsg:
		model.finder.SetResults(message)
		return model, nil

	case logRecordMsg:
		model.statusLog = message.Summary
		model.statusLogLevel = message.Level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.statusLog = ""
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}
	return model, nil
}

func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// ctrl+c quits from any pane, including while typing a query.
	if message.String() == "ctrl+c" {
		return model, tea.Quit
	}

	switch model.focus {
	case FocusFinder:
		return model.handleFinderKey(message)
	case FocusSidebar:
		return model.handleSidebarKey(message)
	default:
		return model.handleWorkspaceKey(message)
	}
}

func (model Model) handleFinderKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch message.String() {
	case "esc":
		model.focus = FocusWorkspace
		return model, nil

	case "up", "ctrl+p":
		model.finder.MoveCursor(-1)
		return model, nil

	case "down", "ctrl+n":
		model.finder.MoveCursor(1)
		return model, nil

	case "enter":
		selected, ok := model.finder.Selected()
		if !ok {
			return model, nil
		}
		model.focus = FocusWorkspace
		return model.openDefinition(selected.Ref)
	}

	if model.finder.HandleInput(message) {
		return model, findDefinitions(model.source, model.finder.Query())
	}
	return model, nil
}

func (model Model) handleSidebarKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Next):
		model.sidebar.MoveCursor(1)
		return model, nil

	case key.Matches(message, model.keys.Prev):
		model.sidebar.MoveCursor(-1)
		return model, nil

	case key.Matches(message, model.keys.SidebarEnter):
		entry, ok := model.sidebar.Selected()
		if !ok {
			return model, nil
		}
		if entry.Namespace {
			if model.sidebar.Descend(entry) {
				return model, browseNamespace(model.source, model.sidebar.Current())
			}
			return model, nil
		}
		model.focus = FocusWorkspace
		return model.openDefinition(entry.Ref)

	case key.Matches(message, model.keys.SidebarBack):
		if model.sidebar.Ascend() {
			return model, browseNamespace(model.source, model.sidebar.Current())
		}
		return model, nil

	case key.Matches(message, model.keys.SidebarToggle):
		model.focus = FocusWorkspace
		return model, nil

	case key.Matches(message, model.keys.Finder):
		return model.dispatchShortcut(workspace.ShortcutOpenFinder)
	}
	return model, nil
}

func (model Model) handleWorkspaceKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model.foldPending {
		model.foldPending = false
		if section := digitValue(message.String()); section > 0 {
			model.toggleSection(section)
		}
		return model, nil
	}

	switch {
	case key.Matches(message, model.keys.Quit):
		return model, tea.Quit

	case key.Matches(message, model.keys.Next):
		return model.dispatchShortcut(workspace.ShortcutNextItem)

	case key.Matches(message, model.keys.Prev):
		return model.dispatchShortcut(workspace.ShortcutPrevItem)

	case key.Matches(message, model.keys.MoveUp):
		return model.dispatchShortcut(workspace.ShortcutMoveItemUp)

	case key.Matches(message, model.keys.MoveDown):
		return model.dispatchShortcut(workspace.ShortcutMoveItemDown)

	case key.Matches(message, model.keys.Zoom):
		return model.dispatchShortcut(workspace.ShortcutCycleZoom)

	case key.Matches(message, model.keys.Close):
		return model.dispatchShortcut(workspace.ShortcutCloseFocused)

	case key.Matches(message, model.keys.ToggleFold):
		model.toggleSection(1)
		return model, nil

	case key.Matches(message, model.keys.FoldSelect):
		model.foldPending = true
		return model, nil

	case key.Matches(message, model.keys.Finder):
		return model.dispatchShortcut(workspace.ShortcutOpenFinder)

	case key.Matches(message, model.keys.SidebarToggle):
		if model.sidebarVisible() {
			model.focus = FocusSidebar
		}
		return model, nil
	}
	return model, nil
}

// dispatchShortcut feeds a keyboard intent to the workspace and acts
// on the outcome it hands back. ShowFinder is the one outcome that
// opens another pane; the rest only adjust scroll state.
func (model Model) dispatchShortcut(shortcut workspace.Shortcut) (tea.Model, tea.Cmd) {
	outcome := model.workspace.HandleShortcut(shortcut)
	if outcome.Kind == workspace.OutcomeShowFinder {
		return model.openFinder()
	}
	model.applyOutcome(outcome)
	return model, nil
}

// openFinder shows the finder overlay and issues the initial empty
// query so the listing populates immediately.
func (model Model) openFinder() (tea.Model, tea.Cmd) {
	model.focus = FocusFinder
	model.finder.Open()
	return model, findDefinitions(model.source, "")
}

// openDefinition opens a reference in the workspace, anchored on the
// current focus, and starts its fetch if one is needed.
func (model Model) openDefinition(reference ref.Reference) (tea.Model, tea.Cmd) {
	anchor, _ := model.workspace.FocusedReference()
	outcome, fetchNeeded := model.workspace.Open(reference, anchor)
	model.applyOutcome(outcome)
	if fetchNeeded {
		return model, fetchDefinition(model.source, reference)
	}
	return model, nil
}

// applyDefaultZoom sets the configured opening zoom on a freshly
// resolved item. Resolution itself always produces medium zoom.
func (model *Model) applyDefaultZoom(reference ref.Reference) {
	if model.defaultZoom == workspace.ZoomMedium {
		return
	}
	model.workspace.Items().Map(func(item workspace.Item) workspace.Item {
		if loaded, ok := item.(*workspace.LoadedItem); ok && loaded.Ref.Equal(reference) {
			loaded.Zoom = model.defaultZoom
		}
		return item
	})
}

// applyOutcome reacts to a workspace operation result.
func (model *Model) applyOutcome(outcome workspace.Outcome) {
	switch outcome.Kind {
	case workspace.OutcomeFocused:
		model.scrollTarget = outcome.Ref
	case workspace.OutcomeEmptied:
		model.scrollOffset = 0
		model.scrollTarget = ref.Reference{}
	}
}

// toggleSection folds or unfolds the nth numbered doc section of the
// focused item. The numbering is the rendered one: sections hidden
// inside a folded section carry no number and cannot be targeted.
// Numbers outside the visible count are no-ops.
func (model *Model) toggleSection(section int) {
	focusRef, ok := model.workspace.FocusedReference()
	if !ok {
		return
	}
	loaded, ok := model.workspace.Items().Focus().(*workspace.LoadedItem)
	if !ok {
		return
	}
	ids := visibleFoldIDs(loaded.Definition.Docs(), loaded.Folds)
	if section < 1 || section > len(ids) {
		return
	}
	model.workspace.ToggleDocFold(focusRef, ids[section-1])
}

// digitValue parses a single digit key 1-9, returning 0 for anything
// else.
func digitValue(keyText string) int {
	if len(keyText) != 1 || keyText[0] < '1' || keyText[0] > '9' {
		return 0
	}
	return int(keyText[0] - '0')
}

func (model Model) sidebarVisible() bool {
	return model.width >= sidebarMinScreenWidth
}

func (model Model) cardWidth() int {
	width := model.width
	if model.sidebarVisible() {
		width -= sidebarWidth
	}
	// One column for the scrollbar.
	return width - 1
}

func (model Model) viewportHeight() int {
	return model.height - 1
}

func (model Model) View() string {
	if !model.ready {
		return "starting…"
	}

	main := model.renderMain()
	if model.sidebarVisible() {
		sidebarLines := model.sidebar.View(model.theme, model.renderer,
			model.viewportHeight(), model.focus == FocusSidebar)
		main = lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(sidebarLines, "\n"), main)
	}

	view := main + "\n" + model.statusBar()

	if model.focus == FocusFinder {
		overlayWidth := model.width * 3 / 4
		if overlayWidth > 72 {
			overlayWidth = 72
		}
		if overlayWidth < 24 {
			overlayWidth = 24
		}
		overlay := model.finder.View(model.theme, model.renderer, overlayWidth)
		anchorX, anchorY := tui.CenterAnchor(model.width, model.viewportHeight(), overlayWidth, len(overlay))
		view = tui.SpliceOverlay(view, overlay, anchorX, anchorY)
	}
	return view
}

// renderMain renders the card column plus its scrollbar, exactly
// viewportHeight lines tall.
func (model Model) renderMain() string {
	height := model.viewportHeight()
	width := model.cardWidth()

	lines, spans := model.renderCards(width)
	offset := model.resolveScroll(lines, spans, height)

	visible := make([]string, 0, height)
	for index := offset; index < len(lines) && index < offset+height; index++ {
		visible = append(visible, lines[index])
	}
	for len(visible) < height {
		visible = append(visible, "")
	}
	scrollbar := tui.ScrollbarColumn(model.theme, height, len(lines), height, offset,
		model.focus == FocusWorkspace)
	for index, line := range visible {
		padding := width - ansi.StringWidth(line)
		if padding > 0 {
			line += strings.Repeat(" ", padding)
		}
		visible[index] = line + scrollbar[index]
	}
	return strings.Join(visible, "\n")
}

// cardSpan is the line range one item occupies in the card column.
type cardSpan struct {
	ref   ref.Reference
	start int
	end   int // exclusive
}

// renderCards renders every open item into one line slice, a blank
// line between cards, and records each card's span for
// scroll-into-view.
func (model Model) renderCards(width int) ([]string, []cardSpan) {
	cards := &cardRenderer{theme: model.theme, renderer: model.renderer, width: width}

	var lines []string
	var spans []cardSpan

	rendered := workspace.MapToList(model.workspace.Items(), func(item workspace.Item, focused bool) []string {
		return cards.Render(item, focused)
	})
	references := model.workspace.Items().References()

	if len(rendered) == 0 {
		return model.emptyStateLines(width), nil
	}

	for index, cardLines := range rendered {
		start := len(lines)
		lines = append(lines, cardLines...)
		spans = append(spans, cardSpan{ref: references[index], start: start, end: len(lines)})
		lines = append(lines, "")
	}
	return lines, spans
}

func (model Model) emptyStateLines(width int) []string {
	message := "workspace empty — press / to find definitions"
	faint := model.renderer.NewStyle().Foreground(model.theme.FaintText)
	top := model.viewportHeight() / 2
	lines := make([]string, top+1)
	lines[top] = faint.Render(ansi.Truncate("  "+message, width, "…"))
	return lines
}

// resolveScroll clamps the scroll offset and, when a scroll target is
// pending, shifts the window the minimum amount that brings the
// target's card fully into view (or its top, for cards taller than
// the viewport).
func (model Model) resolveScroll(lines []string, spans []cardSpan, height int) int {
	offset := model.scrollOffset
	if !model.scrollTarget.IsZero() {
		for _, span := range spans {
			if !span.ref.Equal(model.scrollTarget) {
				continue
			}
			if span.start < offset {
				offset = span.start
			} else if span.end > offset+height {
				offset = span.end - height
				if span.start < offset {
					offset = span.start
				}
			}
			break
		}
	}

	maxOffset := len(lines) - height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

// statusBar renders the bottom line: a recent log record when one is
// showing, the keyboard help line otherwise.
func (model Model) statusBar() string {
	if model.statusLog != "" {
		color := model.theme.FaintText
		if model.statusLogLevel >= slog.LevelError {
			color = model.theme.ErrorText
		} else if model.statusLogLevel >= slog.LevelWarn {
			color = model.theme.FocusAccent
		}
		return model.renderer.NewStyle().
			Foreground(color).
			Render(ansi.Truncate(" "+model.statusLog, model.width, "…"))
	}

	if model.foldPending {
		return model.renderer.NewStyle().
			Foreground(model.theme.HelpText).
			Render(" fold which section? 1-9")
	}

	help := model.helpLine()
	return model.renderer.NewStyle().
		Foreground(model.theme.HelpText).
		Render(ansi.Truncate(" "+help, model.width, "…"))
}

func (model Model) helpLine() string {
	bindings := []key.Binding{
		model.keys.Next, model.keys.Prev,
		model.keys.Zoom, model.keys.ToggleFold,
		model.keys.Close, model.keys.Finder,
		model.keys.Quit,
	}
	if model.sidebarVisible() {
		bindings = append(bindings, model.keys.SidebarToggle)
	}

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		help := binding.Help()
		parts = append(parts, help.Key+" "+help.Desc)
	}
	return strings.Join(parts, "  ·  ")
}
