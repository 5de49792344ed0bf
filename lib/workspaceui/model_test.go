// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/workspace"
)

// viewerSnapshot backs the test source: a namespace to browse, a term
// with documentation (including a foldable section), and a second
// term for finder and open tests.
const viewerSnapshot = `{
	"definitions": [
		{
			"kind": "type",
			"name": "base.List",
			"hash": "#l1st0",
			"source": [{"text": "type List a = Nil | Cons a (List a)", "annotation": "plain"}],
		},
		{
			"kind": "term",
			"name": "base.List.map",
			"hash": "#m4p01",
			"signature": [{"text": "map : (a -> b) -> [a] -> [b]", "annotation": "signature"}],
			"source": [{"text": "map f = cases\n  [] -> []", "annotation": "plain"}],
			"docs": [
				{"type": "paragraph", "markdown": "Applies a function to every element."},
				{
					"type": "section",
					"id": "examples",
					"title": "Examples",
					"blocks": [
						{"type": "code", "language": "unison", "source": "map increment [1, 2, 3]"},
						{
							"type": "section",
							"id": "advanced",
							"title": "Advanced",
							"blocks": [
								{"type": "paragraph", "markdown": "Chained maps fuse."},
							],
						},
					],
				},
				{
					"type": "section",
					"id": "notes",
					"title": "Notes",
					"blocks": [
						{"type": "paragraph", "markdown": "Runs in linear time."},
					],
				},
			],
		},
		{
			"kind": "term",
			"name": "frobnicate",
			"hash": "#fr0b0",
			"source": [{"text": "frobnicate = 42", "annotation": "plain"}],
		},
	],
}`

var mapRef = ref.MustParseReference(ref.Term, "base.List.map#m4p01")

func testViewerModel(t *testing.T) (Model, *codebase.SnapshotSource) {
	t.Helper()
	source, err := codebase.ParseSnapshot([]byte(viewerSnapshot))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	model := NewModel(ModelConfig{
		Source:  source,
		Initial: []ref.Reference{mapRef},
	})
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 160, Height: 40})
	return updated.(Model), source
}

// press delivers one keypress. Multi-character names map to special
// keys; single characters are typed runes.
func press(t *testing.T, model Model, keyName string) (Model, tea.Cmd) {
	t.Helper()
	var message tea.KeyMsg
	switch keyName {
	case "enter":
		message = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		message = tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		message = tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		message = tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		message = tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+k":
		message = tea.KeyMsg{Type: tea.KeyCtrlK}
	default:
		message = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keyName)}
	}
	updated, cmd := model.Update(message)
	return updated.(Model), cmd
}

// resolveFetch completes the fetch for a reference against the test
// source and delivers the result message.
func resolveFetch(t *testing.T, model Model, source *codebase.SnapshotSource, reference ref.Reference) Model {
	t.Helper()
	payload, err := source.Definition(context.Background(), reference)
	if err != nil {
		t.Fatalf("Definition(%v): %v", reference, err)
	}
	updated, _ := model.Update(fetchResultMsg{ref: reference, payload: payload})
	return updated.(Model)
}

func TestViewBeforeWindowSize(t *testing.T) {
	source, err := codebase.ParseSnapshot([]byte(viewerSnapshot))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	model := NewModel(ModelConfig{Source: source})
	if view := model.View(); view != "starting…" {
		t.Errorf("pre-size view = %q", view)
	}
}

func TestInitStartsFetchAndBrowse(t *testing.T) {
	model, _ := testViewerModel(t)
	if model.Init() == nil {
		t.Error("Init should return the startup commands")
	}
}

func TestLoadingCardThenLoadedCard(t *testing.T) {
	model, source := testViewerModel(t)

	view := model.View()
	if !strings.Contains(view, "fetching…") {
		t.Error("unresolved item should render a loading card")
	}

	model = resolveFetch(t, model, source, mapRef)
	view = model.View()
	if strings.Contains(view, "fetching…") {
		t.Error("resolved item should not render a loading card")
	}
	if !strings.Contains(view, "map") {
		t.Error("loaded card should show the definition name")
	}
	if !strings.Contains(view, "medium") {
		t.Error("new items open at medium zoom")
	}
}

func TestFetchFailureRendersFailureCard(t *testing.T) {
	model, _ := testViewerModel(t)
	updated, _ := model.Update(fetchResultMsg{ref: mapRef, err: errors.New("connection refused")})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "connection refused") {
		t.Error("failure card should show the error")
	}
	if !strings.Contains(view, "close and reopen to retry") {
		t.Error("failure card should show the retry hint")
	}
}

func TestCloseLastItemShowsEmptyState(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	model, _ = press(t, model, "x")
	if !strings.Contains(model.View(), "workspace empty") {
		t.Error("closing the last item should show the empty state")
	}
}

func TestZoomNearShowsDocs(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	// Medium → Near.
	model, _ = press(t, model, "z")
	view := model.View()
	if !strings.Contains(view, "near") {
		t.Error("zoom tag should read near")
	}
	if !strings.Contains(view, "Examples") {
		t.Error("near zoom should render the doc section title")
	}
	if !strings.Contains(view, "[1]") {
		t.Error("foldable sections are numbered")
	}
}

func TestFoldChordTogglesNumberedSection(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	model, _ = press(t, model, "f")
	if !model.foldPending {
		t.Fatal("f should arm the fold chord")
	}
	model, _ = press(t, model, "1")
	if model.foldPending {
		t.Error("digit should disarm the fold chord")
	}

	loaded := model.workspace.Items().Focus().(*workspace.LoadedItem)
	if !loaded.Folds.Folded("examples") {
		t.Error("f1 should fold the first numbered section")
	}

	// Enter toggles the first section back open.
	model, _ = press(t, model, "enter")
	if loaded.Folds.Folded("examples") {
		t.Error("enter should unfold the first section again")
	}
}

func TestFoldChordFollowsVisibleNumbering(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	// Fold "examples"; its nested "advanced" section disappears from
	// view and loses its number.
	model, _ = press(t, model, "f")
	model, _ = press(t, model, "1")
	loaded := model.workspace.Items().Focus().(*workspace.LoadedItem)
	if !loaded.Folds.Folded("examples") {
		t.Fatal("f1 should fold the outer section")
	}

	// [2] now labels "notes", the next visible section, so f2 must
	// toggle it rather than the hidden "advanced".
	model, _ = press(t, model, "f")
	model, _ = press(t, model, "2")
	if loaded.Folds.Folded("advanced") {
		t.Error("f2 must not reach a section hidden inside a fold")
	}
	if !loaded.Folds.Folded("notes") {
		t.Error("f2 should fold the second visible section")
	}

	// Unfolding "examples" restores "advanced" as [2] and moves
	// "notes" to [3].
	model, _ = press(t, model, "f")
	model, _ = press(t, model, "1")
	model, _ = press(t, model, "f")
	model, _ = press(t, model, "3")
	if loaded.Folds.Folded("notes") {
		t.Error("f3 should address notes once advanced is visible again")
	}
}

func TestFoldChordCancelsOnNonDigit(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	model, _ = press(t, model, "f")
	model, _ = press(t, model, "z")
	if model.foldPending {
		t.Error("non-digit should cancel the fold chord")
	}
	loaded := model.workspace.Items().Focus().(*workspace.LoadedItem)
	if loaded.Zoom != workspace.ZoomMedium {
		t.Error("the cancelling key must not also act as a shortcut")
	}
}

func TestFinderOpenSearchSelect(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	model, cmd := press(t, model, "/")
	if model.focus != FocusFinder {
		t.Fatal("/ should focus the finder")
	}
	if cmd == nil {
		t.Fatal("opening the finder should issue the initial search")
	}

	results, err := source.Find(context.Background(), "", 0)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	updated, _ := model.Update(findResultsMsg{query: "", results: results})
	model = updated.(Model)

	view := model.View()
	if !strings.Contains(view, "frobnicate") {
		t.Error("finder overlay should list results")
	}

	selected, ok := model.finder.Selected()
	if !ok {
		t.Fatal("finder should have a selection")
	}
	model, cmd = press(t, model, "enter")
	if model.focus != FocusWorkspace {
		t.Error("selecting a result should return focus to the workspace")
	}
	if !model.workspace.Items().Member(selected.Ref) {
		t.Error("selecting a result should open it")
	}
	if focus, _ := model.workspace.FocusedReference(); !focus.Equal(selected.Ref) {
		t.Error("the opened result should be focused")
	}
	if cmd == nil {
		t.Error("opening a new definition should start its fetch")
	}
}

func TestFinderOpensFromShortcutOnEmptyWorkspace(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)
	model, _ = press(t, model, "x")

	// Both finder bindings work with nothing open; the intent travels
	// through the workspace like every other shortcut.
	model, cmd := press(t, model, "ctrl+k")
	if model.focus != FocusFinder {
		t.Error("ctrl+k should open the finder on an empty workspace")
	}
	if cmd == nil {
		t.Error("opening the finder should issue the initial search")
	}

	model, _ = press(t, model, "esc")
	model, _ = press(t, model, "/")
	if model.focus != FocusFinder {
		t.Error("/ should open the finder on an empty workspace")
	}
}

func TestFinderSelectingOpenItemNeedsNoFetch(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	model, _ = press(t, model, "/")
	results := []codebase.FindResult{{Ref: mapRef}}
	updated, _ := model.Update(findResultsMsg{query: "", results: results})
	model = updated.(Model)

	model, cmd := press(t, model, "enter")
	if cmd != nil {
		t.Error("reselecting an open item must not refetch it")
	}
	if length := model.workspace.Items().Len(); length != 1 {
		t.Errorf("items = %d, want 1 (no duplicate)", length)
	}
}

func TestFinderEscReturnsToWorkspace(t *testing.T) {
	model, _ := testViewerModel(t)
	model, _ = press(t, model, "/")
	model, _ = press(t, model, "esc")
	if model.focus != FocusWorkspace {
		t.Error("esc should dismiss the finder")
	}
}

func TestStaleFinderResultsDropped(t *testing.T) {
	model, _ := testViewerModel(t)
	model, _ = press(t, model, "/")
	model, _ = press(t, model, "m")

	// A response for the empty query arrives after "m" was typed.
	stale := []codebase.FindResult{{Ref: ref.MustParseReference(ref.Term, "frobnicate#fr0b0")}}
	updated, _ := model.Update(findResultsMsg{query: "", results: stale})
	model = updated.(Model)

	if _, ok := model.finder.Selected(); ok {
		t.Error("stale results should be dropped")
	}
}

func TestSidebarBrowseAndOpen(t *testing.T) {
	model, source := testViewerModel(t)

	listing, err := source.Browse(context.Background(), ref.Name{})
	if err != nil {
		t.Fatalf("Browse: %v", err)
	}
	updated, _ := model.Update(browseResultMsg{listing: listing})
	model = updated.(Model)

	model, _ = press(t, model, "tab")
	if model.focus != FocusSidebar {
		t.Fatal("tab should focus the sidebar")
	}

	// Entry 0 is the "base" namespace: enter descends and fetches the
	// child listing.
	model, cmd := press(t, model, "enter")
	if model.sidebar.Current().String() != "base" {
		t.Errorf("sidebar namespace = %q, want base", model.sidebar.Current())
	}
	if cmd == nil {
		t.Error("descending should fetch the child listing")
	}

	model, cmd = press(t, model, "backspace")
	if !model.sidebar.Current().IsZero() {
		t.Errorf("backspace should return to the root, got %q", model.sidebar.Current())
	}
	if cmd == nil {
		t.Error("ascending should refetch the parent listing")
	}

	// Open a definition from the root listing: entry 1 is frobnicate.
	updated, _ = model.Update(browseResultMsg{listing: listing})
	model = updated.(Model)
	model, _ = press(t, model, "j")
	model, cmd = press(t, model, "enter")
	if model.focus != FocusWorkspace {
		t.Error("opening a definition should focus the workspace")
	}
	if cmd == nil {
		t.Error("opening a definition should start its fetch")
	}
	wantRef := ref.MustParseReference(ref.Term, "frobnicate#fr0b0")
	if focus, _ := model.workspace.FocusedReference(); !focus.Equal(wantRef) {
		t.Errorf("focus = %v, want %v", focus, wantRef)
	}
}

func TestNarrowScreenHidesSidebar(t *testing.T) {
	model, _ := testViewerModel(t)
	updated, _ := model.Update(tea.WindowSizeMsg{Width: 60, Height: 24})
	model = updated.(Model)

	if model.sidebarVisible() {
		t.Error("sidebar should hide below the width threshold")
	}
	model, _ = press(t, model, "tab")
	if model.focus == FocusSidebar {
		t.Error("tab must not focus a hidden sidebar")
	}
}

func TestStatusBarShowsLogThenFades(t *testing.T) {
	model, _ := testViewerModel(t)

	updated, cmd := model.Update(logRecordMsg{Summary: "definition fetch failed (ref=x)", Level: slog.LevelWarn})
	model = updated.(Model)
	if cmd == nil {
		t.Error("a log record should schedule its fade")
	}
	if !strings.Contains(model.View(), "definition fetch failed") {
		t.Error("status bar should show the log record")
	}

	updated, _ = model.Update(logRecordFadeMsg{})
	model = updated.(Model)
	view := model.View()
	if strings.Contains(view, "definition fetch failed") {
		t.Error("faded log record should disappear")
	}
	if !strings.Contains(view, "q quit") {
		t.Error("status bar should fall back to the help line")
	}
}

func TestQuitKeys(t *testing.T) {
	model, _ := testViewerModel(t)
	_, cmd := press(t, model, "q")
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce a quit message")
	}

	// ctrl+c quits even while the finder is capturing input.
	model, _ = press(t, model, "/")
	updated, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	_ = updated
	if cmd == nil {
		t.Fatal("ctrl+c should quit from the finder")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should produce a quit message")
	}
}

func TestNavigationMovesFocus(t *testing.T) {
	model, source := testViewerModel(t)
	model = resolveFetch(t, model, source, mapRef)

	// Open a second definition through the sidebar-independent path:
	// the finder.
	model, _ = press(t, model, "/")
	other := ref.MustParseReference(ref.Term, "frobnicate#fr0b0")
	updated, _ := model.Update(findResultsMsg{query: "", results: []codebase.FindResult{{Ref: other}}})
	model = updated.(Model)
	model, _ = press(t, model, "enter")
	model = resolveFetch(t, model, source, other)

	// The new item sits before the anchor and is focused; j moves to
	// the older item, k moves back.
	if focus, _ := model.workspace.FocusedReference(); !focus.Equal(other) {
		t.Fatalf("focus = %v, want %v", focus, other)
	}
	model, _ = press(t, model, "j")
	if focus, _ := model.workspace.FocusedReference(); !focus.Equal(mapRef) {
		t.Errorf("after j focus = %v, want %v", focus, mapRef)
	}
	model, _ = press(t, model, "k")
	if focus, _ := model.workspace.FocusedReference(); !focus.Equal(other) {
		t.Errorf("after k focus = %v, want %v", focus, other)
	}
}
