// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
	"github.com/unison-tools/uniscope/lib/tui"
	"github.com/unison-tools/uniscope/lib/workspace"
)

func testCardRenderer() *cardRenderer {
	return &cardRenderer{
		theme:    tui.DefaultTheme,
		renderer: newLipglossRenderer(),
		width:    80,
	}
}

func testTerm() *definition.Term {
	return &definition.Term{
		Ref: ref.MustParseReference(ref.Term, "base.List.map#m4p01"),
		TermSig: definition.SyntaxText{
			{Text: "map : (a -> b) -> [a] -> [b]"},
		},
		TermSource: definition.SyntaxText{
			{Text: "map f = cases", Category: definition.CategoryPlain},
			{Text: "\n  [] -> []", Category: definition.CategoryPlain},
		},
		TermDocs: definition.Docs{Blocks: []definition.DocBlock{
			&definition.DocParagraph{Markdown: "Applies a function to every element."},
			&definition.DocSection{
				ID:    "examples",
				Title: "Examples",
				Blocks: []definition.DocBlock{
					&definition.DocCode{Source: "map increment [1, 2, 3]"},
					&definition.DocSection{
						ID:    "advanced",
						Title: "Advanced",
						Blocks: []definition.DocBlock{
							&definition.DocParagraph{Markdown: "Chained maps fuse."},
						},
					},
				},
			},
			&definition.DocSection{
				ID:    "notes",
				Title: "Notes",
				Blocks: []definition.DocBlock{
					&definition.DocParagraph{Markdown: "Runs in linear time."},
				},
			},
		}},
	}
}

func plainCard(t *testing.T, item workspace.Item, focused bool) string {
	t.Helper()
	lines := testCardRenderer().Render(item, focused)
	return ansi.Strip(strings.Join(lines, "\n"))
}

func TestRenderLoadingCard(t *testing.T) {
	item := workspace.NewLoading(ref.MustParseReference(ref.Term, "base.List.map#m4p01"))
	out := plainCard(t, item, false)
	if !strings.Contains(out, "map") || !strings.Contains(out, "fetching…") {
		t.Errorf("loading card = %q", out)
	}
}

func TestRenderFailedCard(t *testing.T) {
	item := &workspace.FailedItem{
		Ref: ref.MustParseReference(ref.Term, "base.List.map#m4p01"),
		Err: errors.New("connection refused"),
	}
	out := plainCard(t, item, false)
	if !strings.Contains(out, "connection refused") {
		t.Errorf("failed card should show the error: %q", out)
	}
	if !strings.Contains(out, "close and reopen to retry") {
		t.Errorf("failed card should show the retry hint: %q", out)
	}
}

func TestRenderZoomLevels(t *testing.T) {
	item := &workspace.LoadedItem{
		Ref:        testTerm().Ref,
		Definition: testTerm(),
		Zoom:       workspace.ZoomFar,
		Folds:      workspace.NewFoldSet(),
	}

	far := plainCard(t, item, false)
	if !strings.Contains(far, "map : (a -> b)") {
		t.Errorf("far zoom should show the signature: %q", far)
	}
	if strings.Contains(far, "map f = cases") {
		t.Errorf("far zoom must not show the source: %q", far)
	}

	item.Zoom = workspace.ZoomMedium
	medium := plainCard(t, item, false)
	if !strings.Contains(medium, "map f = cases") {
		t.Errorf("medium zoom should show the source: %q", medium)
	}
	if strings.Contains(medium, "Examples") {
		t.Errorf("medium zoom must not show docs: %q", medium)
	}

	item.Zoom = workspace.ZoomNear
	near := plainCard(t, item, false)
	if !strings.Contains(near, "map f = cases") || !strings.Contains(near, "Examples") {
		t.Errorf("near zoom should show source and docs: %q", near)
	}
	if !strings.Contains(near, "Applies a function") {
		t.Errorf("near zoom should render doc paragraphs: %q", near)
	}
}

func TestRenderFoldedSectionHidesBody(t *testing.T) {
	item := &workspace.LoadedItem{
		Ref:        testTerm().Ref,
		Definition: testTerm(),
		Zoom:       workspace.ZoomNear,
		Folds:      workspace.NewFoldSet(),
	}
	item.Folds.Toggle("examples")

	out := plainCard(t, item, false)
	if !strings.Contains(out, "▸ Examples") {
		t.Errorf("folded section should show the collapsed marker: %q", out)
	}
	if strings.Contains(out, "map increment") {
		t.Errorf("folded section body should be hidden: %q", out)
	}
}

func TestSectionNumbersSkipHiddenSections(t *testing.T) {
	item := &workspace.LoadedItem{
		Ref:        testTerm().Ref,
		Definition: testTerm(),
		Zoom:       workspace.ZoomNear,
		Folds:      workspace.NewFoldSet(),
	}

	open := plainCard(t, item, false)
	for _, label := range []string{"Examples [1]", "Advanced [2]", "Notes [3]"} {
		if !strings.Contains(open, label) {
			t.Errorf("open card missing %q:\n%s", label, open)
		}
	}

	// Folding "examples" hides "advanced", so "notes" renumbers to [2].
	item.Folds.Toggle("examples")
	folded := plainCard(t, item, false)
	if !strings.Contains(folded, "▸ Examples [1]") {
		t.Errorf("folded card should keep the outer section at [1]:\n%s", folded)
	}
	if strings.Contains(folded, "Advanced") {
		t.Errorf("folded card must not render hidden sections:\n%s", folded)
	}
	if !strings.Contains(folded, "Notes [2]") {
		t.Errorf("folded card should renumber the next visible section:\n%s", folded)
	}
}

func TestRenderBuiltinMarker(t *testing.T) {
	builtin := &definition.Term{
		Ref:     ref.MustParseReference(ref.Term, "Nat.drop#dr0p0"),
		TermSig: definition.SyntaxText{{Text: "drop : Nat -> Nat -> Nat"}},
		Builtin: true,
	}
	item := &workspace.LoadedItem{
		Ref:        builtin.Ref,
		Definition: builtin,
		Zoom:       workspace.ZoomMedium,
		Folds:      workspace.NewFoldSet(),
	}
	out := plainCard(t, item, false)
	if !strings.Contains(out, "(builtin)") {
		t.Errorf("builtin card should carry the marker: %q", out)
	}
}

func TestRenderFocusGutter(t *testing.T) {
	item := workspace.NewLoading(ref.MustParseReference(ref.Term, "frobnicate#fr0b0"))

	focused := testCardRenderer().Render(item, true)
	for _, line := range focused {
		if !strings.Contains(line, "▌") {
			t.Errorf("focused line missing accent bar: %q", line)
		}
	}

	unfocused := plainCard(t, item, false)
	if strings.Contains(unfocused, "▌") {
		t.Errorf("unfocused card must not carry the accent bar: %q", unfocused)
	}
}

func TestHeaderShowsKindAndShortHash(t *testing.T) {
	item := workspace.NewLoading(ref.MustParseReference(ref.Type, "base.List#l1st0abcdefghij"))
	out := plainCard(t, item, false)
	if !strings.Contains(out, "[type]") {
		t.Errorf("header should badge the kind: %q", out)
	}
	if !strings.Contains(out, "#l1st0abcde") && !strings.Contains(out, "#l1st0") {
		t.Errorf("header should show the short hash: %q", out)
	}
	if strings.Contains(out, "#l1st0abcdefghij") {
		t.Errorf("header should truncate the hash: %q", out)
	}
}
