// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"log/slog"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// OutcomeKind classifies what the surrounding UI must do after an
// operation.
type OutcomeKind int

const (
	// OutcomeNone: nothing externally relevant changed.
	OutcomeNone OutcomeKind = iota
	// OutcomeFocused: the outcome's reference is now focused; the UI
	// scrolls it into view.
	OutcomeFocused
	// OutcomeEmptied: the last item was closed.
	OutcomeEmptied
	// OutcomeShowFinder: the user asked for the finder overlay.
	OutcomeShowFinder
)

// Outcome is the signal a workspace operation hands back to the UI.
// Ref is set only for OutcomeFocused.
type Outcome struct {
	Kind OutcomeKind
	Ref  ref.Reference
}

func none() Outcome { return Outcome{Kind: OutcomeNone} }

func focused(r ref.Reference) Outcome { return Outcome{Kind: OutcomeFocused, Ref: r} }

// Shortcut is a symbolic keyboard intent, produced by the UI's key
// recognizer. The workspace never sees raw key codes.
type Shortcut int

const (
	// ShortcutNone is an unrecognized chord: a no-op.
	ShortcutNone Shortcut = iota
	// ShortcutNextItem focuses the next open item.
	ShortcutNextItem
	// ShortcutPrevItem focuses the previous open item.
	ShortcutPrevItem
	// ShortcutMoveItemUp relocates the focused item one slot earlier.
	ShortcutMoveItemUp
	// ShortcutMoveItemDown relocates the focused item one slot later.
	ShortcutMoveItemDown
	// ShortcutCycleZoom advances the focused item's zoom level.
	ShortcutCycleZoom
	// ShortcutCloseFocused closes the focused item.
	ShortcutCloseFocused
	// ShortcutOpenFinder requests the finder overlay.
	ShortcutOpenFinder
)

// Workspace mediates between external events — user intents, fetch
// completions — and the Items collection. It owns no I/O: Open
// reports when a fetch must be started and Resolve accepts its
// result, so the event source (the bubbletea program) stays in the UI
// layer and the orchestrator stays synchronous and testable.
type Workspace struct {
	items  Items
	logger *slog.Logger
}

// New creates a workspace. Initial references (typically from the
// --open flag) are opened as loading placeholders, first one focused;
// the caller starts their fetches the same way as for Open.
func New(logger *slog.Logger, initial ...ref.Reference) *Workspace {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Workspace{
		items:  NewItems(initial...),
		logger: logger,
	}
}

// Items exposes the collection for rendering via MapToList. Callers
// must not retain the pointer across events.
func (workspace *Workspace) Items() *Items { return &workspace.items }

// FocusedReference returns the reference of the focused item, if any.
func (workspace *Workspace) FocusedReference() (ref.Reference, bool) {
	if focus := workspace.items.Focus(); focus != nil {
		return focus.Reference(), true
	}
	return ref.Reference{}, false
}

// Open opens a definition. If the reference is already a member the
// existing item is focused — no second fetch, no duplicate. Otherwise
// a loading placeholder is inserted (immediately before anchor when
// given, else at the front), focused optimistically before any data
// arrives, and fetchNeeded reports that the caller must start the
// asynchronous fetch for this reference.
func (workspace *Workspace) Open(reference ref.Reference, anchor ref.Reference) (outcome Outcome, fetchNeeded bool) {
	if workspace.items.Member(reference) {
		workspace.focusExisting(reference)
		return focused(reference), false
	}

	placeholder := NewLoading(reference)
	if anchor.IsZero() {
		workspace.items.PrependWithFocus(placeholder)
	} else {
		workspace.items.InsertWithFocusBefore(anchor, placeholder)
	}
	workspace.logger.Debug("definition opened", "ref", reference.String())
	return focused(reference), true
}

// focusExisting walks the cursor to an item already in the
// collection. The member check has already passed, so the loop
// terminates; saturation guards make it safe regardless.
func (workspace *Workspace) focusExisting(reference ref.Reference) {
	current, ok := workspace.FocusedReference()
	if !ok || current.Equal(reference) {
		return
	}
	// Walk forward first; if the target is behind the cursor the
	// forward walk saturates and the backward walk finds it.
	for {
		focus, _ := workspace.FocusedReference()
		if focus.Equal(reference) {
			return
		}
		if !workspace.items.Next() {
			break
		}
	}
	for {
		focus, _ := workspace.FocusedReference()
		if focus.Equal(reference) {
			return
		}
		if !workspace.items.Prev() {
			return
		}
	}
}

// Resolve applies a completed fetch. The loading placeholder for the
// reference becomes a loaded or failed item in place; focus stays
// wherever the user moved it while the fetch was outstanding. A
// result for a reference that is no longer open (closed mid-flight)
// is a silent no-op. The returned outcome reflects the current focus,
// not necessarily the just-resolved item.
func (workspace *Workspace) Resolve(reference ref.Reference, payload definition.Definition, fetchErr error) Outcome {
	replaced := workspace.items.Replace(reference, Resolved(reference, payload, fetchErr))
	if !replaced {
		workspace.logger.Debug("late fetch result for closed item discarded", "ref", reference.String())
		return none()
	}
	if fetchErr != nil {
		workspace.logger.Warn("definition fetch failed", "ref", reference.String(), "error", fetchErr)
	}
	if focus, ok := workspace.FocusedReference(); ok {
		return focused(focus)
	}
	return Outcome{Kind: OutcomeEmptied}
}

// Close closes the item keyed by reference. Closing the focused item
// refocuses per the removal policy; closing the last item empties the
// workspace. Closing a reference that is not open is a no-op.
func (workspace *Workspace) Close(reference ref.Reference) Outcome {
	if !workspace.items.Remove(reference) {
		return none()
	}
	if focus, ok := workspace.FocusedReference(); ok {
		return focused(focus)
	}
	return Outcome{Kind: OutcomeEmptied}
}

// ToggleDocFold flips one documentation section's fold state on the
// item keyed by reference. No-op when the item is absent or not
// loaded.
func (workspace *Workspace) ToggleDocFold(reference ref.Reference, id definition.FoldID) Outcome {
	index := workspace.items.find(reference)
	if index == -1 {
		return none()
	}
	workspace.items.Map(func(item Item) Item {
		if item.Reference().Equal(reference) {
			ToggleFold(item, id)
		}
		return item
	})
	return none()
}

// HandleShortcut applies a recognized keyboard intent. Unrecognized
// shortcuts are no-ops. Focus-moving shortcuts emit a Focused outcome
// only when the focus actually moved, so the UI does not re-scroll on
// saturated navigation at the ends of the list.
func (workspace *Workspace) HandleShortcut(shortcut Shortcut) Outcome {
	switch shortcut {
	case ShortcutNextItem:
		if workspace.items.Next() {
			return workspace.focusOutcome()
		}
		return none()

	case ShortcutPrevItem:
		if workspace.items.Prev() {
			return workspace.focusOutcome()
		}
		return none()

	case ShortcutMoveItemUp:
		if workspace.items.MoveUp() {
			return workspace.focusOutcome()
		}
		return none()

	case ShortcutMoveItemDown:
		if workspace.items.MoveDown() {
			return workspace.focusOutcome()
		}
		return none()

	case ShortcutCycleZoom:
		if focus := workspace.items.Focus(); focus != nil {
			CycleZoom(focus)
		}
		return none()

	case ShortcutCloseFocused:
		if focus, ok := workspace.FocusedReference(); ok {
			return workspace.Close(focus)
		}
		return none()

	case ShortcutOpenFinder:
		return Outcome{Kind: OutcomeShowFinder}

	default:
		return none()
	}
}

func (workspace *Workspace) focusOutcome() Outcome {
	if focus, ok := workspace.FocusedReference(); ok {
		return focused(focus)
	}
	return Outcome{Kind: OutcomeEmptied}
}
