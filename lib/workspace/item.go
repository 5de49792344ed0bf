// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// Zoom is the display-detail level of a loaded item. The three levels
// cycle Far → Medium → Near → Far.
type Zoom int

const (
	// ZoomFar shows only the signature line.
	ZoomFar Zoom = iota
	// ZoomMedium shows the full source. New items open at Medium.
	ZoomMedium
	// ZoomNear shows the full source plus documentation.
	ZoomNear
)

// Cycle returns the next zoom level in the cycle.
func (zoom Zoom) Cycle() Zoom {
	switch zoom {
	case ZoomFar:
		return ZoomMedium
	case ZoomMedium:
		return ZoomNear
	default:
		return ZoomFar
	}
}

// String returns a short lowercase name for status display.
func (zoom Zoom) String() string {
	switch zoom {
	case ZoomFar:
		return "far"
	case ZoomMedium:
		return "medium"
	case ZoomNear:
		return "near"
	default:
		return "unknown"
	}
}

// FoldSet tracks which documentation sections of one item are
// currently folded. The zero value is not usable; call NewFoldSet.
type FoldSet map[definition.FoldID]struct{}

// NewFoldSet returns an empty fold set (all sections expanded).
func NewFoldSet() FoldSet { return make(FoldSet) }

// Toggle flips the folded state of one section.
func (set FoldSet) Toggle(id definition.FoldID) {
	if _, folded := set[id]; folded {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
}

// Folded reports whether the section is currently folded.
func (set FoldSet) Folded(id definition.FoldID) bool {
	_, folded := set[id]
	return folded
}

// Item is the state of one open definition. Exactly three
// implementations exist: [LoadingItem], [FailedItem], and
// [LoadedItem]. The embedded reference is the item's permanent key —
// it never changes across state transitions; transitions replace the
// whole item in the collection instead.
type Item interface {
	// Reference returns the item's permanent key.
	Reference() ref.Reference

	sealed()
}

// LoadingItem marks an outstanding fetch for a reference.
type LoadingItem struct {
	Ref ref.Reference
}

func (item *LoadingItem) Reference() ref.Reference { return item.Ref }
func (item *LoadingItem) sealed()                  {}

// FailedItem records a fetch that terminated in error. The error is
// terminal for this reference: no automatic retry, the user closes
// and reopens to try again.
type FailedItem struct {
	Ref ref.Reference
	Err error
}

func (item *FailedItem) Reference() ref.Reference { return item.Ref }
func (item *FailedItem) sealed()                  {}

// LoadedItem holds a successfully fetched definition plus its
// per-item display state. Zoom and Folds mutate in place; the variant
// and reference never change.
type LoadedItem struct {
	Ref        ref.Reference
	Definition definition.Definition
	Zoom       Zoom
	Folds      FoldSet
}

func (item *LoadedItem) Reference() ref.Reference { return item.Ref }
func (item *LoadedItem) sealed()                  {}

// NewLoading creates the placeholder item inserted when a fetch is
// issued.
func NewLoading(reference ref.Reference) *LoadingItem {
	return &LoadingItem{Ref: reference}
}

// Resolved builds the item a completed fetch transitions a
// LoadingItem into: a LoadedItem at Medium zoom with all sections
// expanded, or a FailedItem when the fetch errored. These are the
// only legal transitions out of the loading state.
func Resolved(reference ref.Reference, payload definition.Definition, err error) Item {
	if err != nil {
		return &FailedItem{Ref: reference, Err: err}
	}
	return &LoadedItem{
		Ref:        reference,
		Definition: payload,
		Zoom:       ZoomMedium,
		Folds:      NewFoldSet(),
	}
}

// CycleZoom advances the zoom level of a loaded item. No-op on
// loading and failed items: they have no payload to zoom.
func CycleZoom(item Item) {
	if loaded, ok := item.(*LoadedItem); ok {
		loaded.Zoom = loaded.Zoom.Cycle()
	}
}

// ToggleFold flips one documentation section's fold state on a loaded
// item. No-op on loading and failed items.
func ToggleFold(item Item, id definition.FoldID) {
	if loaded, ok := item.(*LoadedItem); ok {
		loaded.Folds.Toggle(id)
	}
}
