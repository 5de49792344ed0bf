// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspace

import (
	"slices"

	"github.com/unison-tools/uniscope/lib/ref"
)

// Items is the ordered collection of open items with a single focus,
// stored as a zipper: everything before the focus, the focused item,
// and everything after. Linear order is before ++ [focus] ++ after.
//
// Invariants:
//   - focus is nil exactly when before and after are both empty.
//   - At most one item per distinct reference. The structure itself
//     does not deduplicate — callers check Member before inserting
//     (the orchestrator focuses the existing item instead of opening
//     a duplicate).
//
// All lookup operations treat an absent reference as a defined no-op,
// never an error: callers rely on idempotent no-ops for "reference no
// longer open" races with late fetch results.
//
// The zero value is a valid empty collection.
type Items struct {
	before []Item
	focus  Item
	after  []Item
}

// NewItems returns an empty collection, optionally pre-seeded with
// initial references opened as loading placeholders. With seeds, the
// first reference becomes the focus and the rest follow in order.
func NewItems(initial ...ref.Reference) Items {
	var items Items
	for index := len(initial) - 1; index >= 0; index-- {
		items.PrependWithFocus(NewLoading(initial[index]))
	}
	return items
}

// IsEmpty reports whether no items are open.
func (items *Items) IsEmpty() bool { return items.focus == nil }

// Len returns the number of open items.
func (items *Items) Len() int {
	if items.focus == nil {
		return 0
	}
	return len(items.before) + 1 + len(items.after)
}

// Focus returns the focused item, or nil when empty.
func (items *Items) Focus() Item { return items.focus }

// Member reports whether some item has the given reference.
func (items *Items) Member(reference ref.Reference) bool {
	return items.find(reference) != -1
}

// find returns the linear index of the item with the given reference,
// or -1. Index len(before) is the focus.
func (items *Items) find(reference ref.Reference) int {
	for index, item := range items.before {
		if item.Reference().Equal(reference) {
			return index
		}
	}
	if items.focus != nil && items.focus.Reference().Equal(reference) {
		return len(items.before)
	}
	for index, item := range items.after {
		if item.Reference().Equal(reference) {
			return len(items.before) + 1 + index
		}
	}
	return -1
}

// Replace swaps the item keyed by reference for newItem, wherever it
// sits. The item's position and the focus position are both
// undisturbed — this is how an async fetch result updates a loading
// placeholder without stealing focus from whatever the user is
// viewing. Reports whether the reference was found; an absent
// reference leaves the collection unchanged.
func (items *Items) Replace(reference ref.Reference, newItem Item) bool {
	for index, item := range items.before {
		if item.Reference().Equal(reference) {
			items.before[index] = newItem
			return true
		}
	}
	if items.focus != nil && items.focus.Reference().Equal(reference) {
		items.focus = newItem
		return true
	}
	for index, item := range items.after {
		if item.Reference().Equal(reference) {
			items.after[index] = newItem
			return true
		}
	}
	return false
}

// Map applies transform to every item in linear order, preserving
// structure and focus position.
func (items *Items) Map(transform func(Item) Item) {
	for index, item := range items.before {
		items.before[index] = transform(item)
	}
	if items.focus != nil {
		items.focus = transform(items.focus)
	}
	for index, item := range items.after {
		items.after[index] = transform(item)
	}
}

// PrependWithFocus inserts newItem at the very front of the linear
// order and focuses it. Everything previously open shifts into the
// after sequence, preserving relative order.
func (items *Items) PrependWithFocus(newItem Item) {
	if items.focus == nil {
		items.focus = newItem
		return
	}
	rest := make([]Item, 0, items.Len())
	rest = append(rest, items.before...)
	rest = append(rest, items.focus)
	rest = append(rest, items.after...)
	items.before = nil
	items.focus = newItem
	items.after = rest
}

// InsertWithFocusBefore inserts newItem immediately before the item
// keyed by anchor in linear order and focuses it: "open this related
// definition next to the one I opened it from." When the anchor is
// not a member, falls back to front insertion — callers are expected
// to pass anchors they know are open, but the fallback keeps the
// operation total.
func (items *Items) InsertWithFocusBefore(anchor ref.Reference, newItem Item) {
	anchorIndex := items.find(anchor)
	if anchorIndex == -1 {
		items.PrependWithFocus(newItem)
		return
	}

	focusIndex := len(items.before)
	switch {
	case anchorIndex < focusIndex:
		// Anchor sits in before: everything from the anchor onward
		// (including the old focus) moves after the new item.
		rest := make([]Item, 0, items.Len()-anchorIndex)
		rest = append(rest, items.before[anchorIndex:]...)
		rest = append(rest, items.focus)
		rest = append(rest, items.after...)
		items.before = items.before[:anchorIndex]
		items.focus = newItem
		items.after = rest

	case anchorIndex == focusIndex:
		// Anchor is the focus: the old focus shifts one step after.
		items.after = append([]Item{items.focus}, items.after...)
		items.focus = newItem

	default:
		// Anchor sits in after: the old focus and the items up to the
		// anchor move before the new item.
		offset := anchorIndex - focusIndex - 1
		kept := make([]Item, 0, focusIndex+1+offset)
		kept = append(kept, items.before...)
		kept = append(kept, items.focus)
		kept = append(kept, items.after[:offset]...)
		rest := slices.Clone(items.after[offset:])
		items.before = kept
		items.focus = newItem
		items.after = rest
	}
}

// Remove deletes the item keyed by reference. Removing a non-focused
// item leaves the focus unchanged. Removing the focused item refocuses
// the next item in linear order, else the previous one, else the
// collection becomes empty — a non-empty collection never ends up
// focus-less. Reports whether the reference was found.
func (items *Items) Remove(reference ref.Reference) bool {
	for index, item := range items.before {
		if item.Reference().Equal(reference) {
			items.before = slices.Delete(items.before, index, index+1)
			return true
		}
	}
	for index, item := range items.after {
		if item.Reference().Equal(reference) {
			items.after = slices.Delete(items.after, index, index+1)
			return true
		}
	}
	if items.focus == nil || !items.focus.Reference().Equal(reference) {
		return false
	}
	switch {
	case len(items.after) > 0:
		items.focus = items.after[0]
		items.after = items.after[1:]
	case len(items.before) > 0:
		items.focus = items.before[len(items.before)-1]
		items.before = items.before[:len(items.before)-1]
	default:
		items.focus = nil
	}
	return true
}

// Next moves the focus one step forward in linear order. Saturating:
// a no-op at the last item or on an empty collection, never a wrap.
// Reports whether the focus moved.
func (items *Items) Next() bool {
	if items.focus == nil || len(items.after) == 0 {
		return false
	}
	items.before = append(items.before, items.focus)
	items.focus = items.after[0]
	items.after = items.after[1:]
	return true
}

// Prev moves the focus one step backward in linear order. Saturating,
// no wrap. Reports whether the focus moved.
func (items *Items) Prev() bool {
	if items.focus == nil || len(items.before) == 0 {
		return false
	}
	items.after = append([]Item{items.focus}, items.after...)
	items.focus = items.before[len(items.before)-1]
	items.before = items.before[:len(items.before)-1]
	return true
}

// MoveUp relocates the focused item one position earlier in linear
// order (swapping with its predecessor) while keeping it focused.
// No-op at the front. Reports whether the item moved.
func (items *Items) MoveUp() bool {
	if items.focus == nil || len(items.before) == 0 {
		return false
	}
	neighbor := items.before[len(items.before)-1]
	items.before = items.before[:len(items.before)-1]
	items.after = append([]Item{neighbor}, items.after...)
	return true
}

// MoveDown relocates the focused item one position later in linear
// order. No-op at the end. Reports whether the item moved.
func (items *Items) MoveDown() bool {
	if items.focus == nil || len(items.after) == 0 {
		return false
	}
	neighbor := items.after[0]
	items.after = items.after[1:]
	items.before = append(items.before, neighbor)
	return true
}

// References returns the references of all items in linear order.
func (items *Items) References() []ref.Reference {
	return MapToList(items, func(item Item, _ bool) ref.Reference {
		return item.Reference()
	})
}

// MapToList projects the collection to a slice in linear order,
// tagging exactly one element as focused (none when empty). This is
// the rendering layer's only view of the structure.
func MapToList[T any](items *Items, project func(item Item, focused bool) T) []T {
	if items.focus == nil {
		return nil
	}
	result := make([]T, 0, items.Len())
	for _, item := range items.before {
		result = append(result, project(item, false))
	}
	result = append(result, project(items.focus, true))
	for _, item := range items.after {
		result = append(result, project(item, false))
	}
	return result
}
