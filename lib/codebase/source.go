// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package codebase

import (
	"context"
	"errors"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// ErrNotFound reports that the codebase has no definition for the
// requested reference. Callers match with errors.Is.
var ErrNotFound = errors.New("definition not found")

// Source provides definitions, namespace listings, and search over one
// Unison codebase.
type Source interface {
	// Definition fetches the definition for a reference.
	Definition(ctx context.Context, reference ref.Reference) (definition.Definition, error)

	// Browse lists the direct children of a namespace. The zero Name
	// lists the codebase root.
	Browse(ctx context.Context, namespace ref.Name) (NamespaceListing, error)

	// Find searches definitions by name. At most limit results;
	// limit <= 0 means no limit. Results come back in the source's
	// relevance order.
	Find(ctx context.Context, query string, limit int) ([]FindResult, error)
}

// NamespaceEntry is one child of a browsed namespace: either a
// definition or a child namespace.
type NamespaceEntry struct {
	// Name is the entry's name relative to the listed namespace.
	Name string

	// Ref identifies the definition. Zero for child namespaces.
	Ref ref.Reference

	// Namespace is true for child namespaces.
	Namespace bool
}

// NamespaceListing is the result of browsing one namespace.
type NamespaceListing struct {
	// Path is the listed namespace. Zero for the codebase root.
	Path ref.Name

	// Entries are the direct children, namespaces first, then
	// definitions, each group in name order.
	Entries []NamespaceEntry
}

// FindResult is one definition search hit.
type FindResult struct {
	Ref ref.Reference

	// Signature is the plain-text one-line signature shown next to
	// the name in finder results. May be empty.
	Signature string
}
