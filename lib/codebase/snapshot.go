// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package codebase

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// SnapshotSource serves definitions from a snapshot file instead of a
// live server: offline browsing, demos, and tests. The file holds a
// definitions payload in the same JSON shape the API serves, except
// that comments and trailing commas are allowed — snapshots are meant
// to be hand-curated.
//
// Namespace listings are derived from the definition names, so a
// snapshot needs no separate namespace section.
type SnapshotSource struct {
	definitions map[ref.Reference]definition.Definition

	// byName resolves name-only lookups: the finder produces fully
	// qualified references, but workspace restores may carry
	// name-only refs from older sessions.
	byName map[string]ref.Reference

	// names is every definition name in sorted order, for Browse and
	// Find.
	names []string
}

// LoadSnapshot reads and decodes a snapshot file.
func LoadSnapshot(path string) (*SnapshotSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("codebase: reading snapshot: %w", err)
	}
	source, err := ParseSnapshot(data)
	if err != nil {
		return nil, fmt.Errorf("codebase: snapshot %s: %w", path, err)
	}
	return source, nil
}

// ParseSnapshot decodes snapshot bytes (JSON with comments).
func ParseSnapshot(data []byte) (*SnapshotSource, error) {
	definitions, _, err := definition.Decode(jsonc.ToJSON(data))
	if err != nil {
		return nil, err
	}

	source := &SnapshotSource{
		definitions: make(map[ref.Reference]definition.Definition, len(definitions)),
		byName:      make(map[string]ref.Reference, len(definitions)),
	}
	for _, decoded := range definitions {
		reference := decoded.Reference()
		source.definitions[reference] = decoded
		if name := reference.Name(); !name.IsZero() {
			source.byName[name.String()] = reference
			source.names = append(source.names, name.String())
		}
	}
	slices.Sort(source.names)
	return source, nil
}

// Definition looks up a definition. A reference whose exact form is
// not in the snapshot falls back to name-only lookup.
func (source *SnapshotSource) Definition(_ context.Context, reference ref.Reference) (definition.Definition, error) {
	if decoded, ok := source.definitions[reference]; ok {
		return decoded, nil
	}
	if name := reference.Name(); !name.IsZero() {
		if resolved, ok := source.byName[name.String()]; ok {
			return source.definitions[resolved], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, reference)
}

// Browse derives the direct children of a namespace from the
// definition names in the snapshot.
func (source *SnapshotSource) Browse(_ context.Context, namespace ref.Name) (NamespaceListing, error) {
	prefix := ""
	if !namespace.IsZero() {
		prefix = namespace.String() + "."
	}

	// A segment can be both a definition and a namespace ("base.List"
	// the type next to "base.List.map"), so the two groups deduplicate
	// independently.
	var namespaces []string
	var definitions []string
	seenNamespace := make(map[string]bool)
	seenDefinition := make(map[string]bool)
	for _, name := range source.names {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		child := name[len(prefix):]
		segment, _, nested := strings.Cut(child, ".")
		if nested {
			if !seenNamespace[segment] {
				seenNamespace[segment] = true
				namespaces = append(namespaces, segment)
			}
		} else if !seenDefinition[segment] {
			seenDefinition[segment] = true
			definitions = append(definitions, segment)
		}
	}

	listing := NamespaceListing{Path: namespace}
	for _, segment := range namespaces {
		listing.Entries = append(listing.Entries, NamespaceEntry{
			Name:      segment,
			Namespace: true,
		})
	}
	for _, segment := range definitions {
		qualified, err := qualifiedName(namespace, segment)
		if err != nil {
			return NamespaceListing{}, fmt.Errorf("codebase: snapshot entry %q: %w", segment, err)
		}
		listing.Entries = append(listing.Entries, NamespaceEntry{
			Name: segment,
			Ref:  source.byName[qualified],
		})
	}
	return listing, nil
}

// Find returns definitions whose name contains the query,
// case-insensitively, in name order. The UI layers fuzzy ranking on
// top; the snapshot just narrows the candidate set.
func (source *SnapshotSource) Find(_ context.Context, query string, limit int) ([]FindResult, error) {
	needle := strings.ToLower(query)
	var results []FindResult
	for _, name := range source.names {
		if needle != "" && !strings.Contains(strings.ToLower(name), needle) {
			continue
		}
		reference := source.byName[name]
		results = append(results, FindResult{
			Ref:       reference,
			Signature: source.definitions[reference].Signature().String(),
		})
		if limit > 0 && len(results) == limit {
			break
		}
	}
	return results, nil
}
