// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package codebase_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/ref"
)

// testSnapshot is a hand-written snapshot exercising the JSONC
// extensions: comments and trailing commas.
const testSnapshot = `{
	// A small slice of base for offline browsing.
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
		},
		{
			"kind": "term",
			"name": "base.List.filter",
			"hash": "#f1l01",
			"signature": [{"text": "filter : (a -> Boolean) -> [a] -> [a]", "annotation": "signature"}],
			"source": [{"text": "filter p = cases\n  [] -> []", "annotation": "plain"}],
		},
		{
			"kind": "term",
			"name": "frobnicate",
			"hash": "#fr0b0",
			"source": [{"text": "frobnicate = 42", "annotation": "plain"}],
		},
	],
}`

func loadTestSnapshot(t *testing.T) *codebase.SnapshotSource {
	t.Helper()
	source, err := codebase.ParseSnapshot([]byte(testSnapshot))
	if err != nil {
		t.Fatalf("ParseSnapshot: %v", err)
	}
	return source
}

func TestLoadSnapshotFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.jsonc")
	if err := os.WriteFile(path, []byte(testSnapshot), 0o644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	if _, err := codebase.LoadSnapshot(path); err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if _, err := codebase.LoadSnapshot(filepath.Join(t.TempDir(), "absent.jsonc")); err == nil {
		t.Error("loading an absent file should fail")
	}
}

func TestSnapshotDefinitionLookup(t *testing.T) {
	source := loadTestSnapshot(t)
	exact := ref.MustParseReference(ref.Term, "base.List.map#m4p01")

	decoded, err := source.Definition(context.Background(), exact)
	if err != nil {
		t.Fatalf("Definition: %v", err)
	}
	if !decoded.Reference().Equal(exact) {
		t.Errorf("decoded reference = %v", decoded.Reference())
	}

	// Name-only references resolve through the name index.
	nameOnly := ref.MustParseReference(ref.Term, "base.List.map")
	decoded, err = source.Definition(context.Background(), nameOnly)
	if err != nil {
		t.Fatalf("name-only Definition: %v", err)
	}
	if !decoded.Reference().Equal(exact) {
		t.Errorf("name-only lookup resolved %v", decoded.Reference())
	}

	_, err = source.Definition(context.Background(), ref.MustParseReference(ref.Term, "ghost#gh0st"))
	if !errors.Is(err, codebase.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestSnapshotBrowse(t *testing.T) {
	source := loadTestSnapshot(t)

	root, err := source.Browse(context.Background(), ref.Name{})
	if err != nil {
		t.Fatalf("Browse root: %v", err)
	}
	// Root: namespace "base" plus definition "frobnicate".
	if len(root.Entries) != 2 {
		t.Fatalf("root entries = %+v, want 2", root.Entries)
	}
	if !root.Entries[0].Namespace || root.Entries[0].Name != "base" {
		t.Errorf("root entry 0 = %+v, want namespace base", root.Entries[0])
	}
	if root.Entries[1].Namespace || root.Entries[1].Name != "frobnicate" {
		t.Errorf("root entry 1 = %+v, want definition frobnicate", root.Entries[1])
	}

	// base: "List" is both a type definition and a namespace, so it
	// appears in both groups.
	base, err := source.Browse(context.Background(), ref.MustParseName("base"))
	if err != nil {
		t.Fatalf("Browse base: %v", err)
	}
	if len(base.Entries) != 2 {
		t.Fatalf("base entries = %+v, want 2", base.Entries)
	}
	if !base.Entries[0].Namespace || base.Entries[0].Name != "List" {
		t.Errorf("base entry 0 = %+v, want namespace List", base.Entries[0])
	}
	wantType := ref.MustParseReference(ref.Type, "base.List#l1st0")
	if base.Entries[1].Namespace || !base.Entries[1].Ref.Equal(wantType) {
		t.Errorf("base entry 1 = %+v, want the List type", base.Entries[1])
	}

	// base.List: the two terms in name order.
	list, err := source.Browse(context.Background(), ref.MustParseName("base.List"))
	if err != nil {
		t.Fatalf("Browse base.List: %v", err)
	}
	if len(list.Entries) != 2 || list.Entries[0].Name != "filter" || list.Entries[1].Name != "map" {
		t.Errorf("base.List entries = %+v, want [filter map]", list.Entries)
	}
}

func TestSnapshotFind(t *testing.T) {
	source := loadTestSnapshot(t)

	results, err := source.Find(context.Background(), "LIST", 0)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	// Case-insensitive: the List type plus both terms.
	if len(results) != 3 {
		t.Fatalf("results = %+v, want 3", results)
	}

	limited, err := source.Find(context.Background(), "list", 1)
	if err != nil {
		t.Fatalf("Find limited: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited results = %d, want 1", len(limited))
	}

	none, err := source.Find(context.Background(), "nomatch", 0)
	if err != nil {
		t.Fatalf("Find nomatch: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("nomatch results = %+v, want none", none)
	}
}
