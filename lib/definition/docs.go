// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package definition

// FoldID identifies one foldable documentation section. IDs are
// assigned by the codebase server and are stable for a given
// definition hash, so the workspace can key per-item fold state on
// them across re-renders.
type FoldID string

// Docs is the documentation tree attached to a definition. An empty
// tree (no blocks) means the definition is undocumented.
type Docs struct {
	Blocks []DocBlock
}

// IsEmpty reports whether the definition has any documentation.
func (docs Docs) IsEmpty() bool { return len(docs.Blocks) == 0 }

// FoldIDs returns the IDs of every foldable section in the tree, in
// document order, regardless of fold state. The viewer numbers only
// the visible sections; this is the full enumeration.
func (docs Docs) FoldIDs() []FoldID {
	var ids []FoldID
	var walk func(blocks []DocBlock)
	walk = func(blocks []DocBlock) {
		for _, block := range blocks {
			if section, ok := block.(*DocSection); ok {
				ids = append(ids, section.ID)
				walk(section.Blocks)
			}
		}
	}
	walk(docs.Blocks)
	return ids
}

// DocBlock is one block of a documentation tree. The set of
// implementations is closed: [DocParagraph], [DocCode], and
// [DocSection].
type DocBlock interface {
	docBlock()
}

// DocParagraph is prose. The text is markdown — the server renders
// Unison doc special forms down to markdown before serving them.
type DocParagraph struct {
	Markdown string
}

func (*DocParagraph) docBlock() {}

// DocCode is a code example. Language tags the block for syntax
// highlighting; "unison" (or empty) marks inline Unison examples.
type DocCode struct {
	Language string
	Source   string
}

func (*DocCode) docBlock() {}

// DocSection is a titled, foldable subsection. The workspace tracks
// folded sections per open item as a set of [FoldID].
type DocSection struct {
	ID     FoldID
	Title  string
	Blocks []DocBlock
}

func (*DocSection) docBlock() {}
