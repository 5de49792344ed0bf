// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package perspective models the user's position in the namespace
// tree: a fixed root (where the session was opened) plus the path
// currently being browsed beneath it. The sidebar renders the path as
// a breadcrumb and lists the children of the current namespace.
package perspective

import (
	"github.com/unison-tools/uniscope/lib/ref"
)

// Perspective is a root namespace plus the current path under it.
// The zero value is a perspective at the codebase root.
type Perspective struct {
	root    ref.Name
	current ref.Name
}

// At returns a perspective rooted (and currently positioned) at the
// given namespace. The zero Name roots at the codebase root.
func At(root ref.Name) Perspective {
	return Perspective{root: root, current: root}
}

// Root returns the fixed root namespace.
func (p Perspective) Root() ref.Name { return p.root }

// Current returns the namespace currently being browsed.
func (p Perspective) Current() ref.Name { return p.current }

// AtRoot reports whether the current position is the root.
func (p Perspective) AtRoot() bool { return p.current == p.root }

// Into descends one segment into a child namespace.
func (p Perspective) Into(segment string) (Perspective, error) {
	child, err := p.current.Child(segment)
	if err != nil {
		return p, err
	}
	return Perspective{root: p.root, current: child}, nil
}

// Up ascends one segment. Ascending never leaves the root: at the
// root, Up is the identity.
func (p Perspective) Up() Perspective {
	if p.AtRoot() {
		return p
	}
	return Perspective{root: p.root, current: p.current.Parent()}
}

// Breadcrumb returns the path segments from the root to the current
// namespace, inclusive of segments below the root only. Empty at the
// root.
func (p Perspective) Breadcrumb() []string {
	rootDepth := len(p.root.Segments())
	segments := p.current.Segments()
	if len(segments) <= rootDepth {
		return nil
	}
	return segments[rootDepth:]
}
