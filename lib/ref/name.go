// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// Name is a dot-separated path to a definition within a namespace
// tree, e.g. "base.List.map". Names may contain operator segments
// ("base.+", "List.++") — any printable non-dot characters form a
// valid segment. An absolute name (anchored at the codebase root)
// carries a leading dot in its text form; internally the leading dot
// is stripped and tracked as a flag.
//
// Size: one string header plus a bool. Segment access re-splits on
// demand; names are short and splitting is not on any hot path.
type Name struct {
	path     string
	absolute bool
}

// NewName creates a validated relative Name from a dotted path.
func NewName(path string) (Name, error) {
	return newName(path, false)
}

// ParseName parses a name in text form. A leading dot marks the name
// as absolute: ".base.List.map" is the root-anchored form of
// "base.List.map".
func ParseName(text string) (Name, error) {
	if strings.HasPrefix(text, ".") && len(text) > 1 {
		return newName(text[1:], true)
	}
	return newName(text, false)
}

func newName(path string, absolute bool) (Name, error) {
	if path == "" {
		return Name{}, fmt.Errorf("invalid name: empty")
	}
	for _, segment := range strings.Split(path, ".") {
		if segment == "" {
			return Name{}, fmt.Errorf("invalid name %q: empty segment", path)
		}
		if strings.ContainsAny(segment, " \t\n#") {
			return Name{}, fmt.Errorf("invalid name %q: segment %q contains whitespace or '#'", path, segment)
		}
	}
	return Name{path: path, absolute: absolute}, nil
}

// MustParseName parses a name and panics on error. For tests and
// compile-time constants only.
func MustParseName(text string) Name {
	name, err := ParseName(text)
	if err != nil {
		panic(err)
	}
	return name
}

// String returns the text form, with a leading dot for absolute names.
func (n Name) String() string {
	if n.absolute {
		return "." + n.path
	}
	return n.path
}

// IsZero reports whether this is an uninitialized zero-value Name.
func (n Name) IsZero() bool { return n.path == "" }

// IsAbsolute reports whether the name is anchored at the codebase root.
func (n Name) IsAbsolute() bool { return n.absolute }

// Segments returns the dot-separated path segments in order.
func (n Name) Segments() []string {
	if n.path == "" {
		return nil
	}
	return strings.Split(n.path, ".")
}

// Last returns the final segment — the unqualified definition name.
func (n Name) Last() string {
	segments := n.Segments()
	if len(segments) == 0 {
		return ""
	}
	return segments[len(segments)-1]
}

// Child returns the name extended by one segment.
func (n Name) Child(segment string) (Name, error) {
	if n.IsZero() {
		return newName(segment, n.absolute)
	}
	return newName(n.path+"."+segment, n.absolute)
}

// Parent returns the name with its last segment removed. The zero
// Name is returned when there is no parent (single-segment name).
func (n Name) Parent() Name {
	index := strings.LastIndexByte(n.path, '.')
	if index < 0 {
		return Name{}
	}
	return Name{path: n.path[:index], absolute: n.absolute}
}
