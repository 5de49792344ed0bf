// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// Kind distinguishes what a Reference points at. The set is closed:
// Unison definitions are terms, types, or constructors of types and
// abilities.
type Kind int

const (
	// Term is a plain term definition (function or value).
	Term Kind = iota
	// Type is a type declaration (data or ability).
	Type
	// DataConstructor is a constructor of a data type.
	DataConstructor
	// AbilityConstructor is a constructor (operation) of an ability.
	AbilityConstructor
)

// String returns the lowercase wire name of the kind, matching the
// codebase server's JSON tags.
func (kind Kind) String() string {
	switch kind {
	case Term:
		return "term"
	case Type:
		return "type"
	case DataConstructor:
		return "data-constructor"
	case AbilityConstructor:
		return "ability-constructor"
	default:
		return fmt.Sprintf("unknown(%d)", int(kind))
	}
}

// ParseKind parses a kind from its wire name.
func ParseKind(text string) (Kind, error) {
	switch text {
	case "term":
		return Term, nil
	case "type":
		return Type, nil
	case "data-constructor":
		return DataConstructor, nil
	case "ability-constructor":
		return AbilityConstructor, nil
	default:
		return 0, fmt.Errorf("unknown reference kind: %q", text)
	}
}

// Reference is a hash-qualified name identifying one definition: a
// Name, a Hash, and a Kind. At least one of name and hash must be
// present; the usual form carries both ("base.List.map#abc123"). The
// workspace uses References purely as comparable keys.
//
// Size: two string headers, a bool, and an int. Copy freely.
type Reference struct {
	name Name
	hash Hash
	kind Kind
}

// NewReference creates a validated Reference. Either name or hash may
// be zero, but not both.
func NewReference(kind Kind, name Name, hash Hash) (Reference, error) {
	if name.IsZero() && hash.IsZero() {
		return Reference{}, fmt.Errorf("invalid reference: both name and hash are empty")
	}
	return Reference{name: name, hash: hash, kind: kind}, nil
}

// MustReference creates a Reference and panics on error. For tests.
func MustReference(kind Kind, name Name, hash Hash) Reference {
	reference, err := NewReference(kind, name, hash)
	if err != nil {
		panic(err)
	}
	return reference
}

// ParseReference parses a hash-qualified name for the given kind:
// "name#hash", "name", or "#hash".
func ParseReference(kind Kind, text string) (Reference, error) {
	if text == "" {
		return Reference{}, fmt.Errorf("invalid reference: empty")
	}
	if strings.HasPrefix(text, "#") {
		hash, err := ParseHash(text)
		if err != nil {
			return Reference{}, err
		}
		return Reference{hash: hash, kind: kind}, nil
	}
	namePart, hashPart, hasHash := strings.Cut(text, "#")
	name, err := ParseName(namePart)
	if err != nil {
		return Reference{}, err
	}
	if !hasHash {
		return Reference{name: name, kind: kind}, nil
	}
	hash, err := ParseHash("#" + hashPart)
	if err != nil {
		return Reference{}, err
	}
	return Reference{name: name, hash: hash, kind: kind}, nil
}

// MustParseReference parses a reference and panics on error. For tests.
func MustParseReference(kind Kind, text string) Reference {
	reference, err := ParseReference(kind, text)
	if err != nil {
		panic(err)
	}
	return reference
}

// Name returns the name component (may be zero for hash-only refs).
func (r Reference) Name() Name { return r.name }

// Hash returns the hash component (may be zero for name-only refs).
func (r Reference) Hash() Hash { return r.hash }

// Kind returns what the reference points at.
func (r Reference) Kind() Kind { return r.kind }

// IsZero reports whether this is an uninitialized zero-value Reference.
func (r Reference) IsZero() bool { return r.name.IsZero() && r.hash.IsZero() }

// String returns the hash-qualified text form: "name#hash", or the
// bare part when only one component is present.
func (r Reference) String() string {
	switch {
	case r.name.IsZero():
		return r.hash.String()
	case r.hash.IsZero():
		return r.name.String()
	default:
		return r.name.String() + r.hash.String()
	}
}

// Equal reports whether two references identify the same definition:
// same kind, same name, same hash.
func (r Reference) Equal(other Reference) bool {
	return r == other
}

// Compare orders references by name, then hash, then kind. The order
// is total and has no semantic meaning beyond determinism (sorted
// finder results, stable test fixtures).
func (r Reference) Compare(other Reference) int {
	if c := strings.Compare(r.name.String(), other.name.String()); c != 0 {
		return c
	}
	if c := strings.Compare(r.hash.String(), other.hash.String()); c != 0 {
		return c
	}
	switch {
	case r.kind < other.kind:
		return -1
	case r.kind > other.kind:
		return 1
	default:
		return 0
	}
}

// MarshalText implements encoding.TextMarshaler. Serializes as
// "kind:name#hash" so the kind survives the round trip.
func (r Reference) MarshalText() ([]byte, error) {
	if r.IsZero() {
		return nil, fmt.Errorf("cannot marshal zero-value Reference")
	}
	return []byte(r.kind.String() + ":" + r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Parses the
// "kind:name#hash" form produced by MarshalText.
func (r *Reference) UnmarshalText(data []byte) error {
	kindPart, refPart, found := strings.Cut(string(data), ":")
	if !found {
		return fmt.Errorf("invalid Reference %q: missing kind prefix", data)
	}
	kind, err := ParseKind(kindPart)
	if err != nil {
		return fmt.Errorf("invalid Reference %q: %w", data, err)
	}
	parsed, err := ParseReference(kind, refPart)
	if err != nil {
		return fmt.Errorf("invalid Reference %q: %w", data, err)
	}
	*r = parsed
	return nil
}
