// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package ref

import (
	"fmt"
	"strings"
)

// Hash is a Unison content hash in text form: a '#' sigil followed by
// base32hex digits. Hashes may be abbreviated (a prefix of the full
// hash) — the codebase server accepts any unambiguous prefix, and the
// UI displays short forms throughout. Constructor hashes carry a
// '#<index>' suffix after the base hash ("#abc123#0").
type Hash struct {
	text string
}

// hashAlphabet is the base32hex digit set Unison uses for hashes.
const hashAlphabet = "0123456789abcdefghijklmnopqrstuv"

// ParseHash parses a hash in text form. The leading '#' is required.
func ParseHash(text string) (Hash, error) {
	if !strings.HasPrefix(text, "#") {
		return Hash{}, fmt.Errorf("invalid hash %q: missing '#' sigil", text)
	}
	body := text[1:]
	if body == "" {
		return Hash{}, fmt.Errorf("invalid hash %q: empty", text)
	}
	// An optional single constructor-index suffix is allowed.
	base, suffix, hasSuffix := strings.Cut(body, "#")
	if err := validateHashDigits(base); err != nil {
		return Hash{}, fmt.Errorf("invalid hash %q: %w", text, err)
	}
	if hasSuffix {
		if suffix == "" || strings.Contains(suffix, "#") {
			return Hash{}, fmt.Errorf("invalid hash %q: malformed constructor suffix", text)
		}
		for _, character := range suffix {
			if character < '0' || character > '9' {
				return Hash{}, fmt.Errorf("invalid hash %q: constructor index must be decimal", text)
			}
		}
	}
	return Hash{text: text}, nil
}

func validateHashDigits(body string) error {
	if body == "" {
		return fmt.Errorf("empty digits")
	}
	for _, character := range body {
		if !strings.ContainsRune(hashAlphabet, character) {
			return fmt.Errorf("character %q is not base32hex", character)
		}
	}
	return nil
}

// MustParseHash parses a hash and panics on error. For tests only.
func MustParseHash(text string) Hash {
	hash, err := ParseHash(text)
	if err != nil {
		panic(err)
	}
	return hash
}

// String returns the text form including the '#' sigil.
func (h Hash) String() string { return h.text }

// IsZero reports whether this is an uninitialized zero-value Hash.
func (h Hash) IsZero() bool { return h.text == "" }

// Short returns an abbreviated display form: the sigil plus at most
// length digits of the base hash (constructor suffix preserved).
func (h Hash) Short(length int) string {
	if h.text == "" {
		return ""
	}
	base, suffix, hasSuffix := strings.Cut(h.text[1:], "#")
	if len(base) > length {
		base = base[:length]
	}
	if hasSuffix {
		return "#" + base + "#" + suffix
	}
	return "#" + base
}
