// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"unicode"

	"github.com/junegunn/fzf/src/algo"
	"github.com/junegunn/fzf/src/util"
)

// fzf's matcher scores nothing until its bonus tables are initialized
// with a scoring scheme.
func init() {
	algo.Init("default")
}

// FuzzyResult is the outcome of matching one candidate string against
// a finder pattern.
type FuzzyResult struct {
	// Matched reports whether every pattern rune was found in order.
	Matched bool

	// Score ranks matched candidates; higher is better. fzf's scoring
	// favors consecutive runs and matches at word boundaries, which is
	// what makes "lmap" find "base.List.map".
	Score int

	// Positions are the rune indexes of the matched characters, for
	// highlight rendering. Sorted ascending.
	Positions []int
}

// NewSlab allocates the scratch memory fzf's matcher needs. One slab
// per matching loop; a slab must not be shared across goroutines.
func NewSlab() *util.Slab {
	return util.MakeSlab(100*1024, 2048)
}

// FuzzyMatch matches one candidate against a query's runes. An empty
// pattern matches everything with score zero. Matching is smart-case:
// an all-lowercase pattern matches case-insensitively, any uppercase
// rune makes it exact-case.
func FuzzyMatch(text string, pattern []rune, slab *util.Slab) FuzzyResult {
	if len(pattern) == 0 {
		return FuzzyResult{Matched: true}
	}

	// Smart-case: the pattern is matched case-sensitively only when it
	// contains an uppercase rune. fzf expects a lowercased pattern in
	// the insensitive mode.
	caseSensitive := false
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			caseSensitive = true
			break
		}
	}
	matchPattern := pattern
	if !caseSensitive {
		lowered := make([]rune, len(pattern))
		for i, r := range pattern {
			lowered[i] = unicode.ToLower(r)
		}
		matchPattern = lowered
	}

	chars := util.ToChars([]byte(text))
	result, positions := algo.FuzzyMatchV2(caseSensitive, true, true, &chars, matchPattern, true, slab)
	if result.Start < 0 {
		return FuzzyResult{}
	}

	var matched []int
	if positions != nil {
		matched = *positions
		// fzf reports positions from the end of the match backwards.
		for left, right := 0, len(matched)-1; left < right; left, right = left+1, right-1 {
			matched[left], matched[right] = matched[right], matched[left]
		}
	}
	return FuzzyResult{Matched: true, Score: result.Score, Positions: matched}
}
