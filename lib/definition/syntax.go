// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import "strings"

// SyntaxCategory classifies a source segment for display styling.
// The values mirror the codebase server's annotation tags; unknown
// tags decode to CategoryPlain rather than failing, so a newer server
// can introduce categories without breaking older viewers.
type SyntaxCategory string

const (
	CategoryPlain              SyntaxCategory = ""
	CategoryKeyword            SyntaxCategory = "Keyword"
	CategoryVar                SyntaxCategory = "Var"
	CategoryTypeReference      SyntaxCategory = "TypeReference"
	CategoryTermReference      SyntaxCategory = "TermReference"
	CategoryDataConstructor    SyntaxCategory = "DataConstructorReference"
	CategoryAbilityConstructor SyntaxCategory = "AbilityConstructorReference"
	CategoryNumericLiteral     SyntaxCategory = "NumericLiteral"
	CategoryTextLiteral        SyntaxCategory = "TextLiteral"
	CategoryCharLiteral        SyntaxCategory = "CharLiteral"
	CategoryBooleanLiteral     SyntaxCategory = "BooleanLiteral"
	CategoryOperator           SyntaxCategory = "Op"
	CategoryComment            SyntaxCategory = "Comment"
	CategoryDocDelimiter       SyntaxCategory = "DocDelimiter"
	CategoryAbilityBraces      SyntaxCategory = "AbilityBraces"
	CategoryDelimiter          SyntaxCategory = "Delimiter"
	CategoryHashQualifier      SyntaxCategory = "HashQualifier"
)

// Segment is one run of source text with a uniform syntax category.
// Reference-bearing segments (term/type/constructor occurrences)
// carry the target hash so the UI can open the definition under the
// cursor.
type Segment struct {
	Text     string
	Category SyntaxCategory

	// Target is the hash (text form, with sigil) of the definition
	// this segment links to. Empty for non-reference segments.
	Target string
}

// SyntaxText is syntax-annotated source: an ordered list of segments
// whose concatenated text is the exact source.
type SyntaxText []Segment

// String returns the plain source with all annotations dropped.
func (text SyntaxText) String() string {
	var builder strings.Builder
	for _, segment := range text {
		builder.WriteString(segment.Text)
	}
	return builder.String()
}

// IsEmpty reports whether the text contains no characters at all.
// A SyntaxText with only empty segments counts as empty.
func (text SyntaxText) IsEmpty() bool {
	for _, segment := range text {
		if segment.Text != "" {
			return false
		}
	}
	return true
}

// Lines splits the text into per-line SyntaxText values, preserving
// segment annotations across the split. Segments containing newlines
// are divided at each newline; the newline characters themselves are
// not included in any line.
func (text SyntaxText) Lines() []SyntaxText {
	lines := []SyntaxText{nil}
	for _, segment := range text {
		parts := strings.Split(segment.Text, "\n")
		for index, part := range parts {
			if index > 0 {
				lines = append(lines, nil)
			}
			if part == "" {
				continue
			}
			last := len(lines) - 1
			lines[last] = append(lines[last], Segment{
				Text:     part,
				Category: segment.Category,
				Target:   segment.Target,
			})
		}
	}
	return lines
}

// FirstLine returns the first line of the text. Used for collapsed
// (signature-only) display of definitions without a separate
// signature.
func (text SyntaxText) FirstLine() SyntaxText {
	lines := text.Lines()
	if len(lines) == 0 {
		return nil
	}
	return lines[0]
}
