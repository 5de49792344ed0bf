// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/unison-tools/uniscope/lib/definition"
)

// Theme defines the color palette for uniscope's terminal UI. All
// colors use lipgloss ANSI 256-color codes for broad terminal
// compatibility.
//
// The fields cover universal chrome (text, focus, borders) and the
// Unison syntax categories the annotated-source renderer styles.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	ErrorText  lipgloss.Color

	// Focused item card.
	FocusAccent     lipgloss.Color
	FocusBackground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color

	// Finder match highlighting.
	MatchForeground lipgloss.Color

	// Syntax categories.
	SyntaxKeyword     lipgloss.Color
	SyntaxVar         lipgloss.Color
	SyntaxTypeRef     lipgloss.Color
	SyntaxTermRef     lipgloss.Color
	SyntaxConstructor lipgloss.Color
	SyntaxLiteral     lipgloss.Color
	SyntaxText        lipgloss.Color
	SyntaxComment     lipgloss.Color
	SyntaxOperator    lipgloss.Color
	SyntaxDelimiter   lipgloss.Color
	SyntaxHash        lipgloss.Color
}

// SyntaxColor returns the color for a syntax category. Unrecognized
// categories (including plain text) render in NormalText.
func (theme Theme) SyntaxColor(category definition.SyntaxCategory) lipgloss.Color {
	switch category {
	case definition.CategoryKeyword:
		return theme.SyntaxKeyword
	case definition.CategoryVar:
		return theme.SyntaxVar
	case definition.CategoryTypeReference, definition.CategoryAbilityBraces:
		return theme.SyntaxTypeRef
	case definition.CategoryTermReference:
		return theme.SyntaxTermRef
	case definition.CategoryDataConstructor, definition.CategoryAbilityConstructor:
		return theme.SyntaxConstructor
	case definition.CategoryNumericLiteral, definition.CategoryBooleanLiteral:
		return theme.SyntaxLiteral
	case definition.CategoryTextLiteral, definition.CategoryCharLiteral:
		return theme.SyntaxText
	case definition.CategoryComment, definition.CategoryDocDelimiter:
		return theme.SyntaxComment
	case definition.CategoryOperator:
		return theme.SyntaxOperator
	case definition.CategoryDelimiter:
		return theme.SyntaxDelimiter
	case definition.CategoryHashQualifier:
		return theme.SyntaxHash
	default:
		return theme.NormalText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),
	ErrorText:  lipgloss.Color("196"),

	FocusAccent:     lipgloss.Color("220"), // amber
	FocusBackground: lipgloss.Color("236"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),

	MatchForeground: lipgloss.Color("220"), // amber, matches FocusAccent

	SyntaxKeyword:     lipgloss.Color("141"), // light purple
	SyntaxVar:         lipgloss.Color("252"),
	SyntaxTypeRef:     lipgloss.Color("75"),  // blue
	SyntaxTermRef:     lipgloss.Color("114"), // green
	SyntaxConstructor: lipgloss.Color("80"),  // teal
	SyntaxLiteral:     lipgloss.Color("208"), // orange
	SyntaxText:        lipgloss.Color("150"), // pale green
	SyntaxComment:     lipgloss.Color("245"),
	SyntaxOperator:    lipgloss.Color("213"), // pink
	SyntaxDelimiter:   lipgloss.Color("245"),
	SyntaxHash:        lipgloss.Color("240"), // dim: hashes are noise until needed
}
