// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package workspaceui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/unison-tools/uniscope/lib/codebase"
	"github.com/unison-tools/uniscope/lib/definition"
	"github.com/unison-tools/uniscope/lib/ref"
)

// fetchResultMsg delivers a completed definition fetch. Exactly one
// of payload and err is set.
type fetchResultMsg struct {
	ref     ref.Reference
	payload definition.Definition
	err     error
}

// fetchDefinition returns a command that fetches one definition in
// the background. The workspace has already inserted the loading
// placeholder; the result message resolves it.
func fetchDefinition(source codebase.Source, reference ref.Reference) tea.Cmd {
	return func() tea.Msg {
		payload, err := source.Definition(context.Background(), reference)
		return fetchResultMsg{ref: reference, payload: payload, err: err}
	}
}

// browseResultMsg delivers a namespace listing for the sidebar.
type browseResultMsg struct {
	listing codebase.NamespaceListing
	err     error
}

func browseNamespace(source codebase.Source, namespace ref.Name) tea.Cmd {
	return func() tea.Msg {
		listing, err := source.Browse(context.Background(), namespace)
		return browseResultMsg{listing: listing, err: err}
	}
}

// findResultsMsg delivers finder search hits. The query tags the
// message so responses that arrive after further typing are dropped.
type findResultsMsg struct {
	query   string
	results []codebase.FindResult
	err     error
}

// finderResultLimit bounds one finder query. The overlay shows a
// handful of rows; fetching more only slows the round trip.
const finderResultLimit = 200

func findDefinitions(source codebase.Source, query string) tea.Cmd {
	return func() tea.Msg {
		results, err := source.Find(context.Background(), query, finderResultLimit)
		return findResultsMsg{query: query, results: results, err: err}
	}
}
