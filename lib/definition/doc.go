// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package definition models the payloads the codebase server returns
// for a fetched definition: syntax-annotated source ([SyntaxText]),
// the definition variants themselves (term, type, data constructor,
// ability constructor — a closed set, see [Definition]), and the
// structured documentation tree ([Docs]) whose sections carry the
// stable fold IDs the workspace uses for per-item collapse state.
//
// The workspace stores these values opaquely and hands them back to
// the rendering layer; nothing in this package knows about focus,
// zoom, or any other UI state.
//
// The wire format (wire.go) is the JSON contract with the codebase
// server and with offline snapshot files. Decoding is strict where it
// matters: a definition without source is a decode error, surfaced by
// the fetch layer the same way as a network failure.
package definition
