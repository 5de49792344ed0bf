// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

// Package ref defines validated reference types for Unison
// definitions. A [Reference] is a hash-qualified name: the
// human-readable name of a term, type, or constructor plus the short
// content hash that pins it to one exact definition. References are
// small immutable values with unexported fields; construct them
// through the New* functions or ParseReference, which validate their
// parts.
//
// Everything above the fetch layer treats a Reference as an opaque,
// equality-comparable, totally ordered key. The workspace keys its
// open items by Reference and never looks inside.
package ref
