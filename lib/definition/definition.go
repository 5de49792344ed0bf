// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import "github.com/unison-tools/uniscope/lib/ref"

// Definition is the payload for one fetched definition. The set of
// implementations is closed: [Term], [Type], [DataConstructor], and
// [AbilityConstructor]. Consumers switch on the concrete type; the
// sealed marker keeps external packages from adding variants.
type Definition interface {
	// Reference returns the hash-qualified name this payload was
	// fetched for.
	Reference() ref.Reference

	// Signature returns the one-line annotated signature shown in
	// collapsed display and finder results.
	Signature() SyntaxText

	// Source returns the full annotated source of the definition.
	Source() SyntaxText

	// Docs returns the attached documentation, or an empty Docs when
	// the definition has none.
	Docs() Docs

	sealed()
}

// Term is a plain term definition: a function or value.
type Term struct {
	Ref        ref.Reference
	TermSig    SyntaxText
	TermSource SyntaxText
	TermDocs   Docs

	// Builtin is true for definitions with no Unison source (the
	// runtime provides them). Builtin terms render their signature
	// with a builtin marker instead of a source body.
	Builtin bool
}

func (term *Term) Reference() ref.Reference { return term.Ref }
func (term *Term) Signature() SyntaxText    { return term.TermSig }
func (term *Term) Source() SyntaxText       { return term.TermSource }
func (term *Term) Docs() Docs               { return term.TermDocs }
func (term *Term) sealed()                  {}

// Type is a type declaration: a data type or an ability.
type Type struct {
	Ref        ref.Reference
	TypeSource SyntaxText
	TypeDocs   Docs

	// Ability is true for ability declarations, false for data types.
	Ability bool

	// Builtin is true for builtin types with no declaration source.
	Builtin bool
}

func (typ *Type) Reference() ref.Reference { return typ.Ref }

// Signature of a type is the first line of its declaration.
func (typ *Type) Signature() SyntaxText { return typ.TypeSource.FirstLine() }
func (typ *Type) Source() SyntaxText    { return typ.TypeSource }
func (typ *Type) Docs() Docs            { return typ.TypeDocs }
func (typ *Type) sealed()               {}

// DataConstructor is a constructor of a data type. Its source is the
// declaration of the parent type, with the constructor's own
// signature carried separately.
type DataConstructor struct {
	Ref        ref.Reference
	CtorSig    SyntaxText
	TypeSource SyntaxText
	TypeDocs   Docs
}

func (ctor *DataConstructor) Reference() ref.Reference { return ctor.Ref }
func (ctor *DataConstructor) Signature() SyntaxText    { return ctor.CtorSig }
func (ctor *DataConstructor) Source() SyntaxText       { return ctor.TypeSource }
func (ctor *DataConstructor) Docs() Docs               { return ctor.TypeDocs }
func (ctor *DataConstructor) sealed()                  {}

// AbilityConstructor is an operation of an ability, presented the
// same way as a data constructor: own signature, parent declaration
// as source.
type AbilityConstructor struct {
	Ref        ref.Reference
	CtorSig    SyntaxText
	TypeSource SyntaxText
	TypeDocs   Docs
}

func (ctor *AbilityConstructor) Reference() ref.Reference { return ctor.Ref }
func (ctor *AbilityConstructor) Signature() SyntaxText    { return ctor.CtorSig }
func (ctor *AbilityConstructor) Source() SyntaxText       { return ctor.TypeSource }
func (ctor *AbilityConstructor) Docs() Docs               { return ctor.TypeDocs }
func (ctor *AbilityConstructor) sealed()                  {}
