// Copyright 2026 The Uniscope Authors
// SPDX-License-Identifier: Apache-2.0

package definition

import (
	"encoding/json"
	"fmt"

	"github.com/unison-tools/uniscope/lib/ref"
)

// Wire shapes for the definitions endpoint and for offline snapshot
// files. The JSON layout is the contract; struct names are internal.

type wireResponse struct {
	Definitions []wireDefinition `json:"definitions"`
	Missing     []string         `json:"missing,omitempty"`
}

type wireDefinition struct {
	Kind      string        `json:"kind"`
	Name      string        `json:"name"`
	Hash      string        `json:"hash"`
	Ability   bool          `json:"ability,omitempty"`
	Builtin   bool          `json:"builtin,omitempty"`
	Signature []wireSegment `json:"signature,omitempty"`
	Source    []wireSegment `json:"source,omitempty"`
	Docs      []wireBlock   `json:"docs,omitempty"`
}

type wireSegment struct {
	Text       string `json:"text"`
	Annotation string `json:"annotation,omitempty"`
	Target     string `json:"target,omitempty"`
}

type wireBlock struct {
	Type     string      `json:"type"`
	Markdown string      `json:"markdown,omitempty"`
	Language string      `json:"language,omitempty"`
	Source   string      `json:"source,omitempty"`
	ID       string      `json:"id,omitempty"`
	Title    string      `json:"title,omitempty"`
	Blocks   []wireBlock `json:"blocks,omitempty"`
}

// Decode parses a definitions response. Returns the decoded
// definitions plus the hashes the server reported as missing.
//
// Decoding is strict about payloads the UI cannot render: a
// definition with no source (unless builtin), an unknown kind, or a
// constructor without a signature is an error. A response with no
// definitions and no missing list is an error too — the server
// answered but said nothing, which callers must surface as a fetch
// failure rather than silently showing an empty card.
func Decode(data []byte) ([]Definition, []string, error) {
	var response wireResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, nil, fmt.Errorf("decode definitions response: %w", err)
	}
	if len(response.Definitions) == 0 && len(response.Missing) == 0 {
		return nil, nil, fmt.Errorf("decode definitions response: empty payload")
	}

	definitions := make([]Definition, 0, len(response.Definitions))
	for index, wire := range response.Definitions {
		decoded, err := decodeDefinition(wire)
		if err != nil {
			return nil, nil, fmt.Errorf("definition %d: %w", index, err)
		}
		definitions = append(definitions, decoded)
	}
	return definitions, response.Missing, nil
}

func decodeDefinition(wire wireDefinition) (Definition, error) {
	kind, err := ref.ParseKind(wire.Kind)
	if err != nil {
		return nil, err
	}

	qualified := wire.Name + wire.Hash
	reference, err := ref.ParseReference(kind, qualified)
	if err != nil {
		return nil, fmt.Errorf("reference %q: %w", qualified, err)
	}

	signature := decodeSegments(wire.Signature)
	source := decodeSegments(wire.Source)
	docs, err := decodeBlocks(wire.Docs)
	if err != nil {
		return nil, err
	}

	switch kind {
	case ref.Term:
		if source.IsEmpty() && !wire.Builtin {
			return nil, fmt.Errorf("term %q has no source", qualified)
		}
		return &Term{
			Ref:        reference,
			TermSig:    signature,
			TermSource: source,
			TermDocs:   Docs{Blocks: docs},
			Builtin:    wire.Builtin,
		}, nil

	case ref.Type:
		if source.IsEmpty() && !wire.Builtin {
			return nil, fmt.Errorf("type %q has no declaration source", qualified)
		}
		return &Type{
			Ref:        reference,
			TypeSource: source,
			TypeDocs:   Docs{Blocks: docs},
			Ability:    wire.Ability,
			Builtin:    wire.Builtin,
		}, nil

	case ref.DataConstructor:
		if signature.IsEmpty() {
			return nil, fmt.Errorf("data constructor %q has no signature", qualified)
		}
		return &DataConstructor{
			Ref:        reference,
			CtorSig:    signature,
			TypeSource: source,
			TypeDocs:   Docs{Blocks: docs},
		}, nil

	case ref.AbilityConstructor:
		if signature.IsEmpty() {
			return nil, fmt.Errorf("ability constructor %q has no signature", qualified)
		}
		return &AbilityConstructor{
			Ref:        reference,
			CtorSig:    signature,
			TypeSource: source,
			TypeDocs:   Docs{Blocks: docs},
		}, nil

	default:
		return nil, fmt.Errorf("unhandled kind %v", kind)
	}
}

func decodeSegments(wire []wireSegment) SyntaxText {
	if len(wire) == 0 {
		return nil
	}
	text := make(SyntaxText, 0, len(wire))
	for _, segment := range wire {
		// Unknown annotation tags degrade to plain styling rather
		// than failing the whole fetch.
		text = append(text, Segment{
			Text:     segment.Text,
			Category: SyntaxCategory(segment.Annotation),
			Target:   segment.Target,
		})
	}
	return text
}

func decodeBlocks(wire []wireBlock) ([]DocBlock, error) {
	if len(wire) == 0 {
		return nil, nil
	}
	blocks := make([]DocBlock, 0, len(wire))
	for _, block := range wire {
		switch block.Type {
		case "paragraph":
			blocks = append(blocks, &DocParagraph{Markdown: block.Markdown})
		case "code":
			blocks = append(blocks, &DocCode{Language: block.Language, Source: block.Source})
		case "section":
			if block.ID == "" {
				return nil, fmt.Errorf("doc section %q has no fold id", block.Title)
			}
			children, err := decodeBlocks(block.Blocks)
			if err != nil {
				return nil, err
			}
			blocks = append(blocks, &DocSection{
				ID:     FoldID(block.ID),
				Title:  block.Title,
				Blocks: children,
			})
		default:
			return nil, fmt.Errorf("unknown doc block type %q", block.Type)
		}
	}
	return blocks, nil
}
