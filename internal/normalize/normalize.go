// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize coerces parsed vision-model JSON into the canonical
// sections document. Model completions legally return either the nested
// canonical shape or a flat list of items; normalizing at this boundary
// keeps the renderer shape-agnostic. Implements: prd002-normalization
// (R1, R2); docs/ARCHITECTURE § Normalization.
package normalize

import (
	"encoding/json"

	"github.com/pdiddy/pageforge/pkg/types"
)

// Normalize converts a parsed JSON value into a canonical Document. It is
// total: unrecognized shapes degrade to the empty document rather than
// failing, since partial or garbled structure should still produce
// renderable output (R2.4). Cases, checked in order:
//
//  1. Object with a "sections" key: already canonical. For every item
//     lacking "text" but carrying "content", content is copied into text.
//     All other fields pass through unchanged.
//  2. Array: a flat list of item-like objects. A leading h1/h2/h3 item
//     is promoted to the wrapping section's heading.
//  3. Anything else: empty document.
func Normalize(raw json.RawMessage) types.Document {
	if doc, ok := normalizeObject(raw); ok {
		return doc
	}
	if doc, ok := normalizeArray(raw); ok {
		return doc
	}
	return types.Document{Sections: []types.Section{}}
}

// canonicalItem shadows types.Item for the canonical-object decode. Text
// is a pointer so an absent or null "text" field is distinguishable from
// an explicit empty string: only the former takes the content fallback.
type canonicalItem struct {
	Text    *string        `json:"text"`
	Content string         `json:"content"`
	Type    types.ItemType `json:"type"`
}

// canonicalSection shadows types.Section for the canonical-object decode.
type canonicalSection struct {
	Heading string          `json:"heading"`
	Type    types.ItemType  `json:"type"`
	Items   []canonicalItem `json:"items"`
}

// normalizeObject handles the already-canonical shape (R1.1). The key
// probe uses a raw map so an object without "sections" falls through to
// the empty-document case instead of masquerading as an empty canonical
// document.
func normalizeObject(raw json.RawMessage) (types.Document, bool) {
	if firstByte(raw) != '{' {
		return types.Document{}, false
	}
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return types.Document{}, false
	}
	secRaw, ok := probe["sections"]
	if !ok {
		return types.Document{}, false
	}

	var decoded []canonicalSection
	if err := json.Unmarshal(secRaw, &decoded); err != nil {
		return types.Document{}, false
	}

	sections := make([]types.Section, 0, len(decoded))
	for _, sec := range decoded {
		items := make([]types.Item, 0, len(sec.Items))
		for _, it := range sec.Items {
			text := it.Content
			if it.Text != nil {
				text = *it.Text
			}
			// Content passes through unchanged alongside the copy.
			items = append(items, types.Item{Text: text, Content: it.Content, Type: it.Type})
		}
		sections = append(sections, types.Section{Heading: sec.Heading, Type: sec.Type, Items: items})
	}
	return types.Document{Sections: sections}, true
}

// normalizeArray handles the flat-list shape (R1.2): each mapping element
// becomes an item with text drawn from "text" then "content" then empty,
// and type defaulting to "p". Non-mapping elements are skipped. A leading
// heading-typed item becomes the section heading.
func normalizeArray(raw json.RawMessage) (types.Document, bool) {
	if firstByte(raw) != '[' {
		return types.Document{}, false
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return types.Document{}, false
	}

	items := make([]types.Item, 0, len(elems))
	for _, e := range elems {
		if firstByte(e) != '{' {
			continue
		}
		var it types.Item
		if err := json.Unmarshal(e, &it); err != nil {
			continue
		}
		text := it.Text
		if text == "" {
			text = it.Content
		}
		typ := it.Type
		if typ == "" {
			typ = types.ItemParagraph
		}
		items = append(items, types.Item{Text: text, Type: typ})
	}

	heading := ""
	if len(items) > 0 && items[0].Type.IsHeading() {
		heading = items[0].Text
		items = items[1:]
	}

	return types.Document{Sections: []types.Section{{
		Heading: heading,
		Type:    types.ItemHeading2,
		Items:   items,
	}}}, true
}

// firstByte returns the first non-whitespace byte of raw, or 0.
func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
