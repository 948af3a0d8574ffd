// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ItemType categorizes a formatted text unit within a section.
// Per prd002-normalization R1.1.
type ItemType string

const (
	ItemParagraph ItemType = "p"
	ItemListEntry ItemType = "li"
	ItemHeading1  ItemType = "h1"
	ItemHeading2  ItemType = "h2"
	ItemHeading3  ItemType = "h3"
)

// IsHeading reports whether the type is one of the heading tags.
func (t ItemType) IsHeading() bool {
	return t == ItemHeading1 || t == ItemHeading2 || t == ItemHeading3
}

// Item is one formatted text unit within a section: either a list entry
// or a standalone paragraph. Per prd002-normalization R1.1-R1.3.
type Item struct {
	// Text is the item content, possibly carrying inline markdown markers
	// (***bold+italic***, **bold**, *italic*) as reported by the vision model.
	Text string `json:"text" yaml:"text"`

	// Content is a compatibility alias some model completions use in
	// place of Text. The normalizer folds it into Text.
	Content string `json:"content,omitempty" yaml:"content,omitempty"`

	// Type controls rendering: "li" groups into a list block, anything
	// else emits a standalone paragraph. Defaults to "p" when absent.
	Type ItemType `json:"type" yaml:"type"`
}

// Section is a titled or untitled group of items, rendered as one
// heading block plus its items in order. Per prd002-normalization R2.1.
type Section struct {
	// Heading is the section title, possibly empty, possibly carrying
	// inline markdown markers. Rendered once per section.
	Heading string `json:"heading" yaml:"heading"`

	// Type is the heading level the model assigned (h2 by convention).
	Type ItemType `json:"type,omitempty" yaml:"type,omitempty"`

	// Items holds the section content in document reading order. Order
	// determines HTML emission order. Per R2.2.
	Items []Item `json:"items" yaml:"items"`
}

// Document is the canonical normalized shape all rendering assumes.
// A nil Sections slice marks a document that never passed through the
// normalizer; an empty non-nil slice is a valid empty document.
type Document struct {
	Sections []Section `json:"sections" yaml:"sections"`
}
