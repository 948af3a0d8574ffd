// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render walks the canonical document and emits HTML, converting
// inline markdown and grouping consecutive list items into list blocks.
// Pure and deterministic: the same document always yields byte-identical
// output. Implements: prd003-rendering (R1-R4);
// docs/ARCHITECTURE § Rendering.
package render

import (
	"regexp"
	"strings"

	"github.com/pdiddy/pageforge/pkg/types"
)

// bulletRe strips a leading bullet glyph and trailing whitespace from a
// converted list item. The bullet is structural, conveyed by the <ul>
// container, never literal text. Per prd003-rendering R3.3.
var bulletRe = regexp.MustCompile(`^\s*•\s*`)

// HTML renders the canonical document to an HTML string. For each
// section in order: a non-empty heading becomes a bold paragraph (not a
// semantic heading element, so the consumer controls visual weight),
// consecutive "li" items group into one <ul> per run, and any other item
// type flushes the open list and emits a standalone <p>. Blocks are
// joined by newlines.
//
// A document whose Sections slice is nil never passed through the
// normalizer; it renders as a literal error paragraph instead of failing.
func HTML(doc types.Document) string {
	if doc.Sections == nil {
		return "<p>Error processing data</p>"
	}

	var blocks []string

	for _, sec := range doc.Sections {
		if heading := Inline(sec.Heading); heading != "" {
			blocks = append(blocks, "<p><strong>"+heading+"</strong></p>")
		}

		var pending []string

		flush := func() {
			if len(pending) == 0 {
				return
			}
			blocks = append(blocks, "<ul>")
			blocks = append(blocks, pending...)
			blocks = append(blocks, "</ul>")
			pending = nil
		}

		for _, item := range sec.Items {
			text := Inline(item.Text)

			if item.Type == types.ItemListEntry {
				cleaned := strings.TrimSpace(bulletRe.ReplaceAllString(text, ""))
				pending = append(pending, "<li>"+cleaned+"</li>")
				continue
			}

			// Paragraph content never nests inside a list.
			flush()
			blocks = append(blocks, "<p>"+text+"</p>")
		}

		flush()
	}

	return strings.Join(blocks, "\n")
}
