// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"html"
	"regexp"
)

// Inline substitution patterns. Precedence matters: bold+italic must be
// matched before bold before italic, else a ***x*** run would be split
// into a bold pair plus a stray italic marker. All three are non-greedy.
var (
	boldItalicRe = regexp.MustCompile(`\*\*\*(.+?)\*\*\*`)
	boldRe       = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe     = regexp.MustCompile(`\*(.+?)\*`)
)

// Inline converts the inline markdown markers the vision model emits
// (***bold+italic***, **bold**, *italic*) into HTML. It never invents
// formatting: only those three forms are recognized, and unmatched
// asterisks stay as literal text. The input is HTML-escaped before any
// substitution so the original text cannot inject markup while the
// substituted tags survive. Per prd003-rendering R2.1-R2.4.
func Inline(text string) string {
	if text == "" {
		return ""
	}

	s := html.EscapeString(text)

	s = boldItalicRe.ReplaceAllString(s, "<strong><em>$1</em></strong>")
	s = boldRe.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicRe.ReplaceAllString(s, "<em>$1</em>")

	return s
}
