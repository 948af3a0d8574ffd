package normalize

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/pdiddy/pageforge/pkg/types"
)

func TestNormalizeCanonicalObject(t *testing.T) {
	raw := json.RawMessage(`{
		"sections": [
			{
				"heading": "**Before Class**",
				"type": "h2",
				"items": [
					{"text": "Prepare the flashcards.", "type": "p"},
					{"content": "Queue the *Hello* song.", "type": "li"}
				]
			}
		]
	}`)

	doc := Normalize(raw)

	want := types.Document{Sections: []types.Section{{
		Heading: "**Before Class**",
		Type:    types.ItemHeading2,
		Items: []types.Item{
			{Text: "Prepare the flashcards.", Type: types.ItemParagraph},
			{Text: "Queue the *Hello* song.", Content: "Queue the *Hello* song.", Type: types.ItemListEntry},
		},
	}}}
	if !reflect.DeepEqual(doc, want) {
		t.Errorf("Normalize() = %+v, want %+v", doc, want)
	}
}

func TestNormalizeCanonicalContentFallback(t *testing.T) {
	// The content fallback applies only when the text field is absent or
	// null. An explicit empty text stays empty.
	tests := []struct {
		name     string
		item     string
		wantText string
	}{
		{name: "text absent", item: `{"content":"X"}`, wantText: "X"},
		{name: "text null", item: `{"text":null,"content":"X"}`, wantText: "X"},
		{name: "text empty string", item: `{"text":"","content":"X"}`, wantText: ""},
		{name: "text set", item: `{"text":"Y","content":"X"}`, wantText: "Y"},
		{name: "both absent", item: `{"type":"p"}`, wantText: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := json.RawMessage(`{"sections":[{"items":[` + tt.item + `]}]}`)
			doc := Normalize(raw)
			if len(doc.Sections) != 1 || len(doc.Sections[0].Items) != 1 {
				t.Fatalf("Normalize(%s) = %+v, want one section with one item", raw, doc)
			}
			if got := doc.Sections[0].Items[0].Text; got != tt.wantText {
				t.Errorf("item text = %q, want %q", got, tt.wantText)
			}
		})
	}
}

func TestNormalizeCanonicalPreservesContentField(t *testing.T) {
	raw := json.RawMessage(`{"sections":[{"items":[{"text":"kept","content":"also kept"}]}]}`)
	doc := Normalize(raw)
	it := doc.Sections[0].Items[0]
	if it.Text != "kept" || it.Content != "also kept" {
		t.Errorf("item = %+v, want content field passed through unchanged", it)
	}
}

func TestNormalizeCanonicalPassthrough(t *testing.T) {
	// Missing optional fields keep their absence; the renderer supplies
	// defaults. Nothing is invented here.
	raw := json.RawMessage(`{"sections": [{"items": [{"text": "plain"}]}]}`)

	doc := Normalize(raw)

	if len(doc.Sections) != 1 {
		t.Fatalf("got %d sections, want 1", len(doc.Sections))
	}
	sec := doc.Sections[0]
	if sec.Heading != "" || sec.Type != "" {
		t.Errorf("heading/type = %q/%q, want empty passthrough", sec.Heading, sec.Type)
	}
	if len(sec.Items) != 1 || sec.Items[0].Type != "" {
		t.Errorf("items = %+v, want one item with absent type", sec.Items)
	}
}

func TestNormalizeArray(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want types.Document
	}{
		{
			name: "leading heading promoted",
			raw:  `[{"type":"h2","text":"Title"},{"text":"body"}]`,
			want: types.Document{Sections: []types.Section{{
				Heading: "Title",
				Type:    types.ItemHeading2,
				Items:   []types.Item{{Text: "body", Type: types.ItemParagraph}},
			}}},
		},
		{
			name: "h3 also promoted",
			raw:  `[{"type":"h3","text":"Sub"},{"type":"li","text":"entry"}]`,
			want: types.Document{Sections: []types.Section{{
				Heading: "Sub",
				Type:    types.ItemHeading2,
				Items:   []types.Item{{Text: "entry", Type: types.ItemListEntry}},
			}}},
		},
		{
			name: "no leading heading",
			raw:  `[{"text":"a"},{"type":"h2","text":"late heading"}]`,
			want: types.Document{Sections: []types.Section{{
				Heading: "",
				Type:    types.ItemHeading2,
				Items: []types.Item{
					{Text: "a", Type: types.ItemParagraph},
					{Text: "late heading", Type: types.ItemHeading2},
				},
			}}},
		},
		{
			name: "content fallback and non-mapping elements skipped",
			raw:  `["stray", 42, null, {"content":"from content"}, {"no_text":true}]`,
			want: types.Document{Sections: []types.Section{{
				Heading: "",
				Type:    types.ItemHeading2,
				Items: []types.Item{
					{Text: "from content", Type: types.ItemParagraph},
					{Text: "", Type: types.ItemParagraph},
				},
			}}},
		},
		{
			name: "empty array yields one empty section",
			raw:  `[]`,
			want: types.Document{Sections: []types.Section{{
				Heading: "",
				Type:    types.ItemHeading2,
				Items:   []types.Item{},
			}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(json.RawMessage(tt.raw))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Normalize(%s) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeUnrecognizedShapes(t *testing.T) {
	for _, raw := range []string{`null`, `42`, `"hello"`, `true`, `{"items":[]}`, `{}`} {
		t.Run(raw, func(t *testing.T) {
			doc := Normalize(json.RawMessage(raw))
			if doc.Sections == nil {
				t.Fatal("Sections is nil, want empty non-nil slice")
			}
			if len(doc.Sections) != 0 {
				t.Errorf("Normalize(%s) = %+v, want empty document", raw, doc)
			}
		})
	}
}

func TestNormalizeNullSections(t *testing.T) {
	// "sections": null is canonical in shape but empty in content.
	doc := Normalize(json.RawMessage(`{"sections": null}`))
	if doc.Sections == nil || len(doc.Sections) != 0 {
		t.Errorf("Normalize = %+v, want empty non-nil sections", doc)
	}
}
