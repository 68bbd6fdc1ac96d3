package style

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantStructured bool
	}{
		{name: "valid object", text: `{"overallAesthetic":"cel-shaded","lighting":{"style":"rim lighting"}}`, wantStructured: true},
		{name: "free text", text: "moody watercolor with soft edges"},
		{name: "broken json", text: `{"overallAesthetic": "cel-shaded"`},
		{name: "json array", text: `["cel-shaded"]`, wantStructured: true},
		{name: "mistyped field", text: `{"lighting":"soft"}`, wantStructured: true},
		{name: "json null", text: "null"},
		{name: "blank", text: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Parse(tt.text)
			_, structured := doc.(Structured)
			if structured != tt.wantStructured {
				t.Fatalf("Parse(%q) structured = %v, want %v", tt.text, structured, tt.wantStructured)
			}
			if doc.Text() != tt.text {
				t.Fatalf("Text() = %q, want %q", doc.Text(), tt.text)
			}
		})
	}
}

func TestParseKeepsFields(t *testing.T) {
	doc := Parse(`{"overallAesthetic":"cel-shaded","lighting":{"style":"rim lighting","effects":["bloom"]}}`)
	s, ok := doc.(Structured)
	if !ok {
		t.Fatalf("Parse() returned %T", doc)
	}
	if s.Description.OverallAesthetic != "cel-shaded" || s.Description.Lighting.Style != "rim lighting" {
		t.Fatalf("Description = %+v", s.Description)
	}
	if len(s.Description.Lighting.Effects) != 1 || s.Description.Lighting.Effects[0] != "bloom" {
		t.Fatalf("Lighting.Effects = %v", s.Description.Lighting.Effects)
	}
}

func TestParseReadsMistypedFieldsLeniently(t *testing.T) {
	doc := Parse(`{"overallAesthetic":5,"lighting":"soft","composition":{"complexity":["low",0]},"postProcessingEffects":"grain","colorPalette":{"colorWeight":false}}`)
	s, ok := doc.(Structured)
	if !ok {
		t.Fatalf("Parse() returned %T", doc)
	}
	d := s.Description
	if d.OverallAesthetic != "5" {
		t.Fatalf("OverallAesthetic = %q, want %q", d.OverallAesthetic, "5")
	}
	if d.Lighting.Style != "" {
		t.Fatalf("Lighting.Style = %q, want empty", d.Lighting.Style)
	}
	if d.Composition.Complexity != "low,0" {
		t.Fatalf("Composition.Complexity = %q, want %q", d.Composition.Complexity, "low,0")
	}
	if len(d.PostProcessingEffects) != 1 || d.PostProcessingEffects[0] != "grain" {
		t.Fatalf("PostProcessingEffects = %v", d.PostProcessingEffects)
	}
	if d.ColorPalette.ColorWeight != "" {
		t.Fatalf("ColorWeight = %q, want empty", d.ColorPalette.ColorWeight)
	}
}

func TestParseNonObjectIsEmptyDescription(t *testing.T) {
	doc := Parse(`["cel-shaded"]`)
	s, ok := doc.(Structured)
	if !ok {
		t.Fatalf("Parse() returned %T", doc)
	}
	if s.Description.OverallAesthetic != "" || len(s.Description.PostProcessingEffects) != 0 {
		t.Fatalf("Description = %+v, want zero", s.Description)
	}
}

func TestPretty(t *testing.T) {
	got := Pretty(` {"overallAesthetic":"ink","postProcessingEffects":[]} `)
	want := "{\n  \"overallAesthetic\": \"ink\",\n  \"postProcessingEffects\": []\n}"
	if got != want {
		t.Fatalf("Pretty() = %q, want %q", got, want)
	}
	if got := Pretty("  not json "); got != "not json" {
		t.Fatalf("Pretty(raw) = %q", got)
	}
}

func TestIsEmpty(t *testing.T) {
	if !IsEmpty(Parse("")) || !IsEmpty(nil) {
		t.Fatalf("IsEmpty() = false for blank document")
	}
	if IsEmpty(Parse(strings.Repeat(" ", 2))) {
		t.Fatalf("IsEmpty() = true for whitespace text")
	}
}
