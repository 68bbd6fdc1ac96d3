package style

import "testing"

func TestDiffDocsStructured(t *testing.T) {
	prior := Parse(`{"overallAesthetic":"ink wash","lighting":{"style":"soft","effects":["bloom"]}}`)
	suggested := Parse(`{"overallAesthetic":"ink wash","lighting":{"style":"hard rim","effects":["bloom","glow"]}}`)

	changes := DiffDocs(prior, suggested)
	if len(changes) != 14 {
		t.Fatalf("DiffDocs() returned %d entries, want 14", len(changes))
	}
	if changes[0].Path != "overallAesthetic" || changes[0].Kind != Unchanged {
		t.Fatalf("changes[0] = %+v", changes[0])
	}
	byPath := make(map[string]FieldChange, len(changes))
	for _, c := range changes {
		byPath[c.Path] = c
	}
	if c := byPath["lighting.style"]; c.Kind != Changed || c.Before != "soft" || c.After != "hard rim" {
		t.Fatalf("lighting.style = %+v", c)
	}
	if c := byPath["lighting.effects"]; c.Kind != Changed || c.After != "bloom, glow" {
		t.Fatalf("lighting.effects = %+v", c)
	}
}

func TestDiffDocsRawAgainstStructured(t *testing.T) {
	prior := Parse("soft watercolor")
	suggested := Parse(`{"overallAesthetic":"watercolor"}`)

	changes := DiffDocs(prior, suggested)
	last := changes[len(changes)-1]
	if last.Path != rawPath || last.Kind != Removed || last.Before != "soft watercolor" {
		t.Fatalf("last change = %+v", last)
	}
	if changes[0].Kind != Added || changes[0].After != "watercolor" {
		t.Fatalf("first change = %+v", changes[0])
	}
}
