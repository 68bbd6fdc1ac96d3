package style

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// rawPath is the single key a Raw document flattens to.
const rawPath = "(raw)"

type ChangeKind string

const (
	Unchanged ChangeKind = "unchanged"
	Added     ChangeKind = "added"
	Removed   ChangeKind = "removed"
	Changed   ChangeKind = "changed"
)

// FieldChange describes one leaf of a suggested style document compared with
// the prior one.
type FieldChange struct {
	Path   string     `json:"path"`
	Before string     `json:"before,omitempty"`
	After  string     `json:"after,omitempty"`
	Kind   ChangeKind `json:"kind"`
}

// Flatten maps every leaf of doc to a display string, in schema order. Array
// leaves are joined with ", ".
func Flatten(doc Doc) *orderedmap.OrderedMap[string, string] {
	out := orderedmap.New[string, string]()
	switch d := doc.(type) {
	case Structured:
		desc := d.Description
		out.Set("overallAesthetic", desc.OverallAesthetic)
		out.Set("colorPalette.dominantColors", strings.Join(desc.ColorPalette.DominantColors, ", "))
		out.Set("colorPalette.accentColors", strings.Join(desc.ColorPalette.AccentColors, ", "))
		out.Set("colorPalette.usageDescription", desc.ColorPalette.UsageDescription)
		out.Set("colorPalette.colorWeight", desc.ColorPalette.ColorWeight)
		out.Set("materialAndTexture.material", desc.MaterialAndTexture.Material)
		out.Set("materialAndTexture.surfaceTexture", desc.MaterialAndTexture.SurfaceTexture)
		out.Set("materialAndTexture.brushwork", desc.MaterialAndTexture.Brushwork)
		out.Set("lighting.style", desc.Lighting.Style)
		out.Set("lighting.effects", strings.Join(desc.Lighting.Effects, ", "))
		out.Set("composition.shapeLanguage", desc.Composition.ShapeLanguage)
		out.Set("composition.depthAndPerspective", desc.Composition.DepthAndPerspective)
		out.Set("composition.complexity", desc.Composition.Complexity)
		out.Set("postProcessingEffects", strings.Join(desc.PostProcessingEffects, ", "))
	case Raw:
		out.Set(rawPath, d.Value)
	}
	return out
}

// DiffDocs compares a suggested document against the prior one as a whole
// replacement. Entries follow the suggested document's order, then any
// leaves only the prior document had.
func DiffDocs(prior, suggested Doc) []FieldChange {
	before := Flatten(prior)
	after := Flatten(suggested)
	changes := make([]FieldChange, 0, after.Len())
	for pair := after.Oldest(); pair != nil; pair = pair.Next() {
		old, ok := before.Get(pair.Key)
		switch {
		case !ok:
			changes = append(changes, FieldChange{Path: pair.Key, After: pair.Value, Kind: Added})
		case old == pair.Value:
			changes = append(changes, FieldChange{Path: pair.Key, Before: old, After: pair.Value, Kind: Unchanged})
		default:
			changes = append(changes, FieldChange{Path: pair.Key, Before: old, After: pair.Value, Kind: Changed})
		}
	}
	for pair := before.Oldest(); pair != nil; pair = pair.Next() {
		if _, ok := after.Get(pair.Key); !ok {
			changes = append(changes, FieldChange{Path: pair.Key, Before: pair.Value, Kind: Removed})
		}
	}
	return changes
}
