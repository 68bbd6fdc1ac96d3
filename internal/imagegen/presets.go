package imagegen

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/cases"
)

// CompositionPresets are the named camera perspectives offered to users.
var CompositionPresets = []string{
	"Isometric",
	"Top-down view",
	"First-person view",
	"Low-angle shot",
	"High-angle shot",
	"Wide-angle shot",
	"Dutch angle",
	"Portrait",
	"Landscape",
}

const presetMaxDistance = 2

// CanonicalView maps view onto a preset when it matches case-insensitively or
// is within a small edit distance of one. Other views are kept as typed.
func CanonicalView(view string) string {
	view = strings.TrimSpace(view)
	if view == "" {
		return ""
	}
	fold := cases.Fold()
	folded := fold.String(view)

	best, bestDist := "", presetMaxDistance+1
	for _, preset := range CompositionPresets {
		p := fold.String(preset)
		if p == folded {
			return preset
		}
		if d := levenshtein.ComputeDistance(folded, p); d < bestDist {
			best, bestDist = preset, d
		}
	}
	if best != "" {
		return best
	}
	return view
}
