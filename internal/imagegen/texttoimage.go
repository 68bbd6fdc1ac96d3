package imagegen

import (
	"strings"

	"styledna/internal/domain"
	"styledna/internal/style"
)

// BuildTextToImagePrompt joins the subject and positive keywords with a comma
// and, when AI style analysis is on, appends a one-sentence style instruction.
func BuildTextToImagePrompt(s domain.InputState) string {
	var head []string
	for _, p := range []string{s.SubjectPrompt, s.SupportivePrompt} {
		if p != "" {
			head = append(head, p)
		}
	}
	prompt := strings.Join(head, ", ")
	if s.UseAIStyleAnalysis && s.StyleDescription != "" {
		prompt += ". " + StyleSentence(style.Parse(s.StyleDescription))
	}
	return prompt
}

// StyleSentence renders doc as a single instruction sentence. Structured
// documents contribute one clause per non-empty field; raw text is embedded
// verbatim behind a different preamble and without a closing period.
func StyleSentence(doc style.Doc) string {
	switch d := doc.(type) {
	case style.Structured:
		desc := d.Description
		var parts []string
		if desc.OverallAesthetic != "" {
			parts = append(parts, desc.OverallAesthetic)
		}
		if v := desc.MaterialAndTexture.SurfaceTexture; v != "" {
			parts = append(parts, "with a "+v+" texture")
		}
		if v := desc.Lighting.Style; v != "" {
			parts = append(parts, "using "+v+" lighting")
		}
		if v := desc.Composition.Complexity; v != "" {
			parts = append(parts, "in a "+v+" composition")
		}
		if v := desc.ColorPalette.UsageDescription; v != "" {
			parts = append(parts, "with a color palette that is "+v)
		}
		return "Render this in an artistic style described as: " + strings.Join(parts, ", ") + "."
	case style.Raw:
		return "Render this in the artistic style described as: " + d.Value
	default:
		return ""
	}
}
