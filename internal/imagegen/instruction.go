// Package imagegen assembles the directive text sent to the image models.
// Every builder is a pure function of a domain.InputState.
package imagegen

import (
	"fmt"
	"strings"

	"styledna/internal/domain"
)

// QualityKeywords is always appended to the positive keywords.
const QualityKeywords = "masterpiece, 4k, high resolution, ultra-detailed, sharp focus"

const (
	// TransparentKeywords is appended to the positive keywords when the
	// background is removed.
	TransparentKeywords = "transparent background, isolated subject, no background, clean cutout, white background, plain background"

	// BackgroundExclusions is appended to the negative keywords when the
	// background is removed.
	BackgroundExclusions = "background, scenery, environment, context, indoor, outdoor, landscape, shadows, cast shadow, drop shadow, contact shadow, texture, pattern, gradient, noise, messy, complex, detailed background, wall, floor, ground, furniture, plants, objects"
)

const (
	backgroundMandate       = "**BACKGROUND MANDATE**: The subject MUST be isolated on a completely TRANSPARENT background. Do NOT generate any background elements, scenery, environment, context, or shadows. The background pixels must be empty/transparent. This is a strict requirement for a cutout asset."
	subjectReferenceMandate = "**SUBJECT REFERENCE**: Subject reference images are provided. Use them as the primary visual source for the subject of the new image. **CRITICAL**: The visual characteristics, features, and details of the subject in these reference images must be replicated with extreme fidelity. However, the overall ART STYLE (e.g., brushwork, lighting, color grading) of the subject reference(s) should be completely IGNORED and replaced with the art style defined by the main style references."
	compositionImageMandate = "**COMPOSITION REFERENCE**: A composition reference image is provided. Use its composition, layout, and subject placement as a strong guide for the new image. The STYLE of the composition reference image should be IGNORED."
	compositionViewMandate  = "**COMPOSITION MANDATE**: The new image MUST be rendered from a \"%s\" perspective. This is a strict compositional requirement."
	criticalStyleMandate    = "**CRITICAL STYLE MANDATE**: This is a command, not a suggestion. The artistic style of the new image must be a PERFECT, FLAWLESS REPLICATION of the style embodied by the provided reference images. The reference images are the absolute ground truth for the style. Style fidelity is the number one priority, overriding all other interpretations. The detailed style description below is your guide to achieving this perfection."
	styleMandate            = "**STYLE MANDATE**: The artistic style of the new image must be a PERFECT, FLAWLESS REPLICATION of the style embodied by the provided reference images. Style fidelity is the number one priority."
	styleDNAHeader          = "**Style DNA Analysis (from reference images)**: \n"
	closingReminder         = "Execute this task with extreme precision. The subject of the reference images must be completely ignored and replaced with the new subject, but the style must be preserved exactly."
)

// SectionKind identifies a directive section of the reference-guided prompt.
type SectionKind string

const (
	SectionTask             SectionKind = "task"
	SectionSubject          SectionKind = "subject"
	SectionBackground       SectionKind = "background"
	SectionSubjectReference SectionKind = "subject_reference"
	SectionComposition      SectionKind = "composition"
	SectionStyleMandate     SectionKind = "style_mandate"
	SectionStyleDNA         SectionKind = "style_dna"
	SectionExecution        SectionKind = "execution"
	SectionClosing          SectionKind = "closing"
)

type Section struct {
	Kind SectionKind `json:"kind"`
	Text string      `json:"text"`
}

// Keywords returns the positive and negative keyword strings after the
// quality suffix and background-removal additions.
func Keywords(s domain.InputState) (string, string) {
	positive := QualityKeywords
	if s.SupportivePrompt != "" {
		positive = s.SupportivePrompt + ", " + QualityKeywords
	}
	negative := s.NegativePrompt
	if s.RemoveBackground {
		positive += ", " + TransparentKeywords
		if negative != "" {
			negative += ", " + BackgroundExclusions
		} else {
			negative = BackgroundExclusions
		}
	}
	return positive, negative
}

func subjectInstruction(s domain.InputState) string {
	if len(s.SubjectReferenceImages) > 0 {
		if s.SubjectPrompt != "" {
			return fmt.Sprintf("**Subject**: Create an image of \"%s\", using the provided subject reference images as a strong visual guide for the subject's appearance and characteristics.", s.SubjectPrompt)
		}
		return "**Subject**: Create a new image based on the provided subject reference images."
	}
	if s.SubjectPrompt != "" {
		return fmt.Sprintf("**Subject**: Create an image of \"%s\".", s.SubjectPrompt)
	}
	return "**Subject**: Create a new image based on the composition reference."
}

// ReferenceSections lists the sections of the reference-guided prompt in
// their fixed order. Gated sections are omitted entirely.
func ReferenceSections(s domain.InputState) []Section {
	positive, negative := Keywords(s)
	hasStyleImages := len(s.UploadedImages) > 0

	sections := []Section{
		{Kind: SectionTask, Text: fmt.Sprintf("**Task**: Generate a new, high-quality image with a %s aspect ratio.", s.AspectRatio)},
		{Kind: SectionSubject, Text: subjectInstruction(s)},
	}
	if s.RemoveBackground {
		sections = append(sections, Section{Kind: SectionBackground, Text: backgroundMandate})
	}
	if len(s.SubjectReferenceImages) > 0 {
		sections = append(sections, Section{Kind: SectionSubjectReference, Text: subjectReferenceMandate})
	}
	if _, ok := s.Composition.Image(); ok {
		sections = append(sections, Section{Kind: SectionComposition, Text: compositionImageMandate})
	} else if view, ok := s.Composition.Preset(); ok {
		sections = append(sections, Section{Kind: SectionComposition, Text: fmt.Sprintf(compositionViewMandate, view)})
	}
	if hasStyleImages {
		if s.UseAIStyleAnalysis {
			sections = append(sections, Section{Kind: SectionStyleMandate, Text: criticalStyleMandate})
		} else {
			sections = append(sections, Section{Kind: SectionStyleMandate, Text: styleMandate})
		}
		if s.UseAIStyleAnalysis && s.StyleDescription != "" {
			sections = append(sections, Section{Kind: SectionStyleDNA, Text: styleDNAHeader + s.StyleDescription})
		}
	}
	if s.UseStyleGuidance {
		lines := []string{
			"**Execution Instructions**:",
			"- Positive Keywords (Enhance these qualities): " + positive,
		}
		if negative != "" {
			lines = append(lines, "- Negative Keywords (Strictly avoid these elements): "+negative)
		}
		sections = append(sections, Section{Kind: SectionExecution, Text: strings.Join(lines, "\n")})
	}
	if hasStyleImages {
		sections = append(sections, Section{Kind: SectionClosing, Text: closingReminder})
	}
	return sections
}

// BuildReferencePrompt joins the reference-guided sections with blank lines.
func BuildReferencePrompt(s domain.InputState) string {
	sections := ReferenceSections(s)
	parts := make([]string, 0, len(sections))
	for _, sec := range sections {
		parts = append(parts, sec.Text)
	}
	return strings.Join(parts, "\n\n")
}

// Build dispatches on the selected model.
func Build(s domain.InputState) string {
	if s.Model == domain.ModelImagen {
		return BuildTextToImagePrompt(s)
	}
	return BuildReferencePrompt(s)
}
