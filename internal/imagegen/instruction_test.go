package imagegen

import (
	"strings"
	"testing"

	"styledna/internal/domain"
)

var styleImage = domain.ImageAsset{Name: "ref.png", Base64: "AAAA", MIMEType: "image/png"}

func baseState() domain.InputState {
	s := domain.DefaultInputState()
	s.UseStyleGuidance = false
	return s
}

func kinds(sections []Section) []SectionKind {
	out := make([]SectionKind, 0, len(sections))
	for _, s := range sections {
		out = append(out, s.Kind)
	}
	return out
}

func TestReferencePromptSubjectOnly(t *testing.T) {
	s := baseState()
	s.SubjectPrompt = "a red fox"

	got := BuildReferencePrompt(s)
	want := "**Task**: Generate a new, high-quality image with a 1:1 aspect ratio.\n\n" +
		"**Subject**: Create an image of \"a red fox\"."
	if got != want {
		t.Fatalf("BuildReferencePrompt() = %q, want %q", got, want)
	}
}

func TestReferenceSectionsOrder(t *testing.T) {
	s := domain.DefaultInputState()
	s.SubjectPrompt = "a red fox"
	s.AspectRatio = domain.AspectWideLandscape
	s.RemoveBackground = true
	s.SubjectReferenceImages = []domain.ImageAsset{styleImage}
	s.Composition = domain.CompositionFromImage(styleImage)
	s.UploadedImages = []domain.ImageAsset{styleImage}
	s.StyleDescription = `{"overallAesthetic":"ink wash"}`

	got := kinds(ReferenceSections(s))
	want := []SectionKind{
		SectionTask, SectionSubject, SectionBackground, SectionSubjectReference,
		SectionComposition, SectionStyleMandate, SectionStyleDNA, SectionExecution, SectionClosing,
	}
	if strings.Join(toStrings(got), ",") != strings.Join(toStrings(want), ",") {
		t.Fatalf("section order = %v, want %v", got, want)
	}
	prompt := BuildReferencePrompt(s)
	if !strings.Contains(prompt, "with a 16:9 aspect ratio") {
		t.Fatalf("prompt missing aspect ratio: %s", prompt)
	}
	if !strings.Contains(prompt, "**Style DNA Analysis (from reference images)**: \n{\"overallAesthetic\":\"ink wash\"}") {
		t.Fatalf("prompt missing verbatim style DNA: %s", prompt)
	}
	if !strings.HasPrefix(ReferenceSections(s)[5].Text, "**CRITICAL STYLE MANDATE**") {
		t.Fatalf("expected critical style mandate when analysis is enabled")
	}
}

func toStrings(k []SectionKind) []string {
	out := make([]string, len(k))
	for i, v := range k {
		out[i] = string(v)
	}
	return out
}

func TestReferencePromptStyleWithoutAnalysis(t *testing.T) {
	s := baseState()
	s.SubjectPrompt = "a lighthouse"
	s.UploadedImages = []domain.ImageAsset{styleImage}
	s.UseAIStyleAnalysis = false
	s.StyleDescription = "ignored when analysis is off"

	got := kinds(ReferenceSections(s))
	if len(got) != 4 || got[2] != SectionStyleMandate || got[3] != SectionClosing {
		t.Fatalf("sections = %v", got)
	}
	prompt := BuildReferencePrompt(s)
	if !strings.Contains(prompt, "**STYLE MANDATE**") || strings.Contains(prompt, "CRITICAL") {
		t.Fatalf("unexpected style mandate wording: %s", prompt)
	}
	if strings.Contains(prompt, "ignored when analysis is off") {
		t.Fatalf("style description leaked while analysis disabled")
	}
}

func TestSubjectInstructionCases(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		refs    int
		want    string
	}{
		{"both", "a cat", 1, "**Subject**: Create an image of \"a cat\", using the provided subject reference images as a strong visual guide for the subject's appearance and characteristics."},
		{"images only", "", 2, "**Subject**: Create a new image based on the provided subject reference images."},
		{"prompt only", "a cat", 0, "**Subject**: Create an image of \"a cat\"."},
		{"neither", "", 0, "**Subject**: Create a new image based on the composition reference."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseState()
			s.SubjectPrompt = tt.subject
			for i := 0; i < tt.refs; i++ {
				s.SubjectReferenceImages = append(s.SubjectReferenceImages, styleImage)
			}
			if got := subjectInstruction(s); got != tt.want {
				t.Fatalf("subjectInstruction() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeywordsRemoveBackground(t *testing.T) {
	s := domain.DefaultInputState()
	s.SupportivePrompt = "cinematic"
	s.RemoveBackground = true

	positive, negative := Keywords(s)
	if !strings.HasSuffix(positive, ", "+TransparentKeywords) {
		t.Fatalf("positive = %q", positive)
	}
	if !strings.HasPrefix(positive, "cinematic, "+QualityKeywords) {
		t.Fatalf("positive = %q", positive)
	}
	if negative != BackgroundExclusions {
		t.Fatalf("negative = %q, want %q", negative, BackgroundExclusions)
	}

	s.NegativePrompt = "blurry"
	_, negative = Keywords(s)
	if negative != "blurry, "+BackgroundExclusions {
		t.Fatalf("negative = %q", negative)
	}
}

func TestExecutionSectionOmitsEmptyNegative(t *testing.T) {
	s := domain.DefaultInputState()
	s.SubjectPrompt = "a red fox"
	sections := ReferenceSections(s)
	last := sections[len(sections)-1]
	want := "**Execution Instructions**:\n- Positive Keywords (Enhance these qualities): " + QualityKeywords
	if last.Kind != SectionExecution || last.Text != want {
		t.Fatalf("execution section = %+v", last)
	}
}

func TestCompositionPresetMandate(t *testing.T) {
	s := baseState()
	s.Composition = domain.CompositionFromPreset("Top-down view")

	prompt := BuildReferencePrompt(s)
	if !strings.Contains(prompt, `**COMPOSITION MANDATE**: The new image MUST be rendered from a "Top-down view" perspective.`) {
		t.Fatalf("missing preset mandate: %s", prompt)
	}
	if strings.Contains(prompt, "**COMPOSITION REFERENCE**") {
		t.Fatalf("image composition mandate emitted for a preset: %s", prompt)
	}
}

func TestBuildDispatchesOnModel(t *testing.T) {
	s := baseState()
	s.SubjectPrompt = "a red fox"
	s.Model = domain.ModelImagen
	if got := Build(s); got != "a red fox" {
		t.Fatalf("Build(imagen) = %q", got)
	}
}
