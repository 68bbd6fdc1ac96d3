package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Model selects the generation path.
type Model string

const (
	ModelFlashImage Model = "gemini-2.5-flash-image"
	ModelImagen     Model = "imagen-4.0-generate-001"
)

// ParseModel accepts the model identifier or the short names "flash" and "imagen".
func ParseModel(v string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "flash", string(ModelFlashImage):
		return ModelFlashImage, nil
	case "imagen", string(ModelImagen):
		return ModelImagen, nil
	default:
		return "", Invalid("model", fmt.Sprintf("unsupported model %q", v))
	}
}

// AspectRatio is one of the ratios accepted by the generation service.
type AspectRatio string

const (
	AspectSquare        AspectRatio = "1:1"
	AspectPortrait      AspectRatio = "3:4"
	AspectLandscape     AspectRatio = "4:3"
	AspectTallPortrait  AspectRatio = "9:16"
	AspectWideLandscape AspectRatio = "16:9"
)

var aspectRatios = []AspectRatio{AspectSquare, AspectPortrait, AspectLandscape, AspectTallPortrait, AspectWideLandscape}

// ParseAspectRatio validates v against the supported set. Empty means 1:1.
func ParseAspectRatio(v string) (AspectRatio, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return AspectSquare, nil
	}
	for _, ar := range aspectRatios {
		if string(ar) == v {
			return ar, nil
		}
	}
	return "", Invalid("aspect_ratio", fmt.Sprintf("unsupported aspect ratio %q", v))
}

// CompositionKind tags the active variant of a CompositionReference.
type CompositionKind string

const (
	CompositionNone   CompositionKind = "none"
	CompositionImage  CompositionKind = "image"
	CompositionPreset CompositionKind = "preset"
)

// CompositionReference is either nothing, a layout image, or a named camera
// preset. The fields are unexported so only one variant can ever be set.
type CompositionReference struct {
	kind  CompositionKind
	image ImageAsset
	view  string
}

func NoComposition() CompositionReference {
	return CompositionReference{kind: CompositionNone}
}

func CompositionFromImage(img ImageAsset) CompositionReference {
	if img.IsZero() {
		return NoComposition()
	}
	return CompositionReference{kind: CompositionImage, image: img}
}

func CompositionFromPreset(view string) CompositionReference {
	view = strings.TrimSpace(view)
	if view == "" {
		return NoComposition()
	}
	return CompositionReference{kind: CompositionPreset, view: view}
}

func (c CompositionReference) Kind() CompositionKind {
	if c.kind == "" {
		return CompositionNone
	}
	return c.kind
}

func (c CompositionReference) Image() (ImageAsset, bool) {
	return c.image, c.kind == CompositionImage
}

func (c CompositionReference) Preset() (string, bool) {
	return c.view, c.kind == CompositionPreset
}

func (c CompositionReference) IsSet() bool {
	return c.Kind() != CompositionNone
}

type compositionJSON struct {
	Kind  CompositionKind `json:"kind"`
	Image *ImageAsset     `json:"image,omitempty"`
	View  string          `json:"view,omitempty"`
}

func (c CompositionReference) MarshalJSON() ([]byte, error) {
	out := compositionJSON{Kind: c.Kind()}
	switch c.Kind() {
	case CompositionImage:
		img := c.image
		out.Image = &img
	case CompositionPreset:
		out.View = c.view
	}
	return json.Marshal(out)
}

func (c *CompositionReference) UnmarshalJSON(data []byte) error {
	var in compositionJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	hasImage := in.Image != nil && !in.Image.IsZero()
	hasView := strings.TrimSpace(in.View) != ""
	if hasImage && hasView {
		return Invalid("composition", "image and view are mutually exclusive")
	}
	switch {
	case hasImage:
		*c = CompositionFromImage(*in.Image)
	case hasView:
		*c = CompositionFromPreset(in.View)
	default:
		*c = NoComposition()
	}
	return nil
}

// InputState is every user-controlled input that feeds a generation. It is
// treated as a value: the With* methods return modified copies and never
// share slices with the receiver.
type InputState struct {
	UploadedImages         []ImageAsset         `json:"uploaded_images"`
	FreeFormStyleText      string               `json:"free_form_style_text"`
	StyleDescription       string               `json:"style_description"`
	SubjectPrompt          string               `json:"subject_prompt"`
	SupportivePrompt       string               `json:"supportive_prompt"`
	NegativePrompt         string               `json:"negative_prompt"`
	AspectRatio            AspectRatio          `json:"aspect_ratio"`
	RemoveBackground       bool                 `json:"remove_background"`
	Composition            CompositionReference `json:"composition"`
	SubjectReferenceImages []ImageAsset         `json:"subject_reference_images"`
	Model                  Model                `json:"model"`
	UseAIStyleAnalysis     bool                 `json:"use_ai_style_analysis"`
	UseStyleGuidance       bool                 `json:"use_style_guidance"`
}

// DefaultInputState mirrors a fresh workspace.
func DefaultInputState() InputState {
	return InputState{
		AspectRatio:        AspectSquare,
		Composition:        NoComposition(),
		Model:              ModelFlashImage,
		UseAIStyleAnalysis: true,
		UseStyleGuidance:   true,
	}
}

// Clone returns a deep copy.
func (s InputState) Clone() InputState {
	s.UploadedImages = cloneAssets(s.UploadedImages)
	s.SubjectReferenceImages = cloneAssets(s.SubjectReferenceImages)
	return s
}

func (s InputState) WithImagesAdded(images ...ImageAsset) InputState {
	out := s.Clone()
	out.UploadedImages = append(out.UploadedImages, images...)
	return out
}

func (s InputState) WithoutImage(index int) (InputState, error) {
	if index < 0 || index >= len(s.UploadedImages) {
		return s, fmt.Errorf("uploaded image %d: %w", index, ErrNotFound)
	}
	out := s.Clone()
	out.UploadedImages = append(out.UploadedImages[:index], out.UploadedImages[index+1:]...)
	return out, nil
}

func (s InputState) WithComposition(ref CompositionReference) InputState {
	out := s.Clone()
	out.Composition = ref
	return out
}

func (s InputState) WithSubjectReferences(images []ImageAsset) InputState {
	out := s.Clone()
	out.SubjectReferenceImages = cloneAssets(images)
	return out
}

func (s InputState) WithoutSubjectReference(index int) (InputState, error) {
	if index < 0 || index >= len(s.SubjectReferenceImages) {
		return s, fmt.Errorf("subject reference %d: %w", index, ErrNotFound)
	}
	out := s.Clone()
	out.SubjectReferenceImages = append(out.SubjectReferenceImages[:index], out.SubjectReferenceImages[index+1:]...)
	return out, nil
}

// ValidateForGeneration applies the gates checked before any generation call.
func (s InputState) ValidateForGeneration() error {
	switch s.Model {
	case ModelFlashImage:
		if s.SubjectPrompt == "" && !s.Composition.IsSet() && len(s.SubjectReferenceImages) == 0 {
			return Invalid("subject_prompt", "Please enter a subject prompt or provide a composition or subject reference.")
		}
	case ModelImagen:
		if s.SubjectPrompt == "" {
			return Invalid("subject_prompt", "Please enter a subject prompt to generate an image.")
		}
		if s.UseAIStyleAnalysis && s.StyleDescription == "" && len(s.UploadedImages) > 0 {
			return Invalid("style_description", "Style description is not available. Please analyze style first.")
		}
	default:
		return Invalid("model", fmt.Sprintf("unsupported model %q", s.Model))
	}
	if _, err := ParseAspectRatio(string(s.AspectRatio)); err != nil {
		return err
	}
	return nil
}

// ValidateForAnalysis requires at least one style image or a text description.
func (s InputState) ValidateForAnalysis() error {
	if len(s.UploadedImages) == 0 && strings.TrimSpace(s.FreeFormStyleText) == "" {
		return Invalid("free_form_style_text", "Please upload images or enter a text description to analyze.")
	}
	return nil
}
