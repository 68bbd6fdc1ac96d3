package image

import (
	"context"

	"styledna/internal/domain"
)

// Asset is one image returned by a provider.
type Asset struct {
	Data     []byte
	MIMEType string
}

// AnalyzeRequest asks for a Style DNA description. TextHint is required when
// Images is empty.
type AnalyzeRequest struct {
	Images    []domain.ImageAsset
	TextHint  string
	RequestID string
}

// ReferenceRequest conditions one generation call on style, subject, and
// composition reference images.
type ReferenceRequest struct {
	Prompt           string
	StyleImages      []domain.ImageAsset
	SubjectImages    []domain.ImageAsset
	CompositionImage *domain.ImageAsset
	RequestID        string
}

// TextToImageRequest asks for Count images from text alone.
type TextToImageRequest struct {
	Prompt      string
	Count       int
	AspectRatio domain.AspectRatio
	RequestID   string
}

// CritiqueRequest compares one generated image with the style references.
type CritiqueRequest struct {
	StyleImages     []domain.ImageAsset
	Generated       domain.ImageAsset
	CurrentStyle    string
	CurrentPositive string
	CurrentNegative string
	RequestID       string
}

// EditRequest regenerates the painted region of Mask within Source. Prompt is
// the complete edit directive.
type EditRequest struct {
	Prompt    string
	Source    domain.ImageAsset
	Mask      domain.ImageAsset
	RequestID string
}

// StyleAnalyzer returns pretty-printed Style DNA JSON, or raw text when the
// upstream answer is not JSON.
type StyleAnalyzer interface {
	AnalyzeStyle(ctx context.Context, req AnalyzeRequest) (string, error)
}

// ReferenceGenerator performs a single call that yields at most one image.
// A call that yields none returns an error wrapping domain.ErrNoImages or
// domain.ErrBlocked.
type ReferenceGenerator interface {
	GenerateWithReferences(ctx context.Context, req ReferenceRequest) (Asset, error)
}

// TextToImageGenerator requests all images in one call.
type TextToImageGenerator interface {
	GenerateFromText(ctx context.Context, req TextToImageRequest) ([]Asset, error)
}

// Critic proposes corrections to the style description and keyword strings.
type Critic interface {
	Critique(ctx context.Context, req CritiqueRequest) (domain.SuggestionSet, error)
}

// MaskEditor edits the masked region of an image and leaves the rest intact.
type MaskEditor interface {
	EditMasked(ctx context.Context, req EditRequest) (Asset, error)
}

// Provider bundles every collaborator the studio depends on.
type Provider interface {
	StyleAnalyzer
	ReferenceGenerator
	TextToImageGenerator
	Critic
	MaskEditor
}
