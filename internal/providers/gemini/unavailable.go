package gemini

import (
	"context"
	"errors"
	"fmt"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
)

// ErrMissingAPIKey is the reason reported when the service runs without
// credentials.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY environment variable not set")

// Unavailable is a provider whose every call fails with reason. It lets the
// service start and serve workspace edits before credentials are configured.
type Unavailable struct {
	reason error
}

var _ image.Provider = Unavailable{}

func NewUnavailable(reason error) Unavailable {
	if reason == nil {
		reason = ErrMissingAPIKey
	}
	return Unavailable{reason: reason}
}

func (u Unavailable) err() error {
	return fmt.Errorf("%w: %w", domain.ErrProviderFailure, u.reason)
}

func (u Unavailable) AnalyzeStyle(context.Context, image.AnalyzeRequest) (string, error) {
	return "", u.err()
}

func (u Unavailable) GenerateWithReferences(context.Context, image.ReferenceRequest) (image.Asset, error) {
	return image.Asset{}, u.err()
}

func (u Unavailable) GenerateFromText(context.Context, image.TextToImageRequest) ([]image.Asset, error) {
	return nil, u.err()
}

func (u Unavailable) Critique(context.Context, image.CritiqueRequest) (domain.SuggestionSet, error) {
	return domain.SuggestionSet{}, u.err()
}

func (u Unavailable) EditMasked(context.Context, image.EditRequest) (image.Asset, error) {
	return image.Asset{}, u.err()
}
