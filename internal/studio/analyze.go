package studio

import (
	"context"
	"fmt"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
)

// AnalyzeStyle derives a Style DNA description from the uploaded images and
// the free-form text, and stores it as the current style description.
func (s *Studio) AnalyzeStyle(ctx context.Context) (string, error) {
	snapshot := s.State()
	if err := snapshot.ValidateForAnalysis(); err != nil {
		return "", err
	}
	images, err := s.normalizer.NormalizeAll(ctx, snapshot.UploadedImages)
	if err != nil {
		return "", fmt.Errorf("normalize style images: %w: %w", domain.ErrInvalidInput, err)
	}
	description, err := s.provider.AnalyzeStyle(ctx, image.AnalyzeRequest{
		Images:    images,
		TextHint:  snapshot.FreeFormStyleText,
		RequestID: s.newID(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("studio: style analysis failed")
		return "", err
	}

	s.mu.Lock()
	s.state.StyleDescription = description
	s.mu.Unlock()
	s.logger.Info().Int("images", len(images)).Msg("studio: style analysis complete")
	return description, nil
}
