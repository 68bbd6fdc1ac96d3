package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
)

type suggestionPayload struct {
	StyleDescription *string `json:"suggestedStyleDescription"`
	PositivePrompt   *string `json:"suggestedPositivePrompt"`
	NegativePrompt   *string `json:"suggestedNegativePrompt"`
}

// Critique compares a generated image against the style references and
// proposes corrected inputs.
func (c *Client) Critique(ctx context.Context, req image.CritiqueRequest) (domain.SuggestionSet, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(fmt.Sprintf(critiqueContextPattern, suggestionPrompt, req.CurrentStyle, req.CurrentPositive, req.CurrentNegative)),
		genai.NewPartFromText(referenceImagesStart),
	}
	var err error
	if parts, err = appendImages(parts, req.StyleImages); err != nil {
		return domain.SuggestionSet{}, err
	}
	generated, err := imagePart(req.Generated)
	if err != nil {
		return domain.SuggestionSet{}, err
	}
	parts = append(parts,
		genai.NewPartFromText(referenceImagesEnd),
		genai.NewPartFromText(generatedImageStart),
		generated,
		genai.NewPartFromText(generatedImageEnd),
	)

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.analysisModel).
		Int("reference_images", len(req.StyleImages)).
		Msg("gemini: critique generation")

	resp, err := c.generate(ctx, c.analysisModel, parts, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		return domain.SuggestionSet{}, err
	}
	return parseSuggestions(responseText(resp))
}

func parseSuggestions(raw string) (domain.SuggestionSet, error) {
	cleaned := extractJSONFragment(raw)
	if cleaned == "" {
		return domain.SuggestionSet{}, fmt.Errorf("%w: %w: empty critique", domain.ErrProviderFailure, ErrMalformedResponse)
	}
	var payload suggestionPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return domain.SuggestionSet{}, fmt.Errorf("%w: %w: %w", domain.ErrProviderFailure, ErrMalformedResponse, err)
	}
	if payload.StyleDescription == nil || payload.PositivePrompt == nil || payload.NegativePrompt == nil {
		return domain.SuggestionSet{}, fmt.Errorf("%w: %w: critique is missing a required field", domain.ErrProviderFailure, ErrMalformedResponse)
	}
	return domain.SuggestionSet{
		StyleDescription: *payload.StyleDescription,
		PositivePrompt:   *payload.PositivePrompt,
		NegativePrompt:   *payload.NegativePrompt,
	}, nil
}
