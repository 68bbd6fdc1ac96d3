package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
	"styledna/internal/style"
)

// AnalyzeStyle extracts a Style DNA document from reference images, or
// converts a free-form description when no images are supplied.
func (c *Client) AnalyzeStyle(ctx context.Context, req image.AnalyzeRequest) (string, error) {
	hint := strings.TrimSpace(req.TextHint)
	var parts []*genai.Part
	switch {
	case len(req.Images) > 0:
		parts = append(parts, genai.NewPartFromText(styleExtractionPrompt))
		if hint != "" {
			parts = append(parts, genai.NewPartFromText(fmt.Sprintf(analysisHintTemplate, hint)))
		}
		var err error
		if parts, err = appendImages(parts, req.Images); err != nil {
			return "", err
		}
	case hint != "":
		parts = append(parts, genai.NewPartFromText(textToStylePrompt), genai.NewPartFromText(hint))
	default:
		return "", domain.Invalid("images", "Either images or textDescription required")
	}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.analysisModel).
		Int("images", len(req.Images)).
		Bool("has_hint", hint != "").
		Msg("gemini: analyze style")

	resp, err := c.generate(ctx, c.analysisModel, parts, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   styleSchema,
	})
	if err != nil {
		return "", err
	}
	text := responseText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: empty style analysis", ErrMalformedResponse)
	}
	return style.Pretty(text), nil
}
