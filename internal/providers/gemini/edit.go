package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"styledna/internal/providers/image"
)

// EditMasked sends the directive, the source image, and the mask in that
// order and returns the first image of the answer.
func (c *Client) EditMasked(ctx context.Context, req image.EditRequest) (image.Asset, error) {
	source, err := imagePart(req.Source)
	if err != nil {
		return image.Asset{}, err
	}
	mask, err := imagePart(req.Mask)
	if err != nil {
		return image.Asset{}, err
	}
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt), source, mask}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.imageModel).
		Msg("gemini: edit masked region")

	resp, err := c.generate(ctx, c.imageModel, parts, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	})
	if err != nil {
		return image.Asset{}, err
	}
	asset, err := firstInlineImage(resp)
	if err != nil {
		return image.Asset{}, fmt.Errorf("edit: %w", err)
	}
	return asset, nil
}
