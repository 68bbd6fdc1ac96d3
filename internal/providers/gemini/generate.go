package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
)

// GenerateWithReferences performs one image call conditioned on the prompt and
// the grouped reference images.
func (c *Client) GenerateWithReferences(ctx context.Context, req image.ReferenceRequest) (image.Asset, error) {
	parts, err := referenceParts(req)
	if err != nil {
		return image.Asset{}, err
	}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.imageModel).
		Int("style_images", len(req.StyleImages)).
		Int("subject_images", len(req.SubjectImages)).
		Bool("composition_image", req.CompositionImage != nil).
		Msg("gemini: generate with references")

	resp, err := c.generate(ctx, c.imageModel, parts, &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage)},
	})
	if err != nil {
		return image.Asset{}, err
	}
	asset, err := firstInlineImage(resp)
	if err != nil {
		c.logger.Warn().Err(err).Str("request_id", req.RequestID).Msg("gemini: generation yielded no image")
		return image.Asset{}, err
	}
	return asset, nil
}

func referenceParts(req image.ReferenceRequest) ([]*genai.Part, error) {
	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	var err error
	if len(req.StyleImages) > 0 {
		parts = append(parts, genai.NewPartFromText(styleImagesStart))
		if parts, err = appendImages(parts, req.StyleImages); err != nil {
			return nil, err
		}
		parts = append(parts, genai.NewPartFromText(styleImagesEnd))
	}
	if len(req.SubjectImages) > 0 {
		parts = append(parts, genai.NewPartFromText(subjectImagesStart))
		if parts, err = appendImages(parts, req.SubjectImages); err != nil {
			return nil, err
		}
		parts = append(parts, genai.NewPartFromText(subjectImagesEnd))
	}
	if req.CompositionImage != nil && !req.CompositionImage.IsZero() {
		p, err := imagePart(*req.CompositionImage)
		if err != nil {
			return nil, err
		}
		parts = append(parts, genai.NewPartFromText(compositionImageStart), p, genai.NewPartFromText(compositionImageEnd))
	}
	return parts, nil
}

// GenerateFromText requests req.Count images from the text-to-image model in
// a single call.
func (c *Client) GenerateFromText(ctx context.Context, req image.TextToImageRequest) ([]image.Asset, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, domain.Invalid("prompt", "Prompt is required")
	}
	count := req.Count
	if count <= 0 {
		count = 1
	}
	aspect := req.AspectRatio
	if aspect == "" {
		aspect = domain.AspectSquare
	}

	c.logger.Debug().
		Str("request_id", req.RequestID).
		Str("model", c.imagenModel).
		Int("count", count).
		Str("aspect_ratio", string(aspect)).
		Msg("gemini: generate from text")

	resp, err := c.models.GenerateImages(ctx, c.imagenModel, prompt, &genai.GenerateImagesConfig{
		NumberOfImages:   int32(count),
		AspectRatio:      string(aspect),
		OutputMIMEType:   "image/jpeg",
		IncludeRAIReason: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrProviderFailure, c.imagenModel, err)
	}

	var (
		assets   []image.Asset
		filtered []string
	)
	if resp != nil {
		for _, gen := range resp.GeneratedImages {
			if gen == nil {
				continue
			}
			if gen.Image == nil || len(gen.Image.ImageBytes) == 0 {
				if gen.RAIFilteredReason != "" {
					filtered = append(filtered, gen.RAIFilteredReason)
				}
				continue
			}
			mimeType := gen.Image.MIMEType
			if mimeType == "" {
				mimeType = "image/jpeg"
			}
			assets = append(assets, image.Asset{Data: gen.Image.ImageBytes, MIMEType: mimeType})
		}
	}
	if len(assets) == 0 {
		if len(filtered) > 0 {
			return nil, fmt.Errorf("%w: %s", domain.ErrBlocked, strings.Join(filtered, "; "))
		}
		return nil, fmt.Errorf("%w: imagen returned no images, the prompt may have been blocked", domain.ErrNoImages)
	}
	return assets, nil
}
