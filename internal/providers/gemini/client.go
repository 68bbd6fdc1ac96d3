// Package gemini adapts the Gemini and Imagen APIs to the provider contracts
// in internal/providers/image.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"styledna/internal/domain"
	"styledna/internal/infra"
	"styledna/internal/providers/image"
)

const (
	DefaultAnalysisModel = "gemini-2.5-flash"
	DefaultImageModel    = "gemini-2.5-flash-image"
	DefaultImagenModel   = "imagen-4.0-generate-001"
)

// ErrMalformedResponse marks an upstream answer that does not follow the
// requested shape.
var ErrMalformedResponse = errors.New("gemini: malformed response")

// Options controls how the client is configured.
type Options struct {
	APIKey        string
	BaseURL       string
	AnalysisModel string
	ImageModel    string
	ImagenModel   string
	HTTPClient    *http.Client
	Logger        *infra.Logger
}

// Client implements image.Provider on top of the genai SDK.
type Client struct {
	models        *genai.Models
	analysisModel string
	imageModel    string
	imagenModel   string
	logger        *infra.Logger
}

var _ image.Provider = (*Client)(nil)

// NewClient constructs a client with defaults for every empty option.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("gemini: api key is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		// Generation calls carry no timeout of their own; this bounds a hung transport.
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base + "/"}
	}
	sdk, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}

	return &Client{
		models:        sdk.Models,
		analysisModel: coalesce(opts.AnalysisModel, DefaultAnalysisModel),
		imageModel:    coalesce(opts.ImageModel, DefaultImageModel),
		imagenModel:   coalesce(opts.ImagenModel, DefaultImagenModel),
		logger:        logger,
	}, nil
}

func (c *Client) generate(ctx context.Context, model string, parts []*genai.Part, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}
	resp, err := c.models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", domain.ErrProviderFailure, model, err)
	}
	return resp, nil
}

func imagePart(asset domain.ImageAsset) (*genai.Part, error) {
	data, err := asset.Bytes()
	if err != nil {
		return nil, domain.Invalid("image", err.Error())
	}
	return genai.NewPartFromBytes(data, asset.MIMEType), nil
}

func appendImages(parts []*genai.Part, assets []domain.ImageAsset) ([]*genai.Part, error) {
	for _, asset := range assets {
		p, err := imagePart(asset)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	return parts, nil
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}
