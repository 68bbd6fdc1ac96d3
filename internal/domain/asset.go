package domain

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ImageAsset is an image held in memory as base64 text. Assets are values:
// edits and normalization produce new instances.
type ImageAsset struct {
	Name     string `json:"name"`
	Base64   string `json:"base64"`
	MIMEType string `json:"mime_type"`
}

// NewImageAsset encodes raw bytes into an asset.
func NewImageAsset(name, mimeType string, data []byte) ImageAsset {
	return ImageAsset{
		Name:     name,
		Base64:   base64.StdEncoding.EncodeToString(data),
		MIMEType: mimeType,
	}
}

// Bytes decodes the asset payload.
func (a ImageAsset) Bytes() ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(a.Base64))
	if err != nil {
		return nil, fmt.Errorf("asset %q: decode base64: %w", a.Name, err)
	}
	return data, nil
}

// IsZero reports whether the asset carries no payload.
func (a ImageAsset) IsZero() bool {
	return strings.TrimSpace(a.Base64) == ""
}

// DataURI renders the asset as a data URI.
func (a ImageAsset) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + a.Base64
}

// ParseDataURI converts a `data:<mime>;base64,<payload>` URI into an asset.
// A header without a media type yields application/octet-stream.
func ParseDataURI(uri, name string) (ImageAsset, error) {
	header, payload, ok := strings.Cut(uri, ",")
	if !ok || header == "" || payload == "" || !strings.HasPrefix(header, "data:") {
		return ImageAsset{}, errors.New("invalid data url")
	}
	mimeType := "application/octet-stream"
	if mt, _, found := strings.Cut(strings.TrimPrefix(header, "data:"), ";"); found && mt != "" {
		mimeType = mt
	}
	return ImageAsset{Name: name, Base64: payload, MIMEType: mimeType}, nil
}

// JPEGDataURI wraps base64 JPEG bytes the way generated results are stored.
func JPEGDataURI(b64 string) string {
	return "data:image/jpeg;base64," + b64
}

func cloneAssets(in []ImageAsset) []ImageAsset {
	if in == nil {
		return nil
	}
	out := make([]ImageAsset, len(in))
	copy(out, in)
	return out
}
