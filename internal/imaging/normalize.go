// Package imaging downsizes input images before they are embedded in a
// generation, analysis, or critique request.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"styledna/internal/domain"
)

const (
	DefaultMaxDimension = 1024
	DefaultJPEGQuality  = 90
)

// ErrDecode is returned when the asset bytes are not a decodable image.
var ErrDecode = errors.New("imaging: cannot decode image")

// Normalizer applies the same bounding box and JPEG quality to every asset.
type Normalizer struct {
	MaxDimension int
	Quality      int
}

// NewNormalizer falls back to the defaults for non-positive values.
func NewNormalizer(maxDimension, quality int) *Normalizer {
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultJPEGQuality
	}
	return &Normalizer{MaxDimension: maxDimension, Quality: quality}
}

func (n *Normalizer) Normalize(asset domain.ImageAsset) (domain.ImageAsset, error) {
	return Resize(asset, n.MaxDimension, n.Quality)
}

// NormalizeAll normalizes each asset independently and keeps input order.
func (n *Normalizer) NormalizeAll(ctx context.Context, assets []domain.ImageAsset) ([]domain.ImageAsset, error) {
	if len(assets) == 0 {
		return nil, nil
	}
	out := make([]domain.ImageAsset, len(assets))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, asset := range assets {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			resized, err := n.Normalize(asset)
			if err != nil {
				return err
			}
			out[i] = resized
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Resize returns asset untouched when both sides fit within maxDimension.
// Otherwise the longer side becomes maxDimension, the shorter side is scaled
// proportionally and rounded, and the result is re-encoded as JPEG.
func Resize(asset domain.ImageAsset, maxDimension, quality int) (domain.ImageAsset, error) {
	data, err := asset.Bytes()
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%w: %s: %v", ErrDecode, asset.Name, err)
	}
	if cfg.Width <= maxDimension && cfg.Height <= maxDimension {
		return asset, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return domain.ImageAsset{}, fmt.Errorf("%w: %s: %v", ErrDecode, asset.Name, err)
	}
	width, height := ScaledSize(cfg.Width, cfg.Height, maxDimension)

	// JPEG carries no alpha; transparent pixels end up black, as on a canvas.
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(dst, dst.Bounds(), image.Black, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return domain.ImageAsset{}, fmt.Errorf("imaging: encode %s: %w", asset.Name, err)
	}
	return domain.NewImageAsset(asset.Name, "image/jpeg", buf.Bytes()), nil
}

// ScaledSize fits width x height into a maxDimension square.
func ScaledSize(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}
	var w, h int
	if width > height {
		w = maxDimension
		h = int(math.Round(float64(height) * float64(maxDimension) / float64(width)))
	} else {
		h = maxDimension
		w = int(math.Round(float64(width) * float64(maxDimension) / float64(height)))
	}
	return max(w, 1), max(h, 1)
}

// Dimensions reports the pixel size of asset without decoding the full image.
func Dimensions(asset domain.ImageAsset) (int, int, error) {
	data, err := asset.Bytes()
	if err != nil {
		return 0, 0, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return cfg.Width, cfg.Height, nil
}
