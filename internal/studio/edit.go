package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"styledna/internal/domain"
	"styledna/internal/imagegen"
	"styledna/internal/imaging"
	"styledna/internal/providers/image"
)

const msgEditEmpty = "Image editing failed to produce an image. The response may have been blocked due to safety settings."

// EditResult regenerates the masked region of the index-th current result and
// appends the edited image to the current results. No session is created.
func (s *Studio) EditResult(ctx context.Context, index int, instruction string, mask domain.ImageAsset) (string, error) {
	instruction = strings.TrimSpace(instruction)
	if instruction == "" {
		return "", domain.Invalid("prompt", "Please describe the edit to apply.")
	}
	mask, err := imaging.Sniff(mask)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	if index < 0 || index >= len(s.results) {
		s.mu.Unlock()
		return "", fmt.Errorf("result %d: %w", index, domain.ErrNotFound)
	}
	src := s.results[index]
	styleDescription := s.state.StyleDescription
	s.mu.Unlock()

	source, err := domain.ParseDataURI(src, "source.jpeg")
	if err != nil {
		return "", fmt.Errorf("result %d: %w", index, err)
	}
	edited, err := s.provider.EditMasked(ctx, image.EditRequest{
		Prompt:    imagegen.BuildEditPrompt(instruction, styleDescription),
		Source:    source,
		Mask:      mask,
		RequestID: s.newID(),
	})
	if err != nil {
		s.logger.Error().Err(err).Int("result", index).Msg("studio: edit failed")
		switch {
		case errors.Is(err, domain.ErrBlocked):
			return "", fmt.Errorf("%w: %s", domain.ErrBlocked, msgEditEmpty)
		case errors.Is(err, domain.ErrNoImages):
			return "", fmt.Errorf("%w: %s", domain.ErrNoImages, msgEditEmpty)
		}
		return "", err
	}

	uri := domain.JPEGDataURI(base64.StdEncoding.EncodeToString(edited.Data))
	s.mu.Lock()
	s.results = append(s.results, uri)
	s.mu.Unlock()
	return uri, nil
}

// AddResultToLibrary appends the index-th current result to the uploaded
// style images. A result already added is not added twice; the second
// return reports whether the library changed.
func (s *Studio) AddResultToLibrary(index int) (domain.ImageAsset, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.results) {
		return domain.ImageAsset{}, false, fmt.Errorf("result %d: %w", index, domain.ErrNotFound)
	}
	src := s.results[index]
	if _, ok := s.inLibrary[src]; ok {
		return domain.ImageAsset{}, false, nil
	}
	name := "generated_asset_" + strconv.FormatInt(s.now().UnixMilli(), 10) + ".jpeg"
	asset, err := domain.ParseDataURI(src, name)
	if err != nil {
		return domain.ImageAsset{}, false, fmt.Errorf("result %d: %w", index, err)
	}
	s.inLibrary[src] = struct{}{}
	s.state = s.state.WithImagesAdded(asset)
	return asset, true, nil
}
