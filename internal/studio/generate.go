package studio

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"styledna/internal/domain"
	"styledna/internal/imagegen"
	"styledna/internal/providers/image"
)

const (
	msgReferenceEmpty = "Image generation failed to produce any images. The response may have been blocked due to safety settings."
	msgImagenEmpty    = "Imagen generation failed to produce any images. The prompt may have been blocked."
)

// CallFailure classifies why one generation call yielded no image.
type CallFailure string

const (
	FailureBlocked   CallFailure = "blocked"
	FailureEmpty     CallFailure = "empty"
	FailureTransport CallFailure = "transport"
)

// CallReport describes one of the generation calls of a run.
type CallReport struct {
	Index  int         `json:"index"`
	OK     bool        `json:"ok"`
	Reason CallFailure `json:"reason,omitempty"`
	Detail string      `json:"detail,omitempty"`
}

// Outcome is the result of a successful generation. Feedback is nil unless a
// critique was started; otherwise it yields exactly one value and is closed.
type Outcome struct {
	Session  domain.GenerationSession
	Calls    []CallReport
	Sequence uint64
	Feedback <-chan FeedbackResult
}

// Generate validates the current inputs, runs the generation path of the
// selected model, and records a new session. Failed runs leave the workspace
// untouched apart from clearing stale suggestions.
func (s *Studio) Generate(ctx context.Context) (*Outcome, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, domain.ErrBusy
	}
	snapshot := s.state.Clone()
	if err := snapshot.ValidateForGeneration(); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.busy = true
	s.seq++
	seq := s.seq
	s.pending = nil
	s.feedbackSeq = 0
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.busy = false
		s.mu.Unlock()
	}()

	id := s.newID()
	prompt := imagegen.Build(snapshot)
	log := s.logger.With().Str("session_id", id).Str("model", string(snapshot.Model)).Logger()
	log.Info().Int("count", s.count).Msg("studio: generation started")

	var (
		assets []image.Asset
		calls  []CallReport
		err    error
	)
	if snapshot.Model == domain.ModelImagen {
		assets, calls, err = s.generateFromText(ctx, id, prompt, snapshot)
	} else {
		assets, calls, err = s.generateWithReferences(ctx, id, prompt, snapshot)
	}
	if err != nil {
		log.Error().Err(err).Msg("studio: generation failed")
		return nil, err
	}

	b64s := make([]string, len(assets))
	images := make([]string, len(assets))
	for i, a := range assets {
		b64s[i] = base64.StdEncoding.EncodeToString(a.Data)
		images[i] = domain.JPEGDataURI(b64s[i])
	}
	session := domain.GenerationSession{
		ID:         id,
		Timestamp:  s.now(),
		PromptText: domain.SessionPrompt(snapshot.SubjectPrompt),
		Images:     images,
		Model:      snapshot.Model,
		Snapshot:   snapshot,
	}

	s.mu.Lock()
	s.history.Prepend(session)
	s.results = append([]string(nil), images...)
	var feedback <-chan FeedbackResult
	if snapshot.Model == domain.ModelFlashImage && len(b64s) > 0 {
		s.feedbackSeq = seq
		feedback = s.startFeedback(ctx, seq, snapshot, b64s[0])
	}
	s.mu.Unlock()

	log.Info().Int("images", len(images)).Bool("feedback", feedback != nil).Msg("studio: generation complete")
	return &Outcome{Session: session, Calls: calls, Sequence: seq, Feedback: feedback}, nil
}

// generateWithReferences normalizes every reference image and issues s.count
// independent calls. Calls that yield nothing are dropped, not retried.
func (s *Studio) generateWithReferences(ctx context.Context, id, prompt string, st domain.InputState) ([]image.Asset, []CallReport, error) {
	req, err := s.referenceRequest(ctx, id, prompt, st)
	if err != nil {
		return nil, nil, err
	}

	results := make([]*image.Asset, s.count)
	calls := make([]CallReport, s.count)
	var g errgroup.Group
	for i := 0; i < s.count; i++ {
		g.Go(func() error {
			asset, err := s.provider.GenerateWithReferences(ctx, req)
			if err != nil {
				calls[i] = CallReport{Index: i, Reason: classify(err), Detail: err.Error()}
				s.logger.Warn().Err(err).Str("session_id", id).Int("call", i).Msg("studio: generation call yielded no image")
				return nil
			}
			results[i] = &asset
			calls[i] = CallReport{Index: i, OK: true}
			return nil
		})
	}
	_ = g.Wait()

	var assets []image.Asset
	for _, r := range results {
		if r != nil {
			assets = append(assets, *r)
		}
	}
	if len(assets) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, calls, fmt.Errorf("generate: %w", err)
		}
		return nil, calls, fmt.Errorf("%w: %s", domain.ErrNoImages, msgReferenceEmpty)
	}
	return assets, calls, nil
}

func (s *Studio) referenceRequest(ctx context.Context, id, prompt string, st domain.InputState) (image.ReferenceRequest, error) {
	styleImages, err := s.normalizer.NormalizeAll(ctx, st.UploadedImages)
	if err != nil {
		return image.ReferenceRequest{}, fmt.Errorf("normalize style images: %w: %w", domain.ErrInvalidInput, err)
	}
	subjectImages, err := s.normalizer.NormalizeAll(ctx, st.SubjectReferenceImages)
	if err != nil {
		return image.ReferenceRequest{}, fmt.Errorf("normalize subject images: %w: %w", domain.ErrInvalidInput, err)
	}
	req := image.ReferenceRequest{
		Prompt:        prompt,
		StyleImages:   styleImages,
		SubjectImages: subjectImages,
		RequestID:     id,
	}
	if img, ok := st.Composition.Image(); ok {
		normalized, err := s.normalizer.Normalize(img)
		if err != nil {
			return image.ReferenceRequest{}, fmt.Errorf("normalize composition image: %w: %w", domain.ErrInvalidInput, err)
		}
		req.CompositionImage = &normalized
	}
	return req, nil
}

func (s *Studio) generateFromText(ctx context.Context, id, prompt string, st domain.InputState) ([]image.Asset, []CallReport, error) {
	assets, err := s.provider.GenerateFromText(ctx, image.TextToImageRequest{
		Prompt:      prompt,
		Count:       s.count,
		AspectRatio: st.AspectRatio,
		RequestID:   id,
	})
	if err != nil {
		calls := []CallReport{{Index: 0, Reason: classify(err), Detail: err.Error()}}
		switch calls[0].Reason {
		case FailureBlocked:
			return nil, calls, fmt.Errorf("%w: %s", domain.ErrBlocked, msgImagenEmpty)
		case FailureEmpty:
			return nil, calls, fmt.Errorf("%w: %s", domain.ErrNoImages, msgImagenEmpty)
		}
		return nil, calls, err
	}
	if len(assets) == 0 {
		return nil, []CallReport{{Index: 0, Reason: FailureEmpty}}, fmt.Errorf("%w: %s", domain.ErrNoImages, msgImagenEmpty)
	}
	return assets, []CallReport{{Index: 0, OK: true}}, nil
}

func classify(err error) CallFailure {
	switch {
	case errors.Is(err, domain.ErrBlocked):
		return FailureBlocked
	case errors.Is(err, domain.ErrNoImages):
		return FailureEmpty
	default:
		return FailureTransport
	}
}
