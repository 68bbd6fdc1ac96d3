package studio

import (
	"context"

	"styledna/internal/domain"
	"styledna/internal/providers/image"
	"styledna/internal/style"
)

// FeedbackResult is delivered once per critique. Err never affects the
// generation that triggered it. Stale is set when a newer generation started
// before the critique finished; such a result is not stored.
type FeedbackResult struct {
	Sequence    uint64
	Suggestions *domain.SuggestionSet
	Stale       bool
	Err         error
}

type pendingSuggestions struct {
	set domain.SuggestionSet
	seq uint64
}

// SuggestionStatus reports the feedback loop state together with the diffs
// of the pending suggestions against the current inputs.
type SuggestionStatus struct {
	Running      bool                  `json:"running"`
	Sequence     uint64                `json:"sequence,omitempty"`
	Suggestions  *domain.SuggestionSet `json:"suggestions,omitempty"`
	StyleChanges []style.FieldChange   `json:"style_changes,omitempty"`
	Positive     *style.KeywordDiff    `json:"positive,omitempty"`
	Negative     *style.KeywordDiff    `json:"negative,omitempty"`
}

// startFeedback runs the critique detached from ctx so that the caller
// returning does not cancel it. Must be called with s.mu held.
func (s *Studio) startFeedback(ctx context.Context, seq uint64, snapshot domain.InputState, generatedB64 string) <-chan FeedbackResult {
	out := make(chan FeedbackResult, 1)
	fctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.feedbackTimeout)
	go func() {
		defer close(out)
		defer cancel()
		out <- s.runFeedback(fctx, seq, snapshot, generatedB64)
	}()
	return out
}

func (s *Studio) runFeedback(ctx context.Context, seq uint64, snapshot domain.InputState, generatedB64 string) FeedbackResult {
	log := s.logger.With().Uint64("sequence", seq).Logger()
	done := func(res FeedbackResult) FeedbackResult {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.feedbackSeq == seq {
			s.feedbackSeq = 0
		}
		if res.Err != nil {
			return res
		}
		if s.seq != seq {
			res.Stale = true
			log.Debug().Msg("studio: discarding suggestions of superseded generation")
			return res
		}
		s.pending = &pendingSuggestions{set: *res.Suggestions, seq: seq}
		return res
	}

	generated, err := s.normalizer.Normalize(domain.ImageAsset{
		Name:     "generated.jpg",
		Base64:   generatedB64,
		MIMEType: "image/jpeg",
	})
	if err != nil {
		log.Warn().Err(err).Msg("studio: could not prepare generated image for critique")
		return done(FeedbackResult{Sequence: seq, Err: err})
	}

	set, err := s.provider.Critique(ctx, image.CritiqueRequest{
		StyleImages:     snapshot.UploadedImages,
		Generated:       generated,
		CurrentStyle:    snapshot.StyleDescription,
		CurrentPositive: snapshot.SupportivePrompt,
		CurrentNegative: snapshot.NegativePrompt,
	})
	if err != nil {
		log.Warn().Err(err).Msg("studio: could not retrieve suggestions")
		return done(FeedbackResult{Sequence: seq, Err: err})
	}
	log.Info().Msg("studio: suggestions ready")
	return done(FeedbackResult{Sequence: seq, Suggestions: &set})
}

// Suggestions returns the feedback state. Diffs are computed against the
// current inputs so they stay accurate after partial applies.
func (s *Studio) Suggestions() SuggestionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	status := SuggestionStatus{Running: s.feedbackSeq != 0}
	if s.pending == nil {
		return status
	}
	set := s.pending.set
	status.Sequence = s.pending.seq
	status.Suggestions = &set
	status.StyleChanges = style.DiffDocs(style.Parse(s.state.StyleDescription), style.Parse(set.StyleDescription))
	pos := style.DiffKeywords(s.state.SupportivePrompt, set.PositivePrompt)
	neg := style.DiffKeywords(s.state.NegativePrompt, set.NegativePrompt)
	status.Positive = &pos
	status.Negative = &neg
	return status
}

// ApplySuggestions copies the named fields of the pending suggestions into the
// current inputs. The second return reports whether anything changed.
func (s *Studio) ApplySuggestions(fields ...domain.SuggestionField) (domain.InputState, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.InputState{}, false, domain.ErrNoSuggestions
	}
	patch, err := domain.PatchFrom(s.pending.set, fields...)
	if err != nil {
		return domain.InputState{}, false, err
	}
	return s.applyLocked(patch)
}

// ApplyPatch applies caller supplied values, typically suggestions the user
// edited before accepting.
func (s *Studio) ApplyPatch(patch domain.SuggestionPatch) (domain.InputState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, applied, _ := s.applyLocked(patch)
	return st, applied
}

func (s *Studio) applyLocked(patch domain.SuggestionPatch) (domain.InputState, bool, error) {
	next, applied := patch.Apply(s.state)
	s.state = next
	if applied {
		s.logger.Info().Msg("studio: suggestions applied")
	}
	return next.Clone(), applied, nil
}
