// Package studio owns the single workspace of a running service: the current
// inputs, the displayed results, the session history, and the pending
// suggestions of the feedback loop.
//
// One Studio serves one user. A mutex guards all fields and only one
// generation may be in flight at a time; a second caller gets domain.ErrBusy.
package studio

import (
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"styledna/internal/domain"
	"styledna/internal/imaging"
	"styledna/internal/infra"
	"styledna/internal/providers/image"
)

const (
	DefaultGenerationCount = 3
	DefaultFeedbackTimeout = 2 * time.Minute
)

// Options wires the collaborators of a Studio.
type Options struct {
	Provider        image.Provider
	Normalizer      *imaging.Normalizer
	Count           int
	FeedbackTimeout time.Duration
	Logger          *infra.Logger
	Now             func() time.Time
	NewID           func() string
}

// Studio is safe for concurrent use.
type Studio struct {
	provider        image.Provider
	normalizer      *imaging.Normalizer
	count           int
	feedbackTimeout time.Duration
	logger          *infra.Logger
	now             func() time.Time
	newID           func() string

	mu          sync.Mutex
	state       domain.InputState
	results     []string
	history     History
	busy        bool
	seq         uint64
	feedbackSeq uint64
	pending     *pendingSuggestions
	inLibrary   map[string]struct{}
}

// New returns a Studio holding the default workspace.
func New(opts Options) *Studio {
	s := &Studio{
		provider:        opts.Provider,
		normalizer:      opts.Normalizer,
		count:           opts.Count,
		feedbackTimeout: opts.FeedbackTimeout,
		logger:          opts.Logger,
		now:             opts.Now,
		newID:           opts.NewID,
		state:           domain.DefaultInputState(),
		inLibrary:       make(map[string]struct{}),
	}
	if s.normalizer == nil {
		s.normalizer = imaging.NewNormalizer(imaging.DefaultMaxDimension, imaging.DefaultJPEGQuality)
	}
	if s.count <= 0 {
		s.count = DefaultGenerationCount
	}
	if s.feedbackTimeout <= 0 {
		s.feedbackTimeout = DefaultFeedbackTimeout
	}
	if s.logger == nil {
		discard := zerolog.New(io.Discard)
		s.logger = &discard
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// State returns a copy of the current inputs.
func (s *Studio) State() domain.InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// ReplaceState overwrites every input after checking the enumerated fields.
func (s *Studio) ReplaceState(next domain.InputState) (domain.InputState, error) {
	model, err := domain.ParseModel(string(next.Model))
	if err != nil {
		return domain.InputState{}, err
	}
	aspect, err := domain.ParseAspectRatio(string(next.AspectRatio))
	if err != nil {
		return domain.InputState{}, err
	}
	next = next.Clone()
	next.Model = model
	next.AspectRatio = aspect
	return s.update(func(domain.InputState) (domain.InputState, error) { return next, nil })
}

// AddImages appends style reference images after sniffing their content.
func (s *Studio) AddImages(assets ...domain.ImageAsset) (domain.InputState, error) {
	sniffed, err := sniffAll(assets)
	if err != nil {
		return domain.InputState{}, err
	}
	return s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithImagesAdded(sniffed...), nil
	})
}

func (s *Studio) RemoveImage(index int) (domain.InputState, error) {
	return s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithoutImage(index)
	})
}

// SetComposition replaces the composition reference. An image reference is
// sniffed first.
func (s *Studio) SetComposition(ref domain.CompositionReference) (domain.InputState, error) {
	if img, ok := ref.Image(); ok {
		sniffed, err := imaging.Sniff(img)
		if err != nil {
			return domain.InputState{}, err
		}
		ref = domain.CompositionFromImage(sniffed)
	}
	return s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithComposition(ref), nil
	})
}

func (s *Studio) ClearComposition() domain.InputState {
	st, _ := s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithComposition(domain.NoComposition()), nil
	})
	return st
}

func (s *Studio) SetSubjectReferences(assets []domain.ImageAsset) (domain.InputState, error) {
	sniffed, err := sniffAll(assets)
	if err != nil {
		return domain.InputState{}, err
	}
	return s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithSubjectReferences(sniffed), nil
	})
}

func (s *Studio) RemoveSubjectReference(index int) (domain.InputState, error) {
	return s.update(func(st domain.InputState) (domain.InputState, error) {
		return st.WithoutSubjectReference(index)
	})
}

// Results returns the currently displayed result set.
func (s *Studio) Results() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.results...)
}

// History returns the sessions, newest first.
func (s *Studio) History() []domain.GenerationSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.history.List()
}

func (s *Studio) update(fn func(domain.InputState) (domain.InputState, error)) (domain.InputState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := fn(s.state)
	if err != nil {
		return domain.InputState{}, err
	}
	s.state = next
	return next.Clone(), nil
}

func sniffAll(assets []domain.ImageAsset) ([]domain.ImageAsset, error) {
	out := make([]domain.ImageAsset, 0, len(assets))
	for _, a := range assets {
		sniffed, err := imaging.Sniff(a)
		if err != nil {
			return nil, err
		}
		out = append(out, sniffed)
	}
	return out, nil
}
