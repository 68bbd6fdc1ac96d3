package studio

import (
	"fmt"

	"styledna/internal/domain"
)

// History is the newest-first list of sessions. It is not synchronized; the
// Studio mutex guards it.
type History struct {
	sessions []domain.GenerationSession
}

func (h *History) Prepend(s domain.GenerationSession) {
	h.sessions = append([]domain.GenerationSession{s}, h.sessions...)
}

// List returns a copy, newest first.
func (h *History) List() []domain.GenerationSession {
	out := make([]domain.GenerationSession, len(h.sessions))
	copy(out, h.sessions)
	return out
}

func (h *History) Find(id string) (domain.GenerationSession, bool) {
	for _, s := range h.sessions {
		if s.ID == id {
			return s, true
		}
	}
	return domain.GenerationSession{}, false
}

func (h *History) Len() int {
	return len(h.sessions)
}

// Restore overwrites the inputs and displayed results with those of a past
// session. It is destructive and requires confirmed to be true.
func (s *Studio) Restore(id string, confirmed bool) (domain.GenerationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.history.Find(id)
	if !ok {
		return domain.GenerationSession{}, fmt.Errorf("session %q: %w", id, domain.ErrNotFound)
	}
	if !confirmed {
		return domain.GenerationSession{}, domain.ErrConfirmationRequired
	}
	s.state = session.Snapshot.Clone()
	s.results = append([]string(nil), session.Images...)
	s.logger.Info().Str("session_id", id).Msg("studio: session restored")
	return session, nil
}

// Flatten lists every image of history, newest session first, followed by
// the current results. Sessions without images contribute nothing.
func Flatten(history []domain.GenerationSession, current []string) []string {
	var out []string
	for _, s := range history {
		out = append(out, s.Images...)
	}
	return append(out, current...)
}

// DownloadAll returns the flattened export sequence. It is empty, not an
// error, when nothing was generated.
func (s *Studio) DownloadAll() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Flatten(s.history.sessions, s.results)
}

// ExportName is the file name of the n-th exported image, 1-based.
func ExportName(n int) string {
	return fmt.Sprintf("generated_image_%d.jpeg", n)
}

// ExportAssets decodes a flattened sequence into named assets.
func ExportAssets(uris []string) ([]domain.ImageAsset, error) {
	out := make([]domain.ImageAsset, 0, len(uris))
	for i, uri := range uris {
		asset, err := domain.ParseDataURI(uri, ExportName(i+1))
		if err != nil {
			return nil, fmt.Errorf("export image %d: %w", i+1, err)
		}
		out = append(out, asset)
	}
	return out, nil
}
