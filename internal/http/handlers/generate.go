package handlers

import (
	"net/http"

	"styledna/internal/domain"
	"styledna/internal/studio"
)

type generateResponse struct {
	Session         domain.GenerationSession `json:"session"`
	Calls           []studio.CallReport      `json:"calls"`
	Sequence        uint64                   `json:"sequence"`
	FeedbackPending bool                     `json:"feedback_pending"`
}

// Generate runs one generation. Suggestions from the critique arrive later
// through GET /v1/suggestions.
func (a *App) Generate(w http.ResponseWriter, r *http.Request) {
	out, err := a.Studio.Generate(detached(r))
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.log(r).Info().
		Str("session_id", out.Session.ID).
		Str("model", string(out.Session.Model)).
		Int("count", len(out.Session.Images)).
		Msg("http: generation finished")
	a.json(w, http.StatusOK, generateResponse{
		Session:         out.Session,
		Calls:           out.Calls,
		Sequence:        out.Sequence,
		FeedbackPending: out.Feedback != nil,
	})
}
