package handlers

import (
	"net/http"

	"styledna/internal/domain"
)

func (a *App) Suggestions(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Studio.Suggestions())
}

type applyRequest struct {
	Fields []domain.SuggestionField `json:"fields,omitempty"`
	Patch  *domain.SuggestionPatch  `json:"patch,omitempty"`
}

// ApplySuggestions copies the named pending suggestions into the inputs, or
// applies an explicit patch when one is given.
func (a *App) ApplySuggestions(w http.ResponseWriter, r *http.Request) {
	var req applyRequest
	if !a.decode(w, r, &req) {
		return
	}
	if req.Patch != nil {
		st, applied := a.Studio.ApplyPatch(*req.Patch)
		a.json(w, http.StatusOK, map[string]any{"applied": applied, "state": st})
		return
	}
	if len(req.Fields) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "fields or patch required")
		return
	}
	st, applied, err := a.Studio.ApplySuggestions(req.Fields...)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"applied": applied, "state": st})
}
