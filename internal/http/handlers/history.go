package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *App) ListHistory(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Studio.History()})
}

type restoreRequest struct {
	Confirm bool `json:"confirm"`
}

func (a *App) RestoreSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	var req restoreRequest
	if !a.decode(w, r, &req) {
		return
	}
	session, err := a.Studio.Restore(id, req.Confirm)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"session": session,
		"state":   a.Studio.State(),
	})
}
