package handlers

import (
	"net/http"
	"time"
)

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"has_api_key": a.HasAPIKey,
		"timestamp":   a.now().UTC().Format(time.RFC3339),
	})
}
