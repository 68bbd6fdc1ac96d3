package handlers

import "net/http"

func (a *App) AnalyzeStyle(w http.ResponseWriter, r *http.Request) {
	desc, err := a.Studio.AnalyzeStyle(detached(r))
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"style_description": desc,
		"state":             a.Studio.State(),
	})
}
