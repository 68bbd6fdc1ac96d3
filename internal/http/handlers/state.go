package handlers

import (
	"net/http"

	"styledna/internal/domain"
	"styledna/internal/imagegen"
)

func (a *App) GetState(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Studio.State())
}

// PutState replaces the whole workspace. Omitted fields reset to their
// defaults.
func (a *App) PutState(w http.ResponseWriter, r *http.Request) {
	next := domain.DefaultInputState()
	if !a.decode(w, r, &next) {
		return
	}
	st, err := a.Studio.ReplaceState(next)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

type imagesRequest struct {
	Images []imagePayload `json:"images"`
}

func (a *App) AddImages(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if !a.decode(w, r, &req) {
		return
	}
	if len(req.Images) == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "images required")
		return
	}
	assets, err := assetsFrom(req.Images)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	st, err := a.Studio.AddImages(assets...)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

func (a *App) DeleteImage(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	st, err := a.Studio.RemoveImage(idx)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

type compositionRequest struct {
	Image *imagePayload `json:"image,omitempty"`
	View  string        `json:"view,omitempty"`
}

// PutComposition sets either a layout image or a camera preset. Preset names
// are matched loosely against the known presets.
func (a *App) PutComposition(w http.ResponseWriter, r *http.Request) {
	var req compositionRequest
	if !a.decode(w, r, &req) {
		return
	}
	var ref domain.CompositionReference
	switch {
	case req.Image != nil && req.View != "":
		a.writeErr(w, r, domain.Invalid("composition", "image and view are mutually exclusive"))
		return
	case req.Image != nil:
		asset, err := req.Image.asset()
		if err != nil {
			a.writeErr(w, r, err)
			return
		}
		ref = domain.CompositionFromImage(asset)
	case req.View != "":
		ref = domain.CompositionFromPreset(imagegen.CanonicalView(req.View))
	default:
		a.writeErr(w, r, domain.Invalid("composition", "image or view required"))
		return
	}
	st, err := a.Studio.SetComposition(ref)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

func (a *App) DeleteComposition(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Studio.ClearComposition())
}

func (a *App) PutSubjects(w http.ResponseWriter, r *http.Request) {
	var req imagesRequest
	if !a.decode(w, r, &req) {
		return
	}
	assets, err := assetsFrom(req.Images)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	st, err := a.Studio.SetSubjectReferences(assets)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

func (a *App) DeleteSubject(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	st, err := a.Studio.RemoveSubjectReference(idx)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, st)
}

func (a *App) CompositionPresets(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": imagegen.CompositionPresets})
}

func (a *App) PromptPreview(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, a.Studio.PromptPreview())
}
