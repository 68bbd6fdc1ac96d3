package handlers

import (
	"fmt"
	"net/http"

	"styledna/internal/domain"
	"styledna/internal/storage"
	"styledna/internal/studio"
	"styledna/pkg/zip"
)

func (a *App) Results(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"items": a.Studio.Results()})
}

func (a *App) exportAssets() ([]domain.ImageAsset, [][]byte, error) {
	assets, err := studio.ExportAssets(a.Studio.DownloadAll())
	if err != nil {
		return nil, nil, err
	}
	data := make([][]byte, len(assets))
	for i, asset := range assets {
		b, err := asset.Bytes()
		if err != nil {
			return nil, nil, err
		}
		data[i] = b
	}
	return assets, data, nil
}

// DownloadAll streams every image of the history followed by the current
// results as a zip archive. Nothing generated yields an empty archive.
func (a *App) DownloadAll(w http.ResponseWriter, r *http.Request) {
	assets, data, err := a.exportAssets()
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	entries := make([]zip.Asset, len(assets))
	for i, asset := range assets {
		entries[i] = zip.Asset{Filename: asset.Name, MIME: asset.MIMEType, Data: data[i]}
	}
	now := a.now()
	archive, err := zip.ArchiveAssets(entries, now)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=styledna-%s.zip", now.UTC().Format("20060102-150405")))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

// ExportAll writes the Download All sequence to the export directory under a
// fresh batch folder.
func (a *App) ExportAll(w http.ResponseWriter, r *http.Request) {
	if a.Store == nil {
		a.error(w, http.StatusServiceUnavailable, "export_disabled", "no export path configured")
		return
	}
	assets, data, err := a.exportAssets()
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	files := make([]storage.File, len(assets))
	for i, asset := range assets {
		files[i] = storage.File{Name: asset.Name, Data: data[i]}
	}
	batch := "export-" + a.now().UTC().Format("20060102-150405.000")
	keys, err := a.Store.WriteBatch(r.Context(), batch, files)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.log(r).Info().Str("batch", batch).Int("count", len(keys)).Msg("http: results exported")
	a.json(w, http.StatusOK, map[string]any{"batch": batch, "files": keys})
}

type editRequest struct {
	Instruction string       `json:"instruction"`
	Mask        imagePayload `json:"mask"`
}

func (a *App) EditResult(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	var req editRequest
	if !a.decode(w, r, &req) {
		return
	}
	mask, err := req.Mask.asset()
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	uri, err := a.Studio.EditResult(detached(r), idx, req.Instruction, mask)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"image": uri, "results": a.Studio.Results()})
}

func (a *App) AddResultToLibrary(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	asset, added, err := a.Studio.AddResultToLibrary(idx)
	if err != nil {
		a.writeErr(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]any{"added": added, "name": asset.Name, "state": a.Studio.State()})
}
