package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"styledna/internal/domain"
	"styledna/internal/infra"
	"styledna/internal/middleware"
	"styledna/internal/storage"
	"styledna/internal/studio"
)

const defaultMaxBodyBytes = 64 << 20

type App struct {
	Studio       *studio.Studio
	Store        *storage.FileStore
	Logger       *infra.Logger
	HasAPIKey    bool
	MaxBodyBytes int64
	Now          func() time.Time
}

func NewApp(s *studio.Studio, store *storage.FileStore, logger *infra.Logger, hasAPIKey bool) *App {
	if logger == nil {
		discard := zerolog.New(io.Discard)
		logger = &discard
	}
	return &App{
		Studio:       s,
		Store:        store,
		Logger:       logger,
		HasAPIKey:    hasAPIKey,
		MaxBodyBytes: defaultMaxBodyBytes,
		Now:          time.Now,
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code, msg string) {
	a.json(w, status, map[string]errorBody{"error": {Code: code, Message: msg}})
}

// writeErr maps domain errors onto HTTP statuses. Provider failures are
// logged and reported without upstream detail.
func (a *App) writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		a.error(w, http.StatusBadRequest, "invalid_input", ve.Message)
	case errors.Is(err, domain.ErrInvalidInput):
		a.error(w, http.StatusBadRequest, "invalid_input", err.Error())
	case errors.Is(err, domain.ErrBusy):
		a.error(w, http.StatusConflict, "busy", "a generation is already in progress")
	case errors.Is(err, domain.ErrConfirmationRequired):
		a.error(w, http.StatusConflict, "confirmation_required", "restoring a session replaces the current inputs; resend with confirm set")
	case errors.Is(err, domain.ErrNoSuggestions):
		a.error(w, http.StatusConflict, "no_suggestions", "no suggestions available")
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrBlocked):
		a.error(w, http.StatusUnprocessableEntity, "blocked", userMessage(err, domain.ErrBlocked))
	case errors.Is(err, domain.ErrNoImages):
		a.error(w, http.StatusUnprocessableEntity, "no_images", userMessage(err, domain.ErrNoImages))
	case errors.Is(err, domain.ErrProviderFailure):
		a.log(r).Error().Err(err).Msg("http: provider failure")
		a.error(w, http.StatusBadGateway, "provider_failure", "the image service request failed")
	default:
		a.log(r).Error().Err(err).Msg("http: internal error")
		a.error(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// userMessage drops the sentinel prefix from errors built as "%w: message".
func userMessage(err, sentinel error) string {
	msg := err.Error()
	if trimmed := strings.TrimPrefix(msg, sentinel.Error()+": "); trimmed != msg {
		return trimmed
	}
	return msg
}

// log prefers the request-scoped logger installed by middleware.RequestID.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	l := a.Logger.With().Str("request_id", middleware.RequestIDFromContext(r.Context())).Logger()
	return &l
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	limit := a.MaxBodyBytes
	if limit <= 0 {
		limit = defaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil && !errors.Is(err, io.EOF) {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.error(w, http.StatusRequestEntityTooLarge, "too_large", "request body too large")
			return false
		}
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			a.error(w, http.StatusBadRequest, "invalid_input", ve.Message)
			return false
		}
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return false
	}
	return true
}

func (a *App) now() time.Time {
	if a.Now == nil {
		return time.Now()
	}
	return a.Now()
}

// detached keeps request values but drops cancellation, so a provider run
// started for a client that disconnects still finishes and lands in history.
func detached(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func indexParam(r *http.Request) (int, error) {
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 {
		return 0, domain.Invalid("index", "index must be a non-negative integer")
	}
	return idx, nil
}

// imagePayload carries an image either as raw base64 plus MIME type or as a
// data URL.
type imagePayload struct {
	Name     string `json:"name"`
	Base64   string `json:"base64,omitempty"`
	MIMEType string `json:"mime_type,omitempty"`
	DataURL  string `json:"data_url,omitempty"`
}

func (p imagePayload) asset() (domain.ImageAsset, error) {
	if p.DataURL != "" {
		asset, err := domain.ParseDataURI(p.DataURL, p.Name)
		if err != nil {
			return domain.ImageAsset{}, domain.Invalid("image", err.Error())
		}
		return asset, nil
	}
	if strings.TrimSpace(p.Base64) == "" {
		return domain.ImageAsset{}, domain.Invalid("image", "image payload is empty")
	}
	return domain.ImageAsset{Name: p.Name, Base64: p.Base64, MIMEType: p.MIMEType}, nil
}

func assetsFrom(payloads []imagePayload) ([]domain.ImageAsset, error) {
	out := make([]domain.ImageAsset, 0, len(payloads))
	for _, p := range payloads {
		asset, err := p.asset()
		if err != nil {
			return nil, err
		}
		out = append(out, asset)
	}
	return out, nil
}
