package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"styledna/internal/http/handlers"
	"styledna/internal/infra"
	"styledna/internal/middleware"
)

// Options configures the cross-cutting middleware.
type Options struct {
	Logger         infra.Logger
	AllowedOrigins []string
	// RateLimitPerMin applies to the routes that call the image service.
	RateLimitPerMin int
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID(opts.Logger),
		chimw.RealIP,
		middleware.Logger(opts.Logger),
		chimw.Recoverer,
		middleware.CORS(opts.AllowedOrigins),
	)

	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/openapi.json", app.OpenAPIJSON)
	r.Get("/v1/docs", app.OpenAPIDocs)

	r.Route("/v1/state", func(r chi.Router) {
		r.Get("/", app.GetState)
		r.Put("/", app.PutState)
		r.Post("/images", app.AddImages)
		r.Delete("/images/{index}", app.DeleteImage)
		r.Put("/composition", app.PutComposition)
		r.Delete("/composition", app.DeleteComposition)
		r.Put("/subjects", app.PutSubjects)
		r.Delete("/subjects/{index}", app.DeleteSubject)
	})
	r.Get("/v1/presets", app.CompositionPresets)
	r.Get("/v1/prompt", app.PromptPreview)

	r.Get("/v1/suggestions", app.Suggestions)
	r.Post("/v1/suggestions/apply", app.ApplySuggestions)

	r.Get("/v1/history", app.ListHistory)
	r.Post("/v1/history/{id}/restore", app.RestoreSession)

	r.Get("/v1/results", app.Results)
	r.Get("/v1/results/download", app.DownloadAll)
	r.Post("/v1/results/export", app.ExportAll)
	r.Post("/v1/results/{index}/library", app.AddResultToLibrary)

	// Upstream calls.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
		r.Post("/v1/style/analyze", app.AnalyzeStyle)
		r.Post("/v1/generate", app.Generate)
		r.Post("/v1/results/{index}/edit", app.EditResult)
	})

	return r
}
