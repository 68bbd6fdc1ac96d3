package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"styledna/internal/http/handlers"
	httpapi "styledna/internal/http/httpapi"
	"styledna/internal/imaging"
	"styledna/internal/infra"
	"styledna/internal/providers/gemini"
	"styledna/internal/providers/image"
	"styledna/internal/storage"
	"styledna/internal/studio"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx := context.Background()
	var provider image.Provider
	if cfg.HasGeminiKey() {
		client, err := gemini.NewClient(ctx, gemini.Options{
			APIKey:        cfg.GeminiAPIKey,
			BaseURL:       cfg.GeminiBaseURL,
			AnalysisModel: cfg.GeminiAnalysisModel,
			ImageModel:    cfg.GeminiImageModel,
			ImagenModel:   cfg.ImagenModel,
			Logger:        &logger,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create gemini client")
		}
		provider = client
	} else {
		logger.Warn().Msg("GEMINI_API_KEY not set; generation endpoints will fail until it is configured")
		provider = gemini.NewUnavailable(gemini.ErrMissingAPIKey)
	}

	ws := studio.New(studio.Options{
		Provider:        provider,
		Normalizer:      imaging.NewNormalizer(cfg.MaxInputDimension, cfg.JPEGQuality),
		Count:           cfg.GenerationCount,
		FeedbackTimeout: cfg.SuggestionTimeout,
		Logger:          &logger,
	})

	store, err := storage.NewFileStore(cfg.ExportPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare export path")
	}

	app := handlers.NewApp(ws, store, &logger, cfg.HasGeminiKey())
	app.MaxBodyBytes = cfg.MaxBodyBytes

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
	})
	server := infra.NewHTTPServer(cfg, router, logger)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
