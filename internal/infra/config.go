package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv              string
	LogLevel            string
	Port                string
	GeminiAPIKey        string
	GeminiBaseURL       string
	GeminiAnalysisModel string
	GeminiImageModel    string
	ImagenModel         string
	GenerationCount     int
	MaxInputDimension   int
	JPEGQuality         int
	SuggestionTimeout   time.Duration
	HTTPReadTimeout     time.Duration
	HTTPWriteTimeout    time.Duration
	HTTPIdleTimeout     time.Duration
	RateLimitPerMin     int
	CORSAllowedOrigins  []string
	ExportPath          string
	MaxBodyBytes        int64
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:              getEnv("APP_ENV", "development"),
		LogLevel:            os.Getenv("LOG_LEVEL"),
		Port:                getEnv("PORT", "8080"),
		GeminiAPIKey:        strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		GeminiBaseURL:       os.Getenv("GEMINI_BASE_URL"),
		GeminiAnalysisModel: getEnv("GEMINI_ANALYSIS_MODEL", "gemini-2.5-flash"),
		GeminiImageModel:    getEnv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		ImagenModel:         getEnv("IMAGEN_MODEL", "imagen-4.0-generate-001"),
		GenerationCount:     getEnvInt("GENERATION_COUNT", 3),
		MaxInputDimension:   getEnvInt("MAX_INPUT_DIMENSION", 1024),
		JPEGQuality:         getEnvInt("JPEG_QUALITY", 90),
		SuggestionTimeout:   time.Second * time.Duration(getEnvInt("SUGGESTION_TIMEOUT_SECONDS", 120)),
		HTTPReadTimeout:     time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 30)),
		HTTPWriteTimeout:    time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 300)),
		HTTPIdleTimeout:     time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:     getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		CORSAllowedOrigins:  getEnvList("CORS_ALLOWED_ORIGINS"),
		ExportPath:          getEnv("EXPORT_PATH", "./exports"),
		MaxBodyBytes:        int64(getEnvInt("MAX_BODY_BYTES", 64<<20)),
	}

	if cfg.GenerationCount < 1 {
		return nil, fmt.Errorf("GENERATION_COUNT must be at least 1, got %d", cfg.GenerationCount)
	}
	if cfg.MaxInputDimension < 1 {
		return nil, fmt.Errorf("MAX_INPUT_DIMENSION must be positive, got %d", cfg.MaxInputDimension)
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return nil, fmt.Errorf("JPEG_QUALITY must be within 1..100, got %d", cfg.JPEGQuality)
	}

	return cfg, nil
}

// HasGeminiKey reports whether generation calls can be made.
func (c *Config) HasGeminiKey() bool {
	return c.GeminiAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	var out []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
