package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GEMINI_API_KEY", "GENERATION_COUNT", "MAX_INPUT_DIMENSION", "JPEG_QUALITY", "SUGGESTION_TIMEOUT_SECONDS", "EXPORT_PATH", "CORS_ALLOWED_ORIGINS"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.GenerationCount != 3 {
		t.Fatalf("GenerationCount = %d, want 3", cfg.GenerationCount)
	}
	if cfg.MaxInputDimension != 1024 || cfg.JPEGQuality != 90 {
		t.Fatalf("normalization = %d/%d, want 1024/90", cfg.MaxInputDimension, cfg.JPEGQuality)
	}
	if cfg.SuggestionTimeout != 120*time.Second {
		t.Fatalf("SuggestionTimeout = %s", cfg.SuggestionTimeout)
	}
	if cfg.ImagenModel != "imagen-4.0-generate-001" {
		t.Fatalf("ImagenModel = %q", cfg.ImagenModel)
	}
	if cfg.ExportPath != "./exports" {
		t.Fatalf("ExportPath = %q", cfg.ExportPath)
	}
	if cfg.HasGeminiKey() {
		t.Fatal("HasGeminiKey = true with no key set")
	}
	if len(cfg.CORSAllowedOrigins) != 0 {
		t.Fatalf("CORSAllowedOrigins = %#v, want empty", cfg.CORSAllowedOrigins)
	}
}

func TestLoadConfigParsesOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", " secret ")
	t.Setenv("GENERATION_COUNT", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example ")
	t.Setenv("MAX_BODY_BYTES", "1024")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GeminiAPIKey != "secret" || !cfg.HasGeminiKey() {
		t.Fatalf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.GenerationCount != 5 {
		t.Fatalf("GenerationCount = %d, want 5", cfg.GenerationCount)
	}
	expected := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSAllowedOrigins) != len(expected) {
		t.Fatalf("CORSAllowedOrigins = %#v, want %#v", cfg.CORSAllowedOrigins, expected)
	}
	for i, origin := range expected {
		if cfg.CORSAllowedOrigins[i] != origin {
			t.Fatalf("CORSAllowedOrigins[%d] = %q, want %q", i, cfg.CORSAllowedOrigins[i], origin)
		}
	}
	if cfg.MaxBodyBytes != 1024 {
		t.Fatalf("MaxBodyBytes = %d", cfg.MaxBodyBytes)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"GENERATION_COUNT":    "0",
		"MAX_INPUT_DIMENSION": "-1",
		"JPEG_QUALITY":        "101",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := LoadConfig(); err == nil {
				t.Fatalf("LoadConfig accepted %s=%s", key, value)
			}
		})
	}
}
