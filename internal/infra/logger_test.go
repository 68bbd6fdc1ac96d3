package infra

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		want  zerolog.Level
	}{
		{name: "production default", env: "production", want: zerolog.InfoLevel},
		{name: "development default", env: "development", want: zerolog.DebugLevel},
		{name: "override", env: "production", level: "WARN", want: zerolog.WarnLevel},
		{name: "unknown level ignored", env: "production", level: "loud", want: zerolog.InfoLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := newLogger(&bytes.Buffer{}, tc.env, tc.level)
			if got := l.GetLevel(); got != tc.want {
				t.Fatalf("level = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestNewLoggerWritesJSONOutsideDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "production", "")
	l.Info().Str("session_id", "s-1").Msg("studio: generation complete")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["service"] != "styledna" || entry["session_id"] != "s-1" || entry["level"] != "info" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewLoggerConsoleInDevelopment(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "development", "")
	l.Debug().Msg("gemini: request")
	if !strings.Contains(buf.String(), "gemini: request") || strings.HasPrefix(buf.String(), "{") {
		t.Fatalf("console output = %q", buf.String())
	}
}
