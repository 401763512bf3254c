package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	LogLevel        string
	CORSAllowOrigin []string

	// Flat-file storage roots.
	JSONDir    string
	ChartsDir  string
	ReportsDir string

	// Scoring inputs.
	AnswerMapPath string
	NameFieldRef  string
	EmailFieldRef string

	// Email dispatch.
	SendGridAPIKey    string
	SendGridFromEmail string
}

// Load reads configuration from environment variables with sensible
// defaults. A local .env file is loaded best-effort for dev convenience.
func Load() Config {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               normalizeEnv(getEnv("ENV", "dev")),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		JSONDir:           getEnv("JSON_STORAGE_DIR", filepath.Join(dataDir, "json")),
		ChartsDir:         getEnv("CHARTS_DIR", filepath.Join(dataDir, "charts")),
		ReportsDir:        getEnv("REPORTS_DIR", filepath.Join(dataDir, "reports")),
		AnswerMapPath:     getEnv("ANSWER_MAP_PATH", filepath.Join(dataDir, "answer-map.json")),
		NameFieldRef:      getEnv("NAME_FIELD_REF", "name_field_ref"),
		EmailFieldRef:     getEnv("EMAIL_FIELD_REF", "39f116ed-5403-407a-b506-c9625e9e6b2a"),
		SendGridAPIKey:    os.Getenv("SENDGRID_API_KEY"),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", "no-reply@frontlab.io"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
