package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Errorf("Env = %q, want dev", cfg.Env)
	}
	if cfg.JSONDir != filepath.Join("./data", "json") {
		t.Errorf("JSONDir = %q", cfg.JSONDir)
	}
	if cfg.AnswerMapPath != filepath.Join("./data", "answer-map.json") {
		t.Errorf("AnswerMapPath = %q", cfg.AnswerMapPath)
	}
	if cfg.NameFieldRef == "" || cfg.EmailFieldRef == "" {
		t.Error("field refs must have defaults")
	}
	if cfg.SendGridFromEmail == "" {
		t.Error("sender address must have a default")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("DATA_DIR", "/var/healthscore")
	t.Setenv("CHARTS_DIR", "/mnt/charts")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Errorf("Env = %q, want production", cfg.Env)
	}
	if cfg.JSONDir != filepath.Join("/var/healthscore", "json") {
		t.Errorf("JSONDir = %q", cfg.JSONDir)
	}
	if cfg.ChartsDir != "/mnt/charts" {
		t.Errorf("ChartsDir = %q, explicit dir must beat DATA_DIR", cfg.ChartsDir)
	}
	if len(cfg.CORSAllowOrigin) != 2 || cfg.CORSAllowOrigin[1] != "https://b.example.com" {
		t.Errorf("CORSAllowOrigin = %v", cfg.CORSAllowOrigin)
	}
}
