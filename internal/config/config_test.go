package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.API.BaseURL != "http://localhost:8000/api" {
		t.Errorf("API.BaseURL default: got %q", cfg.API.BaseURL)
	}
	if cfg.API.TokenEnv != "SITE_ADMIN_TOKEN" {
		t.Errorf("API.TokenEnv default: got %q", cfg.API.TokenEnv)
	}
	if cfg.Storage.Mode != "static" {
		t.Errorf("Storage.Mode default: got %q", cfg.Storage.Mode)
	}
	if !cfg.Drafts.Enabled {
		t.Error("Drafts.Enabled should default to true")
	}
	if cfg.Drafts.Backend != "sqlite" {
		t.Errorf("Drafts.Backend default: got %q", cfg.Drafts.Backend)
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	originalAppConfig := AppConfig
	defer func() { AppConfig = originalAppConfig }()

	if err := LoadConfig(filepath.Join(t.TempDir(), "no-such.yaml")); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if AppConfig == nil || AppConfig.API.BaseURL != "http://localhost:8000/api" {
		t.Errorf("expected defaults, got %+v", AppConfig)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	SetLogger(zerolog.New(os.Stdout).Level(zerolog.ErrorLevel))

	originalAppConfig := AppConfig
	defer func() { AppConfig = originalAppConfig }()

	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api:\n    base_url: https://admin.example.com/api\nlogging:\n    level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	if err := LoadConfig(path); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if AppConfig.API.BaseURL != "https://admin.example.com/api" {
		t.Errorf("override lost: %q", AppConfig.API.BaseURL)
	}
	if AppConfig.Logging.Level != "debug" {
		t.Errorf("override lost: %q", AppConfig.Logging.Level)
	}
	// Untouched sections keep their defaults
	if AppConfig.Editor.Command != "vi" {
		t.Errorf("default lost: %q", AppConfig.Editor.Command)
	}
}

func TestAPIConfigToken(t *testing.T) {
	t.Setenv("TEST_ADMIN_TOKEN", "sekrit")
	c := APIConfig{TokenEnv: "TEST_ADMIN_TOKEN"}
	if c.Token() != "sekrit" {
		t.Errorf("Token: got %q", c.Token())
	}
}
