package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected defaults to load, got error: %v", err)
	}

	if cfg.API.BaseURL != "https://fc-pro-number-api.kasra.codes" {
		t.Errorf("expected default base URL, got '%s'", cfg.API.BaseURL)
	}
	if cfg.App.URL != "https://fc-pro-num.kasra.codes/" {
		t.Errorf("expected default app URL, got '%s'", cfg.App.URL)
	}
	if cfg.Identity.FallbackFID != 573 {
		t.Errorf("expected fallback fid 573, got %d", cfg.Identity.FallbackFID)
	}
	if cfg.API.Timeout() != 0 {
		t.Errorf("expected no client timeout by default, got %s", cfg.API.Timeout())
	}
	if cfg.API.RatePerSecond != 0 {
		t.Errorf("expected the lookup limiter to be off by default, got %d", cfg.API.RatePerSecond)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FCPRO_IDENTITY_FALLBACK_FID", "99")
	t.Setenv("FCPRO_API_TIMEOUT_SEC", "5")
	t.Setenv("PORT", "9090")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Identity.FallbackFID != 99 {
		t.Errorf("expected fallback fid 99, got %d", cfg.Identity.FallbackFID)
	}
	if cfg.API.Timeout() != 5*time.Second {
		t.Errorf("expected 5s timeout, got %s", cfg.API.Timeout())
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fcpro.yaml")
	content := []byte("api:\n  base_url: http://localhost:3000/\nlogging:\n  level: debug\n")
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.API.BaseURL != "http://localhost:3000" {
		t.Errorf("expected trailing slash trimmed, got '%s'", cfg.API.BaseURL)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got '%s'", cfg.Logging.Level)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for a missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API:      APIConfig{BaseURL: "https://api.example.com"},
			App:      AppConfig{URL: "https://app.example.com/", ComposeURL: "https://warpcast.com/~/compose"},
			Identity: IdentityConfig{FallbackFID: 573},
			Server:   ServerConfig{Port: "8080"},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Fatalf("expected valid config, got %v", err)
	}

	cfg := valid()
	cfg.API.BaseURL = "not a url"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for relative base URL")
	}

	cfg = valid()
	cfg.Identity.FallbackFID = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for zero fallback fid")
	}

	cfg = valid()
	cfg.API.RatePerSecond = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for negative rate")
	}
}
