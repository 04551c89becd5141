package config

import (
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIBaseURL != "http://localhost:8000" {
		t.Fatalf("expected default base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.UserID != "default_user" {
		t.Fatalf("expected default user, got %s", cfg.UserID)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected info log level, got %s", cfg.LogLevel)
	}
	if cfg.Debug {
		t.Fatalf("debug must default to off")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("TRADEDECK_API_URL", "http://api.internal:9000")
	t.Setenv("TRADEDECK_USER", "ops")
	t.Setenv("TRADEDECK_DEBUG", "true")
	t.Setenv("TRADEDECK_NO_CLEAR", "1")

	cfg := DefaultConfig()

	if cfg.APIBaseURL != "http://api.internal:9000" {
		t.Fatalf("expected env base URL, got %s", cfg.APIBaseURL)
	}
	if cfg.UserID != "ops" {
		t.Fatalf("expected env user, got %s", cfg.UserID)
	}
	if !cfg.Debug || !cfg.NoClear {
		t.Fatalf("boolean env overrides not applied: debug=%v noClear=%v", cfg.Debug, cfg.NoClear)
	}
}

func TestMalformedBoolIsIgnored(t *testing.T) {
	t.Setenv("TRADEDECK_DEBUG", "yes please")

	cfg := DefaultConfig()
	if cfg.Debug {
		t.Fatalf("unparseable boolean must keep the default")
	}
}
