package config

import (
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != "8000" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.DatabaseDriver != "sqlite" {
		t.Fatalf("driver = %q", cfg.DatabaseDriver)
	}
	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.JWTExpiry != 7*24*time.Hour {
		t.Fatalf("expiry = %v", cfg.JWTExpiry)
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("JWT_SECRET", "test-secret")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without GEMINI_API_KEY")
	} else if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Fatalf("error = %v", err)
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("JWT_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error without JWT_SECRET")
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("http://localhost:3000, https://example.com ,")
	if len(got) != 2 || got[0] != "http://localhost:3000" || got[1] != "https://example.com" {
		t.Fatalf("got %v", got)
	}
	if got := splitOrigins(""); len(got) != 1 || got[0] != "*" {
		t.Fatalf("empty input: %v", got)
	}
}
