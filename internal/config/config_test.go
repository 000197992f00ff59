package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := "server:\n  port: \"9090\"\ntrivia:\n  timeout: 2s\nquiz:\n  palette:\n    correct: lime\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("expected port 9090, got %q", cfg.Server.Port)
	}
	if cfg.Store.Driver != "file" || cfg.Store.Path != "users.json" {
		t.Fatalf("unexpected store defaults %+v", cfg.Store)
	}
	if cfg.Quiz.Palette.Correct != "lime" || cfg.Quiz.Palette.Incorrect != "red" {
		t.Fatalf("unexpected palette %+v", cfg.Quiz.Palette)
	}
	if got := TTLDuration(cfg.Trivia.Timeout, 5*time.Second); got != 2*time.Second {
		t.Fatalf("expected 2s timeout, got %v", got)
	}
}

func TestTTLDurationFallback(t *testing.T) {
	if got := TTLDuration("", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback, got %v", got)
	}
	if got := TTLDuration("soon", time.Minute); got != time.Minute {
		t.Fatalf("expected fallback on parse error, got %v", got)
	}
}
