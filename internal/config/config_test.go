package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_BASE_URL", "")
	t.Setenv("POLL_INTERVAL_SECONDS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerBaseURL != "http://localhost:5000" {
		t.Errorf("unexpected default base URL %s", cfg.ServerBaseURL)
	}
	if cfg.ServerWSURL != "ws://localhost:5000/ws" {
		t.Errorf("unexpected default ws URL %s", cfg.ServerWSURL)
	}
	if cfg.PollInterval != 30*time.Second {
		t.Errorf("unexpected default poll interval %s", cfg.PollInterval)
	}
	if !cfg.EnableTUI {
		t.Error("TUI should default to enabled")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SERVER_BASE_URL", "http://example.test:8080")
	t.Setenv("POLL_INTERVAL_SECONDS", "5")
	t.Setenv("ENABLE_TUI", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerBaseURL != "http://example.test:8080" {
		t.Errorf("env override ignored: %s", cfg.ServerBaseURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("unexpected poll interval %s", cfg.PollInterval)
	}
	if cfg.EnableTUI {
		t.Error("ENABLE_TUI=false ignored")
	}
}

func TestValidateRejectsSubSecondPolling(t *testing.T) {
	t.Setenv("POLL_INTERVAL_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Error("expected validation error for zero poll interval")
	}
}

func TestMaskSecret(t *testing.T) {
	cases := map[string]string{
		"":                      "(not set)",
		"short":                 "****",
		"abcd1234efgh5678ijkl":  "abcd****ijkl",
	}
	for in, want := range cases {
		if got := maskSecret(in); got != want {
			t.Errorf("maskSecret(%q) = %q, want %q", in, got, want)
		}
	}
}
