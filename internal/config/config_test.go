package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
query:
  center: "500@399"
  email: ops@example.org
  step: "10 m"
http:
  base_url: https://ssd.jpl.nasa.gov/api/horizons.api
  timeout: 10s
app:
  log_level: debug
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Query.Center != "500@399" {
		t.Errorf("Center = %q", cfg.Query.Center)
	}
	if cfg.Query.Email != "ops@example.org" {
		t.Errorf("Email = %q", cfg.Query.Email)
	}
	if cfg.HTTP.Timeout.Std() != 10*time.Second {
		t.Errorf("Timeout = %v", cfg.HTTP.Timeout)
	}
	if cfg.App.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.App.LogLevel)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("EPHEM_EMAIL", "science@example.org")
	path := writeConfig(t, "query:\n  email: ${EPHEM_EMAIL}\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Query.Email != "science@example.org" {
		t.Errorf("Email = %q", cfg.Query.Email)
	}
}

func TestLoad_KeepsDefaults(t *testing.T) {
	path := writeConfig(t, "app:\n  log_level: warn\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Query.Center != "500" {
		t.Errorf("Center = %q, want default 500", cfg.Query.Center)
	}
	if cfg.Query.Step != "1 d" {
		t.Errorf("Step = %q, want default 1 d", cfg.Query.Step)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad email", "query:\n  email: not-an-address\n"},
		{"bad log level", "app:\n  log_level: loud\n"},
		{"negative timeout", "http:\n  timeout: -5s\n"},
		{"broken yaml", "query: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadOptional(t *testing.T) {
	cfg, err := LoadOptional("")
	if err != nil {
		t.Fatalf("LoadOptional(\"\") failed: %v", err)
	}
	if cfg.App.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.App.LogLevel)
	}

	cfg, err = LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadOptional(missing) failed: %v", err)
	}
	if cfg.Query.Center != "500" {
		t.Errorf("Center = %q", cfg.Query.Center)
	}

	path := writeConfig(t, "query: [\n")
	if _, err := LoadOptional(path); err == nil {
		t.Fatal("expected error for broken existing file")
	}
}
