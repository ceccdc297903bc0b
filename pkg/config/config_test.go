package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const validYAML = `
environment: test
server:
  port: 9090
  read_timeout: 5s
provider:
  base_url: https://api.example.com
  timeout: 10s
symbols: [AAPL, MSFT]
cache:
  bar_ttl: 5m
  scan_ttl: 10m
  debounce: 200ms
session:
  open_hour: 4
  close_hour: 20
archive:
  backend: none
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Fatalf("port: got %d", cfg.Server.Port)
	}
	if cfg.Cache.BarTTL != 5*time.Minute {
		t.Fatalf("bar ttl: got %v", cfg.Cache.BarTTL)
	}
	if len(cfg.Symbols) != 2 {
		t.Fatalf("symbols: got %v", cfg.Symbols)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestValidateRejectsBadBackend(t *testing.T) {
	bad := validYAML + "\n"
	cfg, err := Load(writeConfig(t, bad))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Archive.Backend = "mysql"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected backend validation error")
	}
}

func TestValidateRejectsInvertedSession(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Session.OpenHour = 20
	cfg.Session.CloseHour = 4
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected session validation error")
	}
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("PROVIDER_API_KEY", "env-key")
	t.Setenv("SYMBOLS", "NVDA,AMD")

	cfg, err := LoadWithEnv(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Provider.APIKey != "env-key" {
		t.Fatalf("api key not overridden")
	}
	if len(cfg.Symbols) != 2 || cfg.Symbols[0] != "NVDA" {
		t.Fatalf("symbols not overridden: %v", cfg.Symbols)
	}
}
