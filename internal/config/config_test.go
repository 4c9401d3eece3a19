package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(New())
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("base url: got %q", cfg.API.BaseURL)
	}
	if cfg.API.AuthScheme != "Token" {
		t.Errorf("auth scheme: got %q", cfg.API.AuthScheme)
	}
	if cfg.API.Timeout != DefaultTimeout {
		t.Errorf("timeout: got %v", cfg.API.Timeout)
	}
	if cfg.History.Limit != 5 {
		t.Errorf("history limit: got %d", cfg.History.Limit)
	}
	if cfg.History.PollInterval != DefaultPollInterval {
		t.Errorf("poll interval: got %v", cfg.History.PollInterval)
	}
	if cfg.Session.LogoutOnUnauthorized {
		t.Errorf("logout_on_unauthorized should default to false")
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("port: got %q", cfg.Server.Port)
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	body := `
api:
  base_url: http://backend:9000/api
  auth_scheme: Bearer
  timeout: 5s
history:
  limit: 3
session:
  logout_on_unauthorized: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://backend:9000/api" || cfg.API.AuthScheme != "Bearer" {
		t.Fatalf("unexpected api config: %+v", cfg.API)
	}
	if cfg.API.Timeout != 5*time.Second {
		t.Fatalf("timeout: got %v", cfg.API.Timeout)
	}
	if cfg.History.Limit != 3 || !cfg.Session.LogoutOnUnauthorized {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	// untouched keys keep defaults
	if cfg.DB.Path != DefaultDBPath {
		t.Fatalf("db path: got %q", cfg.DB.Path)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CHEMVIZ_HISTORY_LIMIT", "2")
	cfg, err := FromViper(New())
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.History.Limit != 2 {
		t.Fatalf("env override: got %d", cfg.History.Limit)
	}
}

func TestFromViper_NonPositiveValuesFallBack(t *testing.T) {
	v := New()
	v.Set("history.limit", 0)
	v.Set("api.timeout", "0s")
	cfg, err := FromViper(v)
	if err != nil {
		t.Fatalf("FromViper: %v", err)
	}
	if cfg.History.Limit != DefaultHistoryLimit || cfg.API.Timeout != DefaultTimeout {
		t.Fatalf("fallbacks not applied: %+v", cfg)
	}
}

func TestFromViper_EmptyBaseURL(t *testing.T) {
	v := New()
	v.Set("api.base_url", "  ")
	if _, err := FromViper(v); err == nil {
		t.Fatal("expected error for empty base url")
	}
}
