package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Server.Addr != ":9876" {
		t.Errorf("expected default addr :9876, got %q", cfg.Server.Addr)
	}
	if cfg.Server.BasePath != "/admin" {
		t.Errorf("expected default base path /admin, got %q", cfg.Server.BasePath)
	}
	if cfg.Metrics.Source != MetricsSourceFile || cfg.Metrics.Dir != "./public" {
		t.Errorf("unexpected metrics source %q %q", cfg.Metrics.Source, cfg.Metrics.Dir)
	}
	if cfg.Metrics.CacheTTL != 30*time.Second || cfg.Metrics.Timeout != 10*time.Second {
		t.Errorf("unexpected metrics durations %s %s", cfg.Metrics.CacheTTL, cfg.Metrics.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dashboard.Locale != "en" {
		t.Errorf("expected default locale, got %q", cfg.Dashboard.Locale)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.yml")

	original := DefaultConfig()
	original.Server.Addr = ":8080"
	original.Server.BasePath = "/ops/"
	original.Metrics.Source = MetricsSourceHTTP
	original.Metrics.BaseURL = "https://insights.example.com"
	original.Metrics.CacheTTL = time.Minute
	original.Audit.Live = true

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Server.Addr != ":8080" {
		t.Errorf("addr: got %q", loaded.Server.Addr)
	}
	if loaded.Server.BasePath != "/ops" {
		t.Errorf("base path: got %q", loaded.Server.BasePath)
	}
	if loaded.Metrics.Source != MetricsSourceHTTP || loaded.Metrics.BaseURL != "https://insights.example.com" {
		t.Errorf("metrics: got %+v", loaded.Metrics)
	}
	if loaded.Metrics.CacheTTL != time.Minute {
		t.Errorf("cache ttl: got %s", loaded.Metrics.CacheTTL)
	}
	if !loaded.Audit.Live {
		t.Errorf("expected live audit")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.yml")
	if err := os.WriteFile(path, []byte("log:\n  format: json\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Server.Addr != ":9876" {
		t.Errorf("expected default addr, got %q", cfg.Server.Addr)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INSIGHTS_SERVER__ADDR", ":7000")
	t.Setenv("INSIGHTS_METRICS__CACHE_TTL", "45s")
	t.Setenv("INSIGHTS_AUDIT__LIVE", "true")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("addr: got %q", cfg.Server.Addr)
	}
	if cfg.Metrics.CacheTTL != 45*time.Second {
		t.Errorf("cache ttl: got %s", cfg.Metrics.CacheTTL)
	}
	if !cfg.Audit.Live {
		t.Errorf("expected live audit from env")
	}
}

func TestLoadDotenv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("INSIGHTS_DOTENV_LOADED=loaded\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("INSIGHTS_DOTENV_LOADED") })

	if err := LoadDotenv(filepath.Join(dir, "missing.env"), path); err != nil {
		t.Fatalf("LoadDotenv failed: %v", err)
	}
	if got := os.Getenv("INSIGHTS_DOTENV_LOADED"); got != "loaded" {
		t.Errorf("expected dotenv value, got %q", got)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty addr":      func(c *Config) { c.Server.Addr = "" },
		"root base path":  func(c *Config) { c.Server.BasePath = "" },
		"unknown source":  func(c *Config) { c.Metrics.Source = "s3" },
		"http no url":     func(c *Config) { c.Metrics.Source = MetricsSourceHTTP },
		"file no dir":     func(c *Config) { c.Metrics.Dir = "" },
		"negative ttl":    func(c *Config) { c.Metrics.CacheTTL = -time.Second },
		"bad log format":  func(c *Config) { c.Log.Format = "xml" },
		"negative buffer": func(c *Config) { c.Audit.Capacity = -1 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}

func TestNormalizeBasePath(t *testing.T) {
	cases := map[string]string{
		"":        "",
		"/":       "",
		"admin":   "/admin",
		"/admin/": "/admin",
	}
	for in, want := range cases {
		if got := normalizeBasePath(in); got != want {
			t.Errorf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestYAMLWritesDurationStrings(t *testing.T) {
	data, err := DefaultConfig().YAML()
	if err != nil {
		t.Fatalf("YAML failed: %v", err)
	}
	out := string(data)
	for _, want := range []string{"shutdown_timeout: 5s", "cache_ttl: 30s", "timeout: 10s"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "30000000000") {
		t.Errorf("durations written as nanoseconds:\n%s", out)
	}
}

func TestRedactedMasksAPIKey(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Metrics.APIKey = "s3cret"

	redacted := cfg.Redacted()
	if redacted.Metrics.APIKey != RedactedValue {
		t.Errorf("expected masked key, got %q", redacted.Metrics.APIKey)
	}
	if cfg.Metrics.APIKey != "s3cret" {
		t.Errorf("Redacted modified the original config")
	}
	if DefaultConfig().Redacted().Metrics.APIKey != "" {
		t.Errorf("empty key should stay empty")
	}
}
