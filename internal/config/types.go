package config

import (
	"time"

	"github.com/goliatone/go-insights/pkg/activity"
)

// MetricsSourceKind selects where the metrics resource is read from.
type MetricsSourceKind string

const (
	MetricsSourceFile   MetricsSourceKind = "file"
	MetricsSourceHTTP   MetricsSourceKind = "http"
	MetricsSourceStatic MetricsSourceKind = "static"
)

// Config is the full insights configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Dashboard DashboardConfig `yaml:"dashboard" koanf:"dashboard"`
	Metrics   MetricsConfig   `yaml:"metrics" koanf:"metrics"`
	Activity  activity.Config `yaml:"activity" koanf:"activity"`
	Audit     AuditConfig     `yaml:"audit" koanf:"audit"`
	Log       LogConfig       `yaml:"log" koanf:"log"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr" koanf:"addr"`
	BasePath        string        `yaml:"base_path" koanf:"base_path"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" koanf:"shutdown_timeout"`
}

// DashboardConfig holds presentation settings.
type DashboardConfig struct {
	Title    string `yaml:"title" koanf:"title"`
	Locale   string `yaml:"locale" koanf:"locale"`
	Manifest string `yaml:"manifest,omitempty" koanf:"manifest"`
}

// MetricsConfig describes the metrics resource and its cache.
type MetricsConfig struct {
	Source   MetricsSourceKind `yaml:"source" koanf:"source"`
	Dir      string            `yaml:"dir" koanf:"dir"`
	BaseURL  string            `yaml:"base_url,omitempty" koanf:"base_url"`
	Path     string            `yaml:"path" koanf:"path"`
	APIKey   string            `yaml:"api_key,omitempty" koanf:"api_key"`
	CacheTTL time.Duration     `yaml:"cache_ttl" koanf:"cache_ttl"`
	Timeout  time.Duration     `yaml:"timeout" koanf:"timeout"`
}

// AuditConfig switches the Audit Trail page from sample rows to recorded
// activity.
type AuditConfig struct {
	Live     bool `yaml:"live" koanf:"live"`
	Capacity int  `yaml:"capacity" koanf:"capacity"`
}

// LogConfig selects the slog handler.
type LogConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}

// MarshalYAML writes the shutdown timeout as a duration string ("5s").
func (s ServerConfig) MarshalYAML() (any, error) {
	return struct {
		Addr            string `yaml:"addr"`
		BasePath        string `yaml:"base_path"`
		ShutdownTimeout string `yaml:"shutdown_timeout"`
	}{s.Addr, s.BasePath, s.ShutdownTimeout.String()}, nil
}

// MarshalYAML writes the cache TTL and timeout as duration strings ("30s").
func (m MetricsConfig) MarshalYAML() (any, error) {
	return struct {
		Source   MetricsSourceKind `yaml:"source"`
		Dir      string            `yaml:"dir"`
		BaseURL  string            `yaml:"base_url,omitempty"`
		Path     string            `yaml:"path"`
		APIKey   string            `yaml:"api_key,omitempty"`
		CacheTTL string            `yaml:"cache_ttl"`
		Timeout  string            `yaml:"timeout"`
	}{m.Source, m.Dir, m.BaseURL, m.Path, m.APIKey, m.CacheTTL.String(), m.Timeout.String()}, nil
}
