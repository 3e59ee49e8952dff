package config

import (
	"time"

	"github.com/goliatone/go-insights/pkg/activity"
)

// EnvPrefix marks environment overrides. Nested keys use a double
// underscore: INSIGHTS_METRICS__CACHE_TTL sets metrics.cache_ttl.
const EnvPrefix = "INSIGHTS_"

// DefaultPath is the config file read when none is given.
const DefaultPath = "insights.yml"

// DefaultConfig returns the configuration used when no file or environment
// override is present.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":9876",
			BasePath:        "/admin",
			ShutdownTimeout: 5 * time.Second,
		},
		Dashboard: DashboardConfig{
			Title:  "EBRS Insights",
			Locale: "en",
		},
		Metrics: MetricsConfig{
			Source:   MetricsSourceFile,
			Dir:      "./public",
			Path:     "data/metrics.json",
			CacheTTL: 30 * time.Second,
			Timeout:  10 * time.Second,
		},
		Activity: activity.Config{
			Enabled: true,
			Channel: activity.DefaultChannel,
		},
		Audit: AuditConfig{
			Capacity: 200,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
