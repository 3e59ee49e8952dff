package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// LoadDotenv loads .env style files into the process environment. Missing
// files are skipped; variables already set win.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (INSIGHTS_*). A missing file is not an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Server.BasePath = normalizeBasePath(cfg.Server.BasePath)
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// YAML renders the configuration as a YAML document.
func (c *Config) YAML() ([]byte, error) {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// RedactedValue replaces secrets in Redacted output.
const RedactedValue = "<redacted>"

// Redacted returns a copy of the configuration with secrets masked, for
// display.
func (c *Config) Redacted() *Config {
	out := *c
	if out.Metrics.APIKey != "" {
		out.Metrics.APIKey = RedactedValue
	}
	return &out
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validSources = map[MetricsSourceKind]bool{
	MetricsSourceFile:   true,
	MetricsSourceHTTP:   true,
	MetricsSourceStatic: true,
}

var validFormats = map[string]bool{
	"json": true,
	"text": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.BasePath == "" || !strings.HasPrefix(c.Server.BasePath, "/") {
		return fmt.Errorf("server.base_path must be a non-root path such as /admin")
	}
	if !validSources[c.Metrics.Source] {
		return fmt.Errorf("invalid metrics.source %q: must be one of file, http, static", c.Metrics.Source)
	}
	if c.Metrics.Source == MetricsSourceHTTP && strings.TrimSpace(c.Metrics.BaseURL) == "" {
		return fmt.Errorf("metrics.base_url is required for the http source")
	}
	if c.Metrics.Source == MetricsSourceFile && strings.TrimSpace(c.Metrics.Dir) == "" {
		return fmt.Errorf("metrics.dir is required for the file source")
	}
	if c.Metrics.CacheTTL < 0 || c.Metrics.Timeout < 0 {
		return fmt.Errorf("metrics durations must be non-negative")
	}
	if c.Audit.Capacity < 0 {
		return fmt.Errorf("audit.capacity must be non-negative")
	}
	if !validFormats[strings.ToLower(c.Log.Format)] {
		return fmt.Errorf("invalid log.format %q: must be json or text", c.Log.Format)
	}
	return nil
}

func normalizeBasePath(base string) string {
	base = strings.Trim(strings.TrimSpace(base), "/")
	if base == "" {
		return ""
	}
	return "/" + base
}
