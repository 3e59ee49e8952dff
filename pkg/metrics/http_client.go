package metrics

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// DefaultTimeout bounds a single metrics request.
const DefaultTimeout = 10 * time.Second

// HTTPConfig configures the HTTP metrics client.
type HTTPConfig struct {
	BaseURL    string
	Path       string
	APIKey     string
	HTTPClient *http.Client
}

// HTTPClient reads the published metrics resource from a static site or CDN.
type HTTPClient struct {
	url    string
	apiKey string
	client *http.Client
}

var _ dashboard.MetricsSource = (*HTTPClient)(nil)

// NewHTTPClient builds a client for <BaseURL>/<Path>.
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("metrics: base url is required")
	}
	path := cfg.Path
	if path == "" {
		path = dashboard.MetricsPath
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPClient{
		url:    strings.TrimRight(cfg.BaseURL, "/") + "/" + strings.TrimLeft(path, "/"),
		apiKey: cfg.APIKey,
		client: httpClient,
	}, nil
}

// URL returns the resource the client reads.
func (c *HTTPClient) URL() string {
	return c.url
}

// FetchMetrics implements dashboard.MetricsSource.
func (c *HTTPClient) FetchMetrics(ctx context.Context) (dashboard.MetricsSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, io.LimitReader(resp.Body, 512))
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: remote error %d: %s", resp.StatusCode, strings.TrimSpace(buf.String()))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: read response: %w", err)
	}
	return dashboard.DecodeMetrics(body)
}
