package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/commands"
	"github.com/goliatone/go-insights/internal/config"
	"github.com/goliatone/go-insights/pkg/metrics"
)

var scenarioNow = time.Date(2025, time.August, 16, 12, 15, 0, 0, time.UTC)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testGlobals() (*Globals, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return &Globals{out: &out, errOut: &errOut}, &out, &errOut
}

func scenarioSource() *metrics.StaticSource {
	total := int64(5845)
	rate := 78.0
	return metrics.NewStaticSource(dashboard.MetricsSnapshot{
		GeneratedAt:       "2025-08-16T12:00:00Z",
		RowsTotal:         &total,
		CompletionRatePct: &rate,
	})
}

func TestPrintMetrics(t *testing.T) {
	g, out, _ := testGlobals()
	err := printMetrics(context.Background(), g, scenarioSource(), "en", false, scenarioNow, dashboard.NewSlogTelemetry(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, "Total Responses: 5,845\nCompletion Rate: 78%\nLast sync: 15 minutes ago\n", out.String())
}

func TestPrintMetricsJSON(t *testing.T) {
	g, out, _ := testGlobals()
	err := printMetrics(context.Background(), g, scenarioSource(), "en", true, scenarioNow, dashboard.NewSlogTelemetry(quietLogger()))
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"total_responses": "5,845"`)
	assert.Contains(t, out.String(), `"rows_total": 5845`)
}

func TestPrintMetricsFailure(t *testing.T) {
	g, out, errOut := testGlobals()
	source := scenarioSource()
	source.Fail(errors.New("status 404"))
	err := printMetrics(context.Background(), g, source, "en", false, scenarioNow, dashboard.NewSlogTelemetry(quietLogger()))
	require.Error(t, err)
	assert.ErrorIs(t, err, dashboard.ErrMetricsUnavailable)
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), dashboard.MetricsAdvisory)
}

func TestNewMetricsSource(t *testing.T) {
	source, err := newMetricsSource(config.MetricsConfig{Source: config.MetricsSourceFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &metrics.FileSource{}, source)

	source, err = newMetricsSource(config.MetricsConfig{Source: config.MetricsSourceHTTP, BaseURL: "https://example.com"})
	require.NoError(t, err)
	assert.IsType(t, &metrics.HTTPClient{}, source)

	_, err = newMetricsSource(config.MetricsConfig{Source: config.MetricsSourceHTTP})
	assert.Error(t, err)

	_, err = newMetricsSource(config.MetricsConfig{Source: "s3"})
	assert.Error(t, err)
}

func TestApplicationReadsMetricsFromDisk(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "metrics.json"),
		[]byte(`{"generated_at":"2025-08-16T12:00:00Z","rows_total":5845,"completion_rate_pct":78}`), 0o644))

	cfg := config.DefaultConfig()
	cfg.Metrics.Dir = dir
	app, err := newApplication(cfg, quietLogger())
	require.NoError(t, err)

	snapshot, err := app.service.Metrics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5845, *snapshot.RowsTotal)

	var buf bytes.Buffer
	viewer := dashboard.ViewerContext{UserID: "fr-1", Locale: "en"}
	require.NoError(t, app.controller.RenderTemplate(context.Background(), viewer, dashboard.PageOverview, &buf))
	assert.Contains(t, buf.String(), "5,845")
}

func TestApplicationLiveAuditRecordsActions(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Metrics.Source = config.MetricsSourceStatic
	cfg.Audit.Live = true
	app, err := newApplication(cfg, quietLogger())
	require.NoError(t, err)
	require.NotNil(t, app.recorder)

	viewer := dashboard.ViewerContext{UserID: "fr-1", Locale: "en"}
	_, err = app.executor.SavePreferences(context.Background(), commands.SavePreferencesInput{Viewer: viewer, ToggleDarkMode: true})
	require.NoError(t, err)
	_, err = app.executor.RefreshMetrics(context.Background(), commands.RefreshMetricsInput{Viewer: viewer})
	require.NoError(t, err)

	entries, err := app.recorder.Recent(context.Background(), viewer, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "insights.metrics.refresh", entries[0].Action)
	assert.Equal(t, "insights.preferences.save", entries[1].Action)
}

func TestListPages(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listPages(&buf, dashboard.NewCatalog(), "en", "/admin/dashboard"))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 8)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.Contains(t, buf.String(), "/admin/dashboard/pages/overview")
	assert.Contains(t, buf.String(), "system (inert)")
	assert.Contains(t, buf.String(), "(hidden)")
}

func TestShowRedactsSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "insights.yml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  source: http\n  base_url: https://insights.example.com\n  api_key: s3cret\n"), 0o644))

	g, out, _ := testGlobals()
	g.Config = path
	g.EnvFile = []string{filepath.Join(t.TempDir(), "missing.env")}
	require.NoError(t, (&showCmd{}).Run(g))

	assert.NotContains(t, out.String(), "s3cret")
	assert.Contains(t, out.String(), config.RedactedValue)
	assert.Contains(t, out.String(), "cache_ttl: 30s")
}
