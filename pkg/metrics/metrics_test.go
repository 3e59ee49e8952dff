package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioJSON = `{"generated_at":"2025-08-16T12:00:00Z","rows_total":5845,"completion_rate_pct":78}`

func TestHTTPClientFetchMetrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/metrics.json" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Fatalf("unexpected method %s", r.Method)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Fatalf("expected auth header, got %s", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(scenarioJSON))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL + "/", APIKey: "secret"})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/data/metrics.json", client.URL())

	snapshot, err := client.FetchMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-08-16T12:00:00Z", snapshot.GeneratedAt)
	require.NotNil(t, snapshot.RowsTotal)
	assert.EqualValues(t, 5845, *snapshot.RowsTotal)
	require.NotNil(t, snapshot.CompletionRatePct)
	assert.InDelta(t, 78.0, *snapshot.CompletionRatePct, 0.0001)
}

func TestHTTPClientNon2xxIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchMetrics(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPClientMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"rows_total":"many"`))
	}))
	t.Cleanup(server.Close)

	client, err := NewHTTPClient(HTTPConfig{BaseURL: server.URL})
	require.NoError(t, err)
	_, err = client.FetchMetrics(context.Background())
	assert.Error(t, err)
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	_, err := NewHTTPClient(HTTPConfig{})
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	fsys := fstest.MapFS{
		"data/metrics.json": &fstest.MapFile{Data: []byte(scenarioJSON)},
	}
	snapshot, err := NewFileSource(fsys, "").FetchMetrics(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 5845, *snapshot.RowsTotal)

	_, err = NewFileSource(fstest.MapFS{}, "").FetchMetrics(context.Background())
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource(fsys, "").FetchMetrics(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDirSource(t *testing.T) {
	_, err := NewDirSource(t.TempDir(), "").FetchMetrics(context.Background())
	assert.Error(t, err)
}

func TestStaticSource(t *testing.T) {
	source := NewStaticSource(dashboardSnapshot())
	snapshot, err := source.FetchMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2025-08-16T12:00:00Z", snapshot.GeneratedAt)

	boom := errors.New("boom")
	source.Fail(boom)
	_, err = source.FetchMetrics(context.Background())
	assert.ErrorIs(t, err, boom)

	source.Set(dashboardSnapshot())
	_, err = source.FetchMetrics(context.Background())
	assert.NoError(t, err)
}

func dashboardSnapshot() dashboard.MetricsSnapshot {
	total := int64(5845)
	return dashboard.MetricsSnapshot{GeneratedAt: "2025-08-16T12:00:00Z", RowsTotal: &total}
}
