package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExecutor struct {
	lastPrefs    commands.SavePreferencesInput
	prefs        dashboard.ViewerPreferences
	snapshot     dashboard.MetricsSnapshot
	err          error
	refreshCalls int
}

func (s *stubExecutor) SavePreferences(_ context.Context, input commands.SavePreferencesInput) (dashboard.ViewerPreferences, error) {
	s.lastPrefs = input
	return s.prefs, s.err
}

func (s *stubExecutor) RefreshMetrics(context.Context, commands.RefreshMetricsInput) (dashboard.MetricsSnapshot, error) {
	s.refreshCalls++
	return s.snapshot, s.err
}

func (s *stubExecutor) Metrics(context.Context) (dashboard.MetricsSnapshot, error) {
	return s.snapshot, s.err
}

var fixedNow = time.Date(2025, time.August, 16, 12, 15, 0, 0, time.UTC)

func scenarioSnapshot() dashboard.MetricsSnapshot {
	total := int64(5845)
	rate := 78.0
	return dashboard.MetricsSnapshot{GeneratedAt: "2025-08-16T12:00:00Z", RowsTotal: &total, CompletionRatePct: &rate}
}

func newHandlers(exec Executor) *Handlers {
	return &Handlers{
		Executor: exec,
		Viewer: func(*http.Request) dashboard.ViewerContext {
			return dashboard.ViewerContext{UserID: "fr-1", Locale: "en"}
		},
		Now: func() time.Time { return fixedNow },
	}
}

func TestHandleSavePreferences(t *testing.T) {
	exec := &stubExecutor{prefs: dashboard.ViewerPreferences{DarkMode: true}}
	api := newHandlers(exec)
	req := httptest.NewRequest(http.MethodPost, "/preferences", bytes.NewBufferString(`{"toggle_dark_mode":true,"active_page":"audit"}`))
	rec := httptest.NewRecorder()
	api.HandleSavePreferences(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, exec.lastPrefs.ToggleDarkMode)
	assert.Equal(t, "audit", exec.lastPrefs.ActivePage)
	assert.Equal(t, "fr-1", exec.lastPrefs.Viewer.UserID)

	var body dashboard.ViewerPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.DarkMode)
}

func TestHandleSavePreferencesBadBody(t *testing.T) {
	api := newHandlers(&stubExecutor{})
	rec := httptest.NewRecorder()
	api.HandleSavePreferences(rec, httptest.NewRequest(http.MethodPost, "/preferences", bytes.NewBufferString("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

func TestHandleSavePreferencesUnknownPage(t *testing.T) {
	api := newHandlers(&stubExecutor{err: dashboard.ErrUnknownPage})
	rec := httptest.NewRecorder()
	api.HandleSavePreferences(rec, httptest.NewRequest(http.MethodPost, "/preferences", bytes.NewBufferString(`{"active_page":"x"}`)))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleMetrics(t *testing.T) {
	api := newHandlers(&stubExecutor{snapshot: scenarioSnapshot()})
	rec := httptest.NewRecorder()
	api.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body MetricsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "5,845", body.Summary.TotalResponses)
	assert.Equal(t, "78%", body.Summary.CompletionRate)
	assert.Equal(t, "Last sync: 15 minutes ago", body.Summary.LastSync)
	assert.EqualValues(t, 5845, *body.Snapshot.RowsTotal)
}

func TestHandleMetricsUnavailable(t *testing.T) {
	err := errors.Join(dashboard.ErrMetricsUnavailable, errors.New("status 404"))
	api := newHandlers(&stubExecutor{err: err})
	rec := httptest.NewRecorder()
	api.HandleMetrics(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleRefreshMetrics(t *testing.T) {
	exec := &stubExecutor{snapshot: scenarioSnapshot()}
	api := newHandlers(exec)
	rec := httptest.NewRecorder()
	api.HandleRefreshMetrics(rec, httptest.NewRequest(http.MethodPost, "/metrics/refresh", nil))
	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, exec.refreshCalls)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, StatusFor(dashboard.ErrMissingViewer))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(errors.New("other")))
}

func TestCommandExecutorAgainstService(t *testing.T) {
	hook := dashboard.NewBroadcastHook()
	events, cancel := hook.Subscribe()
	defer cancel()
	service := dashboard.NewService(dashboard.Options{
		RefreshHook: hook,
		Metrics: dashboard.MetricsSourceFunc(func(context.Context) (dashboard.MetricsSnapshot, error) {
			return scenarioSnapshot(), nil
		}),
	})
	exec := NewCommandExecutor(service, nil)
	viewer := dashboard.ViewerContext{UserID: "fr-1"}

	prefs, err := exec.SavePreferences(context.Background(), commands.SavePreferencesInput{Viewer: viewer, ToggleDarkMode: true})
	require.NoError(t, err)
	assert.True(t, prefs.DarkMode)

	snapshot, err := exec.RefreshMetrics(context.Background(), commands.RefreshMetricsInput{Viewer: viewer})
	require.NoError(t, err)
	assert.Equal(t, "2025-08-16T12:00:00Z", snapshot.GeneratedAt)
	select {
	case evt := <-events:
		assert.Equal(t, "metrics.refresh", evt.Reason)
	default:
		t.Fatalf("expected refresh broadcast")
	}
}

func TestCommandExecutorNotConfigured(t *testing.T) {
	exec := &CommandExecutor{}
	_, err := exec.Metrics(context.Background())
	assert.Error(t, err)
	_, err = exec.SavePreferences(context.Background(), commands.SavePreferencesInput{})
	assert.Error(t, err)
	_, err = exec.RefreshMetrics(context.Background(), commands.RefreshMetricsInput{})
	assert.Error(t, err)
}
