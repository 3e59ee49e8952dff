package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/commands"
)

// ViewerFunc extracts the viewer from a request.
type ViewerFunc func(r *http.Request) dashboard.ViewerContext

// Handlers exposes net/http endpoints backed by shared commands.
type Handlers struct {
	Executor Executor
	Viewer   ViewerFunc
	Now      func() time.Time
}

// PreferencesRequest is the body of the preferences endpoint.
type PreferencesRequest struct {
	DarkMode       *bool  `json:"dark_mode,omitempty"`
	ToggleDarkMode bool   `json:"toggle_dark_mode,omitempty"`
	ActivePage     string `json:"active_page,omitempty"`
}

// Input converts the request body into the command message for viewer.
func (p PreferencesRequest) Input(viewer dashboard.ViewerContext) commands.SavePreferencesInput {
	return commands.SavePreferencesInput{
		Viewer:         viewer,
		DarkMode:       p.DarkMode,
		ToggleDarkMode: p.ToggleDarkMode,
		ActivePage:     p.ActivePage,
	}
}

// MetricsResponse is the JSON view of a metrics snapshot.
type MetricsResponse struct {
	Snapshot dashboard.MetricsSnapshot `json:"snapshot"`
	Summary  dashboard.MetricsSummary  `json:"summary"`
}

// NewMetricsResponse formats snapshot for viewer at now.
func NewMetricsResponse(snapshot dashboard.MetricsSnapshot, locale string, now time.Time) MetricsResponse {
	return MetricsResponse{
		Snapshot: snapshot,
		Summary:  dashboard.SummarizeMetrics(snapshot, locale, now),
	}
}

// HandleSavePreferences updates the viewer's toggles and echoes the result.
func (h *Handlers) HandleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var payload PreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteError(w, http.StatusBadRequest, err)
		return
	}
	prefs, err := h.Executor.SavePreferences(r.Context(), payload.Input(h.viewer(r)))
	if err != nil {
		WriteError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, prefs)
}

// HandleRefreshMetrics re-fetches metrics bypassing the cache.
func (h *Handlers) HandleRefreshMetrics(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(r)
	snapshot, err := h.Executor.RefreshMetrics(r.Context(), commands.RefreshMetricsInput{Viewer: viewer})
	if err != nil {
		WriteError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusAccepted, NewMetricsResponse(snapshot, viewer.Locale, h.now()))
}

// HandleMetrics returns the cached metrics snapshot.
func (h *Handlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	viewer := h.viewer(r)
	snapshot, err := h.Executor.Metrics(r.Context())
	if err != nil {
		WriteError(w, StatusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, NewMetricsResponse(snapshot, viewer.Locale, h.now()))
}

func (h *Handlers) viewer(r *http.Request) dashboard.ViewerContext {
	if h.Viewer == nil {
		return dashboard.ViewerContext{}
	}
	return h.Viewer(r)
}

func (h *Handlers) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// StatusFor maps dashboard errors to HTTP status codes. Metrics failures are
// upstream problems and surface as 502.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, dashboard.ErrUnknownPage):
		return http.StatusNotFound
	case errors.Is(err, dashboard.ErrMissingViewer):
		return http.StatusBadRequest
	case errors.Is(err, dashboard.ErrMetricsUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes {"error": "..."}.
func WriteError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
