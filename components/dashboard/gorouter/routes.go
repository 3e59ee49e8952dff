package gorouter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	router "github.com/goliatone/go-router"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/commands"
	"github.com/goliatone/go-insights/components/dashboard/httpapi"
)

// GuestUserID identifies viewers the host did not authenticate.
const GuestUserID = "guest"

// ViewerResolver converts a router.Context into a dashboard.ViewerContext.
type ViewerResolver func(router.Context) dashboard.ViewerContext

// PageState is the subset of dashboard.Service the HTML routes need beyond
// the controller.
type PageState interface {
	ActivePage(ctx context.Context, viewer dashboard.ViewerContext) (string, error)
	SetDarkMode(ctx context.Context, viewer dashboard.ViewerContext, enabled bool) (dashboard.ViewerPreferences, error)
}

// Config wires go-router with the insights controller, API and refresh stream.
type Config[T any] struct {
	Router         router.Router[T]
	Controller     *dashboard.Controller
	Pages          PageState
	API            httpapi.Executor
	Broadcast      *dashboard.BroadcastHook
	ViewerResolver ViewerResolver
	BasePath       string
	Routes         RouteConfig
	Now            func() time.Time
}

// RouteConfig customizes the relative paths used for dashboard endpoints.
type RouteConfig struct {
	Home        string
	Page        string
	PageJSON    string
	Metrics     string
	Refresh     string
	Preferences string
	WebSocket   string
}

// Mux is the part of router.Router the dashboard registers against.
type Mux interface {
	Get(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	Post(path string, handler router.HandlerFunc, mw ...router.MiddlewareFunc) router.RouteInfo
	WebSocket(path string, cfg router.WebSocketConfig, handler func(router.WebSocketContext) error) router.RouteInfo
}

// Register mounts dashboard routes (HTML, JSON, WebSocket) on a go-router router.
func Register[T any](cfg Config[T]) error {
	if cfg.Router == nil {
		return errors.New("gorouter: router is required")
	}
	base := cfg.BasePath
	if base == "" {
		base = "/admin"
	}
	return Mount(cfg.Router.Group(base), Handlers{
		Controller: cfg.Controller,
		Pages:      cfg.Pages,
		API:        cfg.API,
		Broadcast:  cfg.Broadcast,
		Viewer:     cfg.ViewerResolver,
		Routes:     cfg.Routes,
		Now:        cfg.Now,
	})
}

// Handlers groups the route handlers around their collaborators.
type Handlers struct {
	Controller *dashboard.Controller
	Pages      PageState
	API        httpapi.Executor
	Broadcast  *dashboard.BroadcastHook
	Viewer     ViewerResolver
	Routes     RouteConfig
	Now        func() time.Time
}

// Mount registers the handlers on mux.
func Mount(mux Mux, h Handlers) error {
	if mux == nil {
		return errors.New("gorouter: router is required")
	}
	if h.Controller == nil {
		return errors.New("gorouter: controller is required")
	}
	if h.Viewer == nil {
		h.Viewer = DefaultViewerResolver
	}
	if h.Now == nil {
		h.Now = time.Now
	}
	routes := defaultRouteConfig(h.Routes)

	mux.Get(routes.Home, router.WrapHandler(func(ctx router.Context) error {
		return h.Home(ctx, h.Viewer(ctx))
	}))
	mux.Get(routes.Page, router.WrapHandler(func(ctx router.Context) error {
		return h.Page(ctx, h.Viewer(ctx), ctx.Param("page"), ctx.Query("theme"))
	}))
	mux.Get(routes.PageJSON, router.WrapHandler(func(ctx router.Context) error {
		return h.PageJSON(ctx, h.Viewer(ctx), ctx.Param("page"))
	}))

	if h.API != nil {
		mux.Get(routes.Metrics, router.WrapHandler(func(ctx router.Context) error {
			return h.Metrics(ctx, h.Viewer(ctx))
		}))
		mux.Post(routes.Refresh, router.WrapHandler(func(ctx router.Context) error {
			return h.RefreshMetrics(ctx, h.Viewer(ctx))
		}))
		mux.Post(routes.Preferences, router.WrapHandler(func(ctx router.Context) error {
			return h.SavePreferences(ctx, h.Viewer(ctx))
		}))
	}

	if h.Broadcast != nil {
		mux.WebSocket(routes.WebSocket, router.DefaultWebSocketConfig(), func(ws router.WebSocketContext) error {
			err := h.Broadcast.Stream(ws.Context(), func(event dashboard.DashboardEvent) error {
				return ws.WriteJSON(event)
			})
			if closeErr := ws.Close(); err == nil {
				err = closeErr
			}
			return err
		})
	}
	return nil
}

// Responder is the part of router.Context the handlers write through.
type Responder interface {
	Context() context.Context
	Body() []byte
	SetHeader(key, value string) router.Context
	Send(body []byte) error
	JSON(code int, v any) error
}

// Home renders the viewer's active page.
func (h Handlers) Home(ctx Responder, viewer dashboard.ViewerContext) error {
	if h.Pages == nil {
		return h.Page(ctx, viewer, dashboard.PageOverview, "")
	}
	code, err := h.Pages.ActivePage(ctx.Context(), viewer)
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return h.Page(ctx, viewer, code, "")
}

// Page renders code as HTML. theme "dark" or "light" stores the choice first.
func (h Handlers) Page(ctx Responder, viewer dashboard.ViewerContext, code, theme string) error {
	if dark, ok := parseTheme(theme); ok && h.Pages != nil {
		if _, err := h.Pages.SetDarkMode(ctx.Context(), viewer, dark); err != nil {
			return respondError(ctx, httpapi.StatusFor(err), err)
		}
	}
	var buf bytes.Buffer
	if err := h.Controller.RenderTemplate(ctx.Context(), viewer, code, &buf); err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	ctx.SetHeader("Content-Type", "text/html; charset=utf-8")
	return ctx.Send(buf.Bytes())
}

// PageJSON returns the page view model.
func (h Handlers) PageJSON(ctx Responder, viewer dashboard.ViewerContext, code string) error {
	payload, err := h.Controller.PagePayload(ctx.Context(), viewer, code)
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, payload)
}

// Metrics returns the current snapshot with formatted KPI values.
func (h Handlers) Metrics(ctx Responder, viewer dashboard.ViewerContext) error {
	snapshot, err := h.API.Metrics(ctx.Context())
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, httpapi.NewMetricsResponse(snapshot, viewer.Locale, h.Now()))
}

// RefreshMetrics bypasses the metrics cache and notifies subscribers.
func (h Handlers) RefreshMetrics(ctx Responder, viewer dashboard.ViewerContext) error {
	snapshot, err := h.API.RefreshMetrics(ctx.Context(), commands.RefreshMetricsInput{Viewer: viewer})
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusAccepted, httpapi.NewMetricsResponse(snapshot, viewer.Locale, h.Now()))
}

// SavePreferences applies a preferences request body for viewer.
func (h Handlers) SavePreferences(ctx Responder, viewer dashboard.ViewerContext) error {
	var payload httpapi.PreferencesRequest
	if body := ctx.Body(); len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &payload); err != nil {
			return respondError(ctx, http.StatusBadRequest, err)
		}
	}
	prefs, err := h.API.SavePreferences(ctx.Context(), payload.Input(viewer))
	if err != nil {
		return respondError(ctx, httpapi.StatusFor(err), err)
	}
	return ctx.JSON(http.StatusOK, prefs)
}

// ViewerSource is the part of router.Context the default resolver reads.
type ViewerSource interface {
	Locals(key any, value ...any) any
	Query(name string, defaultValue ...string) string
	Header(key string) string
}

// DefaultViewerResolver reads user_id, roles and locale from locals, falling
// back to the guest viewer and the Accept-Language header.
func DefaultViewerResolver(ctx router.Context) dashboard.ViewerContext {
	return ResolveViewer(ctx)
}

// ResolveViewer builds a viewer from request state.
func ResolveViewer(ctx ViewerSource) dashboard.ViewerContext {
	viewer := dashboard.ViewerContext{UserID: GuestUserID}
	if v, ok := ctx.Locals("user_id").(string); ok && v != "" {
		viewer.UserID = v
	}
	if roles, ok := ctx.Locals("roles").([]string); ok {
		viewer.Roles = roles
	}
	viewer.Locale = inferLocale(ctx)
	return viewer
}

func inferLocale(ctx ViewerSource) string {
	if locale, ok := ctx.Locals("locale").(string); ok && locale != "" {
		return locale
	}
	if locale := strings.TrimSpace(ctx.Query("locale")); locale != "" {
		return strings.ToLower(locale)
	}
	if header := ctx.Header("Accept-Language"); header != "" {
		if lang := parseAcceptLanguage(header); lang != "" {
			return lang
		}
	}
	return dashboard.DefaultLocale
}

func parseAcceptLanguage(header string) string {
	for _, token := range strings.Split(header, ",") {
		token = strings.TrimSpace(token)
		if idx := strings.Index(token, ";"); idx >= 0 {
			token = token[:idx]
		}
		if token != "" && token != "*" {
			return strings.ToLower(token)
		}
	}
	return ""
}

func parseTheme(theme string) (dark bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	}
	return false, false
}

func respondError(ctx Responder, status int, err error) error {
	return ctx.JSON(status, map[string]string{"error": err.Error()})
}

func defaultRouteConfig(routes RouteConfig) RouteConfig {
	if routes.Home == "" {
		routes.Home = "/dashboard"
	}
	if routes.Page == "" {
		routes.Page = "/dashboard/pages/:page"
	}
	if routes.PageJSON == "" {
		routes.PageJSON = "/dashboard/api/pages/:page"
	}
	if routes.Metrics == "" {
		routes.Metrics = "/dashboard/api/metrics"
	}
	if routes.Refresh == "" {
		routes.Refresh = "/dashboard/api/metrics/refresh"
	}
	if routes.Preferences == "" {
		routes.Preferences = "/dashboard/api/preferences"
	}
	if routes.WebSocket == "" {
		routes.WebSocket = "/dashboard/ws"
	}
	return routes
}
