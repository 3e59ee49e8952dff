package dashboard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goliatone/go-insights/pkg/activity"
)

// DefaultBasePath prefixes dashboard routes when none is configured.
const DefaultBasePath = "/admin/dashboard"

var (
	// ErrUnknownPage is returned when a page code has no routable page.
	ErrUnknownPage = errors.New("dashboard: unknown page")
	// ErrMissingViewer is returned when a preference change has no user to belong to.
	ErrMissingViewer = errors.New("dashboard: viewer context missing user id")
)

// Options configures the dashboard Service. Every collaborator is provided via
// interface so hosts can swap implementations without touching the core.
type Options struct {
	Catalog         PageCatalog
	Providers       ProviderRegistry
	PreferenceStore PreferenceStore
	Metrics         MetricsSource
	Audit           AuditFeed
	Roster          ResearcherRoster
	Translator      TranslationService
	RefreshHook     RefreshHook
	Telemetry       Telemetry
	ActivityHooks   activity.Hooks
	ActivityConfig  activity.Config
	BasePath        string
	Now             func() time.Time
}

// Service resolves pages, navigation and viewer preferences for the dashboard.
type Service struct {
	opts     Options
	activity *activity.Emitter
}

// NewService builds a Service instance with safe defaults.
func NewService(opts Options) *Service {
	if opts.Catalog == nil {
		opts.Catalog = NewCatalog()
	}
	if opts.RefreshHook == nil {
		opts.RefreshHook = noopRefreshHook{}
	}
	if opts.Providers == nil {
		opts.Providers = NewRegistry()
	}
	if opts.PreferenceStore == nil {
		opts.PreferenceStore = NewInMemoryPreferenceStore()
	}
	if opts.Audit == nil {
		opts.Audit = DefaultAuditFeed()
	}
	if opts.Roster == nil {
		opts.Roster = DefaultRoster()
	}
	if opts.BasePath == "" {
		opts.BasePath = DefaultBasePath
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	opts.Telemetry = normalizeTelemetry(opts.Telemetry)
	return &Service{
		opts:     opts,
		activity: activity.NewEmitter(opts.ActivityHooks, opts.ActivityConfig),
	}
}

// Catalog exposes the page catalog backing the service.
func (s *Service) Catalog() PageCatalog {
	return s.opts.Catalog
}

// Providers exposes the widget registry.
func (s *Service) Providers() ProviderRegistry {
	return s.opts.Providers
}

// BasePath returns the route prefix used for sidebar links.
func (s *Service) BasePath() string {
	return s.opts.BasePath
}

// ResolvePage returns the page registered under code with provider data
// attached to each widget. The page becomes the viewer's active page.
func (s *Service) ResolvePage(ctx context.Context, viewer ViewerContext, code string) (Page, error) {
	def, ok := s.opts.Catalog.Page(code)
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, code)
	}
	locale := viewer.Locale
	page := Page{
		Code:       def.Code,
		Label:      def.LabelForLocale(locale),
		Breadcrumb: BreadcrumbLabel(s.opts.Catalog, def.Code, locale),
		Widgets:    s.attachProviderData(ctx, viewer, def.Code, def.Widgets),
	}
	if viewer.UserID != "" {
		if err := s.rememberActivePage(ctx, viewer, def.Code); err != nil {
			return Page{}, err
		}
	}
	s.recordTelemetry(ctx, "dashboard.page.resolve", map[string]any{
		"viewer":  viewer.UserID,
		"page":    def.Code,
		"widgets": len(page.Widgets),
	})
	return page, nil
}

// ActivePage returns the viewer's last resolved page, or the first routable
// page in the catalog.
func (s *Service) ActivePage(ctx context.Context, viewer ViewerContext) (string, error) {
	prefs, err := s.Preferences(ctx, viewer)
	if err != nil {
		return "", err
	}
	if prefs.ActivePage != "" {
		if _, ok := s.opts.Catalog.Page(prefs.ActivePage); ok {
			return prefs.ActivePage, nil
		}
	}
	for _, page := range s.opts.Catalog.Pages() {
		if page.Inert || page.Hidden {
			continue
		}
		return page.Code, nil
	}
	return "", ErrUnknownPage
}

// Navigation lists the sidebar entries with active flagged.
func (s *Service) Navigation(_ context.Context, viewer ViewerContext, active string) []NavItem {
	return BuildNavigation(s.opts.Catalog, active, viewer.Locale, s.opts.BasePath)
}

// Preferences returns the viewer's UI toggles.
func (s *Service) Preferences(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error) {
	return s.opts.PreferenceStore.Preferences(ctx, viewer)
}

// SavePreferences persists the viewer's UI toggles.
func (s *Service) SavePreferences(ctx context.Context, viewer ViewerContext, prefs ViewerPreferences) error {
	if viewer.UserID == "" {
		return ErrMissingViewer
	}
	if err := s.checkActivePage(prefs.ActivePage); err != nil {
		return err
	}
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, prefs); err != nil {
		return err
	}
	s.preferencesSaved(ctx, viewer, prefs)
	return nil
}

// UpdatePreferences applies fn to the viewer's stored preferences and saves
// the result. The read and write are one step when the store implements
// PreferenceUpdater.
func (s *Service) UpdatePreferences(ctx context.Context, viewer ViewerContext, fn func(*ViewerPreferences)) (ViewerPreferences, error) {
	return s.applyPreferences(ctx, viewer, func(prefs ViewerPreferences) (ViewerPreferences, bool) {
		if fn != nil {
			fn(&prefs)
		}
		return prefs, true
	})
}

// SetDarkMode stores an explicit dark mode choice.
func (s *Service) SetDarkMode(ctx context.Context, viewer ViewerContext, enabled bool) (ViewerPreferences, error) {
	return s.applyPreferences(ctx, viewer, func(prefs ViewerPreferences) (ViewerPreferences, bool) {
		if prefs.DarkMode == enabled {
			return prefs, false
		}
		prefs.DarkMode = enabled
		return prefs, true
	})
}

// ToggleDarkMode flips the viewer's dark mode flag.
func (s *Service) ToggleDarkMode(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error) {
	return s.applyPreferences(ctx, viewer, func(prefs ViewerPreferences) (ViewerPreferences, bool) {
		prefs.DarkMode = !prefs.DarkMode
		return prefs, true
	})
}

// Metrics reads the current metrics snapshot.
func (s *Service) Metrics(ctx context.Context) (MetricsSnapshot, error) {
	snapshot, err := fetchMetrics(ctx, s.opts.Metrics)
	if err != nil {
		s.recordTelemetry(ctx, "dashboard.metrics.fetch_failed", map[string]any{"error": err.Error()})
		return MetricsSnapshot{}, fmt.Errorf("%w: %w", ErrMetricsUnavailable, err)
	}
	return snapshot, nil
}

// RefreshMetrics drops any cached snapshot, fetches a new one and notifies
// transports so open dashboards can reload.
func (s *Service) RefreshMetrics(ctx context.Context, viewer ViewerContext) (MetricsSnapshot, error) {
	if inv, ok := s.opts.Metrics.(interface{ Invalidate() }); ok {
		inv.Invalidate()
	}
	snapshot, err := s.Metrics(ctx)
	if err != nil {
		return MetricsSnapshot{}, err
	}
	if err := s.NotifyDashboardUpdated(ctx, DashboardEvent{
		Page:   PageOverview,
		Reason: "metrics.refresh",
		Payload: map[string]any{
			"generated_at": snapshot.GeneratedAt,
		},
	}); err != nil {
		return MetricsSnapshot{}, err
	}
	s.emitActivity(ctx, activity.Event{
		Verb:       "insights.metrics.refresh",
		ActorID:    viewer.UserID,
		UserID:     viewer.UserID,
		ObjectType: "metrics",
		ObjectID:   MetricsPath,
		Metadata: map[string]any{
			"generated_at": snapshot.GeneratedAt,
			"details":      snapshot.GeneratedAt,
		},
	})
	return snapshot, nil
}

// NotifyDashboardUpdated exposes refresh hook invocation for commands/transports.
func (s *Service) NotifyDashboardUpdated(ctx context.Context, event DashboardEvent) error {
	if err := s.opts.RefreshHook.DashboardUpdated(ctx, event); err != nil {
		return err
	}
	s.recordTelemetry(ctx, "dashboard.event", map[string]any{
		"page":      event.Page,
		"widget_id": event.WidgetID,
		"reason":    event.Reason,
	})
	return nil
}

func (s *Service) rememberActivePage(ctx context.Context, viewer ViewerContext, code string) error {
	_, _, err := s.modifyPreferences(ctx, viewer, func(prefs ViewerPreferences) (ViewerPreferences, bool) {
		if prefs.ActivePage == code {
			return prefs, false
		}
		prefs.ActivePage = code
		return prefs, true
	})
	return err
}

func (s *Service) applyPreferences(ctx context.Context, viewer ViewerContext, fn func(ViewerPreferences) (ViewerPreferences, bool)) (ViewerPreferences, error) {
	prefs, changed, err := s.modifyPreferences(ctx, viewer, fn)
	if err != nil {
		return ViewerPreferences{}, err
	}
	if changed {
		s.preferencesSaved(ctx, viewer, prefs)
	}
	return prefs, nil
}

// modifyPreferences runs a read-modify-write against the store, atomically
// when the store supports it.
func (s *Service) modifyPreferences(ctx context.Context, viewer ViewerContext, fn func(ViewerPreferences) (ViewerPreferences, bool)) (ViewerPreferences, bool, error) {
	step := func(current ViewerPreferences) (ViewerPreferences, bool, error) {
		next, changed := fn(current)
		if !changed {
			return current, false, nil
		}
		if viewer.UserID == "" {
			return current, false, ErrMissingViewer
		}
		if err := s.checkActivePage(next.ActivePage); err != nil {
			return current, false, err
		}
		return next, true, nil
	}
	if updater, ok := s.opts.PreferenceStore.(PreferenceUpdater); ok && viewer.UserID != "" {
		return updater.UpdatePreferences(ctx, viewer, step)
	}
	current, err := s.opts.PreferenceStore.Preferences(ctx, viewer)
	if err != nil {
		return ViewerPreferences{}, false, err
	}
	next, changed, err := step(current)
	if err != nil || !changed {
		return current, false, err
	}
	if err := s.opts.PreferenceStore.SavePreferences(ctx, viewer, next); err != nil {
		return ViewerPreferences{}, false, err
	}
	return next, true, nil
}

func (s *Service) checkActivePage(code string) error {
	if code == "" {
		return nil
	}
	if _, ok := s.opts.Catalog.Page(code); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPage, code)
	}
	return nil
}

func (s *Service) preferencesSaved(ctx context.Context, viewer ViewerContext, prefs ViewerPreferences) {
	s.recordTelemetry(ctx, "dashboard.preferences.save", map[string]any{
		"viewer":      viewer.UserID,
		"dark_mode":   prefs.DarkMode,
		"active_page": prefs.ActivePage,
	})
	s.emitActivity(ctx, activity.Event{
		Verb:       "insights.preferences.save",
		ActorID:    viewer.UserID,
		UserID:     viewer.UserID,
		ObjectType: "preferences",
		ObjectID:   viewer.UserID,
		Metadata: map[string]any{
			"dark_mode":   prefs.DarkMode,
			"active_page": prefs.ActivePage,
			"details":     darkModeDetails(prefs.DarkMode),
		},
	})
}

func (s *Service) attachProviderData(ctx context.Context, viewer ViewerContext, page string, widgets []WidgetInstance) []WidgetInstance {
	enriched := make([]WidgetInstance, len(widgets))
	for i, inst := range widgets {
		enriched[i] = inst
		enriched[i].Metadata = cloneMetadata(inst.Metadata)
		provider, ok := s.opts.Providers.Provider(inst.DefinitionID)
		if !ok || provider == nil {
			continue
		}
		data, err := provider.Fetch(ctx, WidgetContext{
			Instance:   inst,
			Viewer:     viewer,
			Page:       page,
			Metrics:    s.opts.Metrics,
			Audit:      s.opts.Audit,
			Roster:     s.opts.Roster,
			Translator: s.opts.Translator,
			Telemetry:  s.opts.Telemetry,
			Now:        s.opts.Now(),
		})
		if err != nil {
			s.recordTelemetry(ctx, "dashboard.widget.provider_error", map[string]any{
				"page":          page,
				"widget_id":     inst.ID,
				"definition_id": inst.DefinitionID,
				"error":         err.Error(),
			})
			continue
		}
		enriched[i].Metadata["data"] = data
	}
	return enriched
}

func (s *Service) recordTelemetry(ctx context.Context, event string, payload map[string]any) {
	s.opts.Telemetry.Record(ctx, event, payload)
}

func (s *Service) emitActivity(ctx context.Context, evt activity.Event) {
	if err := s.activity.Emit(ctx, evt); err != nil {
		s.recordTelemetry(ctx, "dashboard.activity.error", map[string]any{
			"verb":  evt.Verb,
			"error": err.Error(),
		})
	}
}

func cloneMetadata(meta map[string]any) map[string]any {
	out := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func darkModeDetails(on bool) string {
	if on {
		return "dark mode on"
	}
	return "dark mode off"
}

type noopRefreshHook struct{}

func (noopRefreshHook) DashboardUpdated(context.Context, DashboardEvent) error {
	return nil
}
