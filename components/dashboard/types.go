package dashboard

import "context"

// PageCatalog stores the pages reachable from the dashboard sidebar.
// Implementations ensure thread safety.
type PageCatalog interface {
	Page(code string) (PageDefinition, bool)
	Pages() []PageDefinition
}

// PreferenceStore returns per-viewer UI toggles (active page, dark mode).
type PreferenceStore interface {
	Preferences(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error)
	SavePreferences(ctx context.Context, viewer ViewerContext, prefs ViewerPreferences) error
}

// ProviderRegistry stores widget definitions/providers discoverable via hooks or manifests.
type ProviderRegistry interface {
	RegisterDefinition(def WidgetDefinition) error
	RegisterProvider(code string, provider Provider) error
	Definition(code string) (WidgetDefinition, bool)
	Provider(code string) (Provider, bool)
	Definitions() []WidgetDefinition
}

// RefreshHook notifies transports (REST/WebSocket) about dashboard changes.
type RefreshHook interface {
	DashboardUpdated(ctx context.Context, event DashboardEvent) error
}

// PageDefinition describes a sidebar entry and the widgets rendered on its page.
type PageDefinition struct {
	Code                string            `json:"code" yaml:"code"`
	Label               string            `json:"label" yaml:"label"`
	LabelLocalized      map[string]string `json:"label_localized,omitempty" yaml:"label_localized,omitempty"`
	Breadcrumb          string            `json:"breadcrumb,omitempty" yaml:"breadcrumb,omitempty"`
	BreadcrumbLocalized map[string]string `json:"breadcrumb_localized,omitempty" yaml:"breadcrumb_localized,omitempty"`
	Icon                string            `json:"icon,omitempty" yaml:"icon,omitempty"`
	Section             string            `json:"section,omitempty" yaml:"section,omitempty"`
	Position            int               `json:"position" yaml:"position"`
	// Hidden pages are routable but never listed in the sidebar.
	Hidden bool `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	// Inert entries are listed in the sidebar but have no page behind them.
	Inert   bool             `json:"inert,omitempty" yaml:"inert,omitempty"`
	Widgets []WidgetInstance `json:"widgets,omitempty" yaml:"widgets,omitempty"`
}

// WidgetDefinition describes a widget kind and the schema of its configuration.
type WidgetDefinition struct {
	Code        string         `json:"code" yaml:"code"`
	Name        string         `json:"name" yaml:"name"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Schema      map[string]any `json:"schema,omitempty" yaml:"schema,omitempty"`
	Category    string         `json:"category,omitempty" yaml:"category,omitempty"`
}

// WidgetInstance places a configured widget on a page.
type WidgetInstance struct {
	ID            string         `json:"id" yaml:"id"`
	DefinitionID  string         `json:"definition" yaml:"definition"`
	Configuration map[string]any `json:"configuration,omitempty" yaml:"configuration,omitempty"`
	Metadata      map[string]any `json:"metadata,omitempty" yaml:"-"`
}

// Page is a resolved page ready to render.
type Page struct {
	Code       string           `json:"code"`
	Label      string           `json:"label"`
	Breadcrumb string           `json:"breadcrumb"`
	Widgets    []WidgetInstance `json:"widgets"`
}

// NavItem is a single sidebar entry.
type NavItem struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Icon    string `json:"icon,omitempty"`
	Section string `json:"section,omitempty"`
	Href    string `json:"href,omitempty"`
	Active  bool   `json:"active"`
}

// ViewerPreferences captures the local UI toggles of a viewer.
type ViewerPreferences struct {
	DarkMode   bool   `json:"dark_mode"`
	ActivePage string `json:"active_page,omitempty"`
	Locale     string `json:"locale,omitempty"`
}

// ViewerContext captures the active user/locale information needed to render dashboards.
type ViewerContext struct {
	UserID string
	Roles  []string
	Locale string
}

// DashboardEvent describes changes that transports might care about.
type DashboardEvent struct {
	Page     string         `json:"page,omitempty"`
	WidgetID string         `json:"widget_id,omitempty"`
	Reason   string         `json:"reason"`
	Payload  map[string]any `json:"payload,omitempty"`
}
