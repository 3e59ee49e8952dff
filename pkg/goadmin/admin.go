package goadmin

import (
	"context"
	"errors"
	"fmt"

	activitypkg "github.com/goliatone/go-insights/pkg/activity"
	dashboardpkg "github.com/goliatone/go-insights/pkg/dashboard"
)

// MenuBuilder ensures dashboard entries exist within the admin navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures dashboard link metadata.
type MenuItem struct {
	Code     string
	Label    string
	Route    string
	Icon     string
	Section  string
	Position int
}

// Config wires dashboard service + feature flags into an admin shell.
type Config struct {
	EnableDashboard bool
	MenuCode        string
	MenuBuilder     MenuBuilder
	Service         *dashboardpkg.Service
	Locale          string
	ActivityHooks   activitypkg.Hooks
	ActivityConfig  activitypkg.Config
}

// Admin exposes helpers for go-admin style applications.
type Admin struct {
	cfg      Config
	activity *activitypkg.Emitter
}

// New creates an Admin helper that can seed dashboard menus.
func New(cfg Config) (*Admin, error) {
	if cfg.EnableDashboard && cfg.Service == nil {
		return nil, errors.New("goadmin: dashboard service is required when enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	return &Admin{
		cfg:      cfg,
		activity: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Dashboard exposes the configured dashboard service when enabled.
func (a *Admin) Dashboard() *dashboardpkg.Service {
	if !a.cfg.EnableDashboard {
		return nil
	}
	return a.cfg.Service
}

// MenuItems lists one entry per navigable dashboard page. Inert sidebar
// entries have no route and are left out.
func (a *Admin) MenuItems(ctx context.Context) []MenuItem {
	if !a.cfg.EnableDashboard {
		return nil
	}
	nav := a.cfg.Service.Navigation(ctx, dashboardpkg.ViewerContext{Locale: a.cfg.Locale}, "")
	items := make([]MenuItem, 0, len(nav))
	for _, entry := range nav {
		if entry.Href == "" {
			continue
		}
		items = append(items, MenuItem{
			Code:     entry.Code,
			Label:    entry.Label,
			Route:    entry.Href,
			Icon:     entry.Icon,
			Section:  entry.Section,
			Position: len(items),
		})
	}
	return items
}

// Bootstrap seeds menu entries when dashboard support is enabled.
func (a *Admin) Bootstrap(ctx context.Context) error {
	if !a.cfg.EnableDashboard || a.cfg.MenuBuilder == nil {
		return nil
	}
	items := a.MenuItems(ctx)
	for _, item := range items {
		if err := a.cfg.MenuBuilder.EnsureMenuItem(ctx, a.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("goadmin: ensure menu item %q: %w", item.Code, err)
		}
	}
	return a.activity.Emit(ctx, activitypkg.Event{
		Verb:       "insights.menu.bootstrap",
		ActorID:    "system",
		ObjectType: "menu",
		ObjectID:   a.cfg.MenuCode,
		Metadata:   map[string]any{"items": len(items)},
	})
}
