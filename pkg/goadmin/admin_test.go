package goadmin_test

import (
	"context"
	"errors"
	"testing"

	core "github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/pkg/activity"
	dashboardpkg "github.com/goliatone/go-insights/pkg/dashboard"
	"github.com/goliatone/go-insights/pkg/goadmin"
)

type stubMenuBuilder struct {
	items []goadmin.MenuItem
	menus []string
	err   error
}

func (s *stubMenuBuilder) EnsureMenuItem(_ context.Context, menu string, item goadmin.MenuItem) error {
	if s.err != nil {
		return s.err
	}
	s.menus = append(s.menus, menu)
	s.items = append(s.items, item)
	return nil
}

func TestAdminBootstrapSeedsOneEntryPerPage(t *testing.T) {
	builder := &stubMenuBuilder{}
	capture := &activity.CaptureHook{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     builder,
		ActivityHooks:   activity.Hooks{capture},
		ActivityConfig:  activity.Config{Enabled: true},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 5 {
		t.Fatalf("expected 5 menu entries, got %d", len(builder.items))
	}
	first := builder.items[0]
	if first.Code != core.PageOverview || first.Route != "/admin/dashboard/pages/overview" || first.Position != 0 {
		t.Fatalf("unexpected first entry %+v", first)
	}
	for _, item := range builder.items {
		if item.Code == core.PageResearcher || item.Code == core.PageSettings {
			t.Fatalf("unexpected entry %s", item.Code)
		}
	}
	if builder.menus[0] != "admin.main" {
		t.Fatalf("expected default menu code, got %s", builder.menus[0])
	}
	if len(capture.Events) != 1 || capture.Events[0].Verb != "insights.menu.bootstrap" {
		t.Fatalf("expected bootstrap activity, got %#v", capture.Events)
	}
	if admin.Dashboard() == nil {
		t.Fatalf("expected dashboard service")
	}
}

func TestAdminBootstrapPropagatesBuilderError(t *testing.T) {
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         dashboardpkg.NewService(core.Options{}),
		MenuBuilder:     &stubMenuBuilder{err: errors.New("menu down")},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err == nil {
		t.Fatalf("expected builder error")
	}
}

func TestAdminRequiresServiceWhenEnabled(t *testing.T) {
	if _, err := goadmin.New(goadmin.Config{EnableDashboard: true}); err == nil {
		t.Fatalf("expected error without service")
	}
}

func TestAdminDisabledSkipsBootstrap(t *testing.T) {
	builder := &stubMenuBuilder{}
	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: false,
		MenuBuilder:     builder,
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := admin.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	if len(builder.items) != 0 {
		t.Fatalf("expected 0 calls, got %d", len(builder.items))
	}
	if admin.Dashboard() != nil || admin.MenuItems(context.Background()) != nil {
		t.Fatalf("expected nil dashboard when disabled")
	}
}
