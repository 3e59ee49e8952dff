package commands

import (
	"context"
	"errors"
	"sync"
	"testing"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

type stubTelemetry struct {
	calls  int
	events []string
}

func (s *stubTelemetry) Record(_ context.Context, event string, _ map[string]any) {
	s.calls++
	s.events = append(s.events, event)
}

type stubService struct {
	prefs        dashboard.ViewerPreferences
	saved        []dashboard.ViewerPreferences
	saveErr      error
	refreshCalls int
	refreshErr   error
}

func (s *stubService) UpdatePreferences(_ context.Context, _ dashboard.ViewerContext, fn func(*dashboard.ViewerPreferences)) (dashboard.ViewerPreferences, error) {
	if s.saveErr != nil {
		return dashboard.ViewerPreferences{}, s.saveErr
	}
	next := s.prefs
	fn(&next)
	s.saved = append(s.saved, next)
	s.prefs = next
	return next, nil
}

func (s *stubService) RefreshMetrics(context.Context, dashboard.ViewerContext) (dashboard.MetricsSnapshot, error) {
	s.refreshCalls++
	return dashboard.MetricsSnapshot{GeneratedAt: "2025-08-16T12:00:00Z"}, s.refreshErr
}

func TestSavePreferencesCommandToggle(t *testing.T) {
	service := &stubService{prefs: dashboard.ViewerPreferences{ActivePage: dashboard.PageAudit}}
	telemetry := &stubTelemetry{}
	cmd := NewSavePreferencesCommand(service, telemetry)
	viewer := dashboard.ViewerContext{UserID: "fr-1"}

	if err := cmd.Execute(context.Background(), SavePreferencesInput{Viewer: viewer, ToggleDarkMode: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !service.prefs.DarkMode || service.prefs.ActivePage != dashboard.PageAudit {
		t.Fatalf("unexpected preferences %+v", service.prefs)
	}
	if err := cmd.Execute(context.Background(), SavePreferencesInput{Viewer: viewer, ToggleDarkMode: true}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.prefs.DarkMode {
		t.Fatalf("expected second toggle to disable dark mode")
	}
	if telemetry.calls != 2 {
		t.Fatalf("expected telemetry per save, got %d", telemetry.calls)
	}
}

func TestSavePreferencesCommandExplicitValues(t *testing.T) {
	service := &stubService{}
	cmd := NewSavePreferencesCommand(service, nil)
	on := true
	err := cmd.Execute(context.Background(), SavePreferencesInput{
		Viewer:     dashboard.ViewerContext{UserID: "fr-1"},
		DarkMode:   &on,
		ActivePage: dashboard.PageField,
	})
	if err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !service.prefs.DarkMode || service.prefs.ActivePage != dashboard.PageField {
		t.Fatalf("unexpected preferences %+v", service.prefs)
	}
}

func TestSavePreferencesCommandValidation(t *testing.T) {
	if err := NewSavePreferencesCommand(nil, nil).Execute(context.Background(), SavePreferencesInput{}); err == nil {
		t.Fatalf("expected error without service")
	}
	if err := NewSavePreferencesCommand(&stubService{}, nil).Execute(context.Background(), SavePreferencesInput{}); err == nil {
		t.Fatalf("expected error without user id")
	}
	service := &stubService{saveErr: errors.New("store down")}
	err := NewSavePreferencesCommand(service, nil).Execute(context.Background(), SavePreferencesInput{Viewer: dashboard.ViewerContext{UserID: "u"}})
	if err == nil {
		t.Fatalf("expected store error")
	}
}

func TestSavePreferencesCommandAgainstService(t *testing.T) {
	service := dashboard.NewService(dashboard.Options{})
	cmd := NewSavePreferencesCommand(service, nil)
	viewer := dashboard.ViewerContext{UserID: "fr-1"}
	err := cmd.Execute(context.Background(), SavePreferencesInput{Viewer: viewer, ActivePage: "nope"})
	if !errors.Is(err, dashboard.ErrUnknownPage) {
		t.Fatalf("expected ErrUnknownPage, got %v", err)
	}
}

func TestRefreshMetricsCommand(t *testing.T) {
	service := &stubService{}
	telemetry := &stubTelemetry{}
	cmd := NewRefreshMetricsCommand(service, telemetry)
	if err := cmd.Execute(context.Background(), RefreshMetricsInput{}); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if service.refreshCalls != 1 {
		t.Fatalf("expected refresh call")
	}
	if len(telemetry.events) != 1 || telemetry.events[0] != "dashboard.metrics.refresh" {
		t.Fatalf("unexpected telemetry %v", telemetry.events)
	}
}

func TestRefreshMetricsCommandError(t *testing.T) {
	service := &stubService{refreshErr: errors.New("fetch failed")}
	telemetry := &stubTelemetry{}
	if err := NewRefreshMetricsCommand(service, telemetry).Execute(context.Background(), RefreshMetricsInput{}); err == nil {
		t.Fatalf("expected error")
	}
	if telemetry.calls != 0 {
		t.Fatalf("expected no telemetry on failure")
	}
}

func TestSavePreferencesCommandConcurrentUpdatesKeepBothFields(t *testing.T) {
	service := dashboard.NewService(dashboard.Options{})
	cmd := NewSavePreferencesCommand(service, nil)
	viewer := dashboard.ViewerContext{UserID: "fr-1"}
	on := true

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := cmd.Execute(context.Background(), SavePreferencesInput{Viewer: viewer, DarkMode: &on}); err != nil {
				t.Errorf("Execute returned error: %v", err)
			}
		}()
		go func() {
			defer wg.Done()
			if err := cmd.Execute(context.Background(), SavePreferencesInput{Viewer: viewer, ActivePage: dashboard.PageField}); err != nil {
				t.Errorf("Execute returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	prefs, err := service.Preferences(context.Background(), viewer)
	if err != nil {
		t.Fatalf("Preferences returned error: %v", err)
	}
	if !prefs.DarkMode || prefs.ActivePage != dashboard.PageField {
		t.Fatalf("lost an update: %+v", prefs)
	}
}
