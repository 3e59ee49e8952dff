package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/httpapi"
	"github.com/goliatone/go-insights/internal/config"
	"github.com/goliatone/go-insights/pkg/activity"
	"github.com/goliatone/go-insights/pkg/activity/usersink"
	dashboardpkg "github.com/goliatone/go-insights/pkg/dashboard"
	"github.com/goliatone/go-insights/pkg/metrics"
)

// application holds the wired dashboard for one process.
type application struct {
	cfg        *config.Config
	logger     *slog.Logger
	catalog    *dashboard.Catalog
	registry   *dashboard.Registry
	service    *dashboard.Service
	controller *dashboard.Controller
	broadcast  *dashboard.BroadcastHook
	executor   *httpapi.CommandExecutor
	recorder   *usersink.Recorder
}

func newApplication(cfg *config.Config, logger *slog.Logger) (*application, error) {
	catalog := dashboard.NewCatalog()
	registry := dashboard.NewRegistry()
	if err := dashboard.Bootstrap(dashboard.BootstrapOptions{
		Catalog:      catalog,
		Registry:     registry,
		ManifestPath: cfg.Dashboard.Manifest,
	}); err != nil {
		return nil, fmt.Errorf("bootstrap pages: %w", err)
	}

	source, err := newMetricsSource(cfg.Metrics)
	if err != nil {
		return nil, err
	}
	if cfg.Metrics.CacheTTL > 0 {
		source = dashboard.NewCachedMetricsSource(source, cfg.Metrics.CacheTTL)
	}

	telemetry := dashboard.NewSlogTelemetry(logger)
	broadcast := dashboard.NewBroadcastHook()
	app := &application{
		cfg:       cfg,
		logger:    logger,
		catalog:   catalog,
		registry:  registry,
		broadcast: broadcast,
	}

	hooks := activity.Hooks{activityLogHook(logger)}
	var audit dashboard.AuditFeed
	if cfg.Audit.Live {
		app.recorder = usersink.NewRecorder(cfg.Audit.Capacity)
		hooks = append(hooks, usersink.Hook{Sink: app.recorder})
		audit = app.recorder
	}

	app.service = dashboardpkg.NewService(dashboardpkg.Options{
		Catalog:        catalog,
		Providers:      registry,
		Metrics:        source,
		Audit:          audit,
		Telemetry:      telemetry,
		RefreshHook:    dashboard.RefreshHooks{broadcast, dashboard.TelemetryRefreshHook{Telemetry: telemetry}},
		ActivityHooks:  hooks,
		ActivityConfig: cfg.Activity,
		BasePath:       cfg.Server.BasePath + "/dashboard",
	})

	renderer, err := dashboard.NewTemplateRenderer()
	if err != nil {
		return nil, fmt.Errorf("template renderer: %w", err)
	}
	app.controller = dashboard.NewController(dashboard.ControllerOptions{
		Service:  app.service,
		Renderer: renderer,
		Title:    cfg.Dashboard.Title,
	})
	app.executor = httpapi.NewCommandExecutor(app.service, telemetry)
	return app, nil
}

// newMetricsSource builds the uncached source selected by cfg.
func newMetricsSource(cfg config.MetricsConfig) (dashboard.MetricsSource, error) {
	switch cfg.Source {
	case config.MetricsSourceHTTP:
		client, err := metrics.NewHTTPClient(metrics.HTTPConfig{
			BaseURL:    cfg.BaseURL,
			Path:       cfg.Path,
			APIKey:     cfg.APIKey,
			HTTPClient: &http.Client{Timeout: cfg.Timeout},
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.MetricsSourceStatic:
		return metrics.NewStaticSource(demoSnapshot(time.Now())), nil
	case config.MetricsSourceFile, "":
		return metrics.NewDirSource(cfg.Dir, cfg.Path), nil
	default:
		return nil, fmt.Errorf("unknown metrics source %q", cfg.Source)
	}
}

func demoSnapshot(now time.Time) dashboard.MetricsSnapshot {
	total := int64(5845)
	rate := 78.0
	return dashboard.MetricsSnapshot{
		GeneratedAt:       now.Add(-15 * time.Minute).UTC().Format(time.RFC3339),
		RowsTotal:         &total,
		CompletionRatePct: &rate,
	}
}

func activityLogHook(logger *slog.Logger) activity.Hook {
	return activity.HookFunc(func(ctx context.Context, evt activity.Event) error {
		logger.LogAttrs(ctx, slog.LevelDebug, "activity",
			slog.String("verb", evt.Verb),
			slog.String("actor", evt.ActorID),
			slog.String("object_type", evt.ObjectType),
			slog.String("object_id", evt.ObjectID),
		)
		return nil
	})
}
