package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	router "github.com/goliatone/go-router"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/gorouter"
	"github.com/goliatone/go-insights/pkg/goadmin"
)

type serveCmd struct {
	Addr string `help:"Listen address; overrides server.addr."`
}

func (cmd *serveCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	if cmd.Addr != "" {
		cfg.Server.Addr = cmd.Addr
	}
	app, err := newApplication(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	admin, err := goadmin.New(goadmin.Config{
		EnableDashboard: true,
		Service:         app.service,
		MenuBuilder:     logMenuBuilder{logger: logger},
		Locale:          cfg.Dashboard.Locale,
	})
	if err != nil {
		return err
	}
	if err := admin.Bootstrap(ctx); err != nil {
		return err
	}

	server := router.NewFiberAdapter()
	if err := gorouter.Register(gorouter.Config[*fiber.App]{
		Router:     server.Router(),
		Controller: app.controller,
		Pages:      app.service,
		API:        app.executor,
		Broadcast:  app.broadcast,
		BasePath:   cfg.Server.BasePath,
		ViewerResolver: func(rc router.Context) dashboard.ViewerContext {
			viewer := gorouter.DefaultViewerResolver(rc)
			if viewer.Locale == dashboard.DefaultLocale && cfg.Dashboard.Locale != "" {
				viewer.Locale = cfg.Dashboard.Locale
			}
			return viewer
		},
	}); err != nil {
		return fmt.Errorf("register routes: %w", err)
	}

	logger.Info("dashboard ready",
		slog.String("addr", cfg.Server.Addr),
		slog.String("url", cfg.Server.BasePath+"/dashboard"),
		slog.String("metrics_source", string(cfg.Metrics.Source)),
		slog.Bool("live_audit", cfg.Audit.Live),
	)

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Serve(cfg.Server.Addr)
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg.Server.ShutdownTimeout))
		defer cancel()
		logger.Info("shutting down")
		return server.Shutdown(shutdownCtx)
	})
	return group.Wait()
}

func shutdownTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return 5 * time.Second
	}
	return d
}

// logMenuBuilder reports menu entries a host admin would create.
type logMenuBuilder struct {
	logger *slog.Logger
}

func (b logMenuBuilder) EnsureMenuItem(ctx context.Context, menuCode string, item goadmin.MenuItem) error {
	b.logger.LogAttrs(ctx, slog.LevelDebug, "menu item",
		slog.String("menu", menuCode),
		slog.String("code", item.Code),
		slog.String("route", item.Route),
	)
	return nil
}
