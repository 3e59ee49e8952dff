package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/goliatone/go-insights/internal/config"
	"github.com/goliatone/go-insights/internal/logging"
)

// Globals are flags shared by every command.
type Globals struct {
	Config  string   `short:"c" default:"insights.yml" type:"path" help:"Path to the YAML config file."`
	EnvFile []string `name:"env-file" default:".env" help:"Dotenv files loaded before reading the environment."`

	out    io.Writer
	errOut io.Writer
}

type cli struct {
	Globals

	Serve   serveCmd   `cmd:"" help:"Serve the dashboard over HTTP."`
	Metrics metricsCmd `cmd:"" help:"Fetch the metrics resource and print the formatted KPIs."`
	Pages   pagesCmd   `cmd:"" help:"Inspect or export the page catalog."`
	Show    showCmd    `cmd:"" help:"Print the effective configuration as YAML."`
}

func main() {
	var app cli
	app.out = os.Stdout
	app.errOut = os.Stderr
	ctx := kong.Parse(&app,
		kong.Name("insights"),
		kong.Description("EBRS Insights admin dashboard."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&app.Globals)
	ctx.FatalIfErrorf(err)
}

func (g *Globals) stdout() io.Writer {
	if g.out == nil {
		return os.Stdout
	}
	return g.out
}

func (g *Globals) stderr() io.Writer {
	if g.errOut == nil {
		return os.Stderr
	}
	return g.errOut
}

// load reads dotenv files, the config file and the environment, then builds
// the logger the config asks for.
func (g *Globals) load() (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotenv(g.EnvFile...); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid config: %w", err)
	}
	logger, err := logging.New(g.stderr(), logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}
