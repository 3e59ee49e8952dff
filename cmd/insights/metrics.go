package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/httpapi"
)

type metricsCmd struct {
	JSON    bool          `help:"Print the snapshot and formatted values as JSON."`
	Locale  string        `help:"Locale used for number formatting; overrides dashboard.locale."`
	Timeout time.Duration `default:"15s" help:"Give up after this long."`
}

func (cmd *metricsCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	locale := cmd.Locale
	if locale == "" {
		locale = cfg.Dashboard.Locale
	}
	source, err := newMetricsSource(cfg.Metrics)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), cmd.Timeout)
	defer cancel()
	return printMetrics(ctx, g, source, locale, cmd.JSON, time.Now(), dashboard.NewSlogTelemetry(logger))
}

// printMetrics writes the KPI summary. A failed fetch prints the advisory and
// returns the error so the process exits non-zero.
func printMetrics(ctx context.Context, g *Globals, source dashboard.MetricsSource, locale string, asJSON bool, now time.Time, telemetry dashboard.Telemetry) error {
	snapshot, err := source.FetchMetrics(ctx)
	if err != nil {
		telemetry.Record(ctx, "dashboard.metrics.fetch_failed", map[string]any{"error": err.Error()})
		fmt.Fprintln(g.stderr(), dashboard.MetricsAdvisory)
		return fmt.Errorf("%w: %w", dashboard.ErrMetricsUnavailable, err)
	}
	if asJSON {
		enc := json.NewEncoder(g.stdout())
		enc.SetIndent("", "  ")
		return enc.Encode(httpapi.NewMetricsResponse(snapshot, locale, now))
	}
	summary := dashboard.SummarizeMetrics(snapshot, locale, now)
	fmt.Fprintf(g.stdout(), "Total Responses: %s\n", summary.TotalResponses)
	fmt.Fprintf(g.stdout(), "Completion Rate: %s\n", summary.CompletionRate)
	fmt.Fprintln(g.stdout(), summary.LastSync)
	return nil
}
