package dashboard

import (
	"context"
	"time"
)

// overviewKPIs renders the Overview KPI row. The two live tiles come from the
// metrics resource; any failure is logged and replaced by the advisory banner.
func overviewKPIs(ctx context.Context, meta WidgetContext) (WidgetData, error) {
	locale := meta.Viewer.Locale
	now := meta.Now
	if now.IsZero() {
		now = time.Now()
	}

	totalLabel := translateOrFallback(ctx, meta.Translator, "insights.kpi.total_responses", locale, "Total Responses", nil)
	rateLabel := translateOrFallback(ctx, meta.Translator, "insights.kpi.completion_rate", locale, "Completion Rate", nil)
	target := stringValue(meta.Instance.Configuration["completion_target"])

	total := map[string]any{"label": totalLabel, "value": MetricsPlaceholder, "sub": FormatLastSync("", now)}
	rate := map[string]any{"label": rateLabel, "value": MetricsPlaceholder}
	if target != "" {
		rate["sub"] = target
	}

	data := WidgetData{"advisory": ""}

	snapshot, err := fetchMetrics(ctx, meta.Metrics)
	if err != nil {
		normalizeTelemetry(meta.Telemetry).Record(ctx, "dashboard.metrics.fetch_failed", map[string]any{
			"page":  meta.Page,
			"error": err.Error(),
		})
		data["advisory"] = translateOrFallback(ctx, meta.Translator, "insights.metrics.advisory", locale, MetricsAdvisory, nil)
	} else {
		summary := SummarizeMetrics(snapshot, locale, now)
		total["value"] = summary.TotalResponses
		total["sub"] = summary.LastSync
		rate["value"] = summary.CompletionRate
		data["generated_at"] = snapshot.GeneratedAt
	}

	tiles := []map[string]any{total, rate}
	tiles = append(tiles, labelValueList(meta.Instance.Configuration["static_tiles"])...)
	data["tiles"] = tiles
	return data, nil
}

func fetchMetrics(ctx context.Context, source MetricsSource) (MetricsSnapshot, error) {
	if source == nil {
		return MetricsSnapshot{}, errMissingMetricsSource
	}
	return source.FetchMetrics(ctx)
}
