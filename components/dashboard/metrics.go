package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// MetricsPath is the fixed relative location of the metrics resource.
const MetricsPath = "data/metrics.json"

// MetricsAdvisory is shown in place of live KPIs whenever the metrics resource cannot be read.
const MetricsAdvisory = "Metrics are unavailable right now. Values below are placeholders until data/metrics.json is generated."

// MetricsPlaceholder is rendered for numeric KPIs without a value.
const MetricsPlaceholder = "—"

var (
	// ErrMetricsUnavailable wraps every failure to read the metrics resource.
	ErrMetricsUnavailable   = errors.New("dashboard: metrics unavailable")
	errMissingMetricsSource = errors.New("dashboard: metrics source not configured")
)

// MetricsSource loads the metrics snapshot produced by the data pipeline.
type MetricsSource interface {
	FetchMetrics(ctx context.Context) (MetricsSnapshot, error)
}

// MetricsSourceFunc adapts a function into a MetricsSource.
type MetricsSourceFunc func(ctx context.Context) (MetricsSnapshot, error)

// FetchMetrics calls f(ctx).
func (f MetricsSourceFunc) FetchMetrics(ctx context.Context) (MetricsSnapshot, error) {
	return f(ctx)
}

// MetricsSnapshot mirrors metrics.json. Numeric fields are optional; the
// pipeline writes null completion rates for empty inputs.
type MetricsSnapshot struct {
	GeneratedAt       string   `json:"generated_at"`
	RowsTotal         *int64   `json:"rows_total,omitempty"`
	RowsCompleted     *int64   `json:"rows_completed,omitempty"`
	CompletionRatePct *float64 `json:"completion_rate_pct,omitempty"`
	FilesProcessed    []string `json:"files_processed,omitempty"`
}

var metricsSchema = WidgetDefinition{
	Code: "insights.metrics",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"generated_at":        map[string]any{"type": "string"},
			"rows_total":          map[string]any{"type": []string{"integer", "null"}},
			"rows_completed":      map[string]any{"type": []string{"integer", "null"}},
			"completion_rate_pct": map[string]any{"type": []string{"number", "null"}},
			"files_processed": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
	},
}

var metricsValidator = NewJSONSchemaValidator()

// DecodeMetrics parses and validates a metrics.json payload.
func DecodeMetrics(data []byte) (MetricsSnapshot, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return MetricsSnapshot{}, fmt.Errorf("dashboard: parse metrics: %w", err)
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return MetricsSnapshot{}, fmt.Errorf("dashboard: metrics payload must be a JSON object")
	}
	if err := metricsValidator.Validate(metricsSchema, payload); err != nil {
		return MetricsSnapshot{}, err
	}
	var wire metricsWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return MetricsSnapshot{}, fmt.Errorf("dashboard: decode metrics: %w", err)
	}
	snapshot := MetricsSnapshot{
		GeneratedAt:       wire.GeneratedAt,
		CompletionRatePct: wire.CompletionRatePct,
		FilesProcessed:    wire.FilesProcessed,
	}
	var err error
	if snapshot.RowsTotal, err = integerField("rows_total", wire.RowsTotal); err != nil {
		return MetricsSnapshot{}, err
	}
	if snapshot.RowsCompleted, err = integerField("rows_completed", wire.RowsCompleted); err != nil {
		return MetricsSnapshot{}, err
	}
	return snapshot, nil
}

// metricsWire keeps counts as json.Number so integral values written with a
// fraction ("5845.0") decode the same way the schema accepts them.
type metricsWire struct {
	GeneratedAt       string       `json:"generated_at"`
	RowsTotal         *json.Number `json:"rows_total"`
	RowsCompleted     *json.Number `json:"rows_completed"`
	CompletionRatePct *float64     `json:"completion_rate_pct"`
	FilesProcessed    []string     `json:"files_processed"`
}

func integerField(name string, n *json.Number) (*int64, error) {
	if n == nil {
		return nil, nil
	}
	if v, err := n.Int64(); err == nil {
		return &v, nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || f > math.MaxInt64 || f < math.MinInt64 {
		return nil, fmt.Errorf("dashboard: decode metrics: %s is not an integer: %s", name, n.String())
	}
	v := int64(f)
	return &v, nil
}
