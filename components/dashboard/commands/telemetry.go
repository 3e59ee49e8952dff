package commands

import (
	"context"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// Telemetry allows commands to emit structured events. It shares the
// dashboard contract so one SlogTelemetry serves both layers.
type Telemetry = dashboard.Telemetry

type noopTelemetry struct{}

func (noopTelemetry) Record(context.Context, string, map[string]any) {}

func normalizeTelemetry(t Telemetry) Telemetry {
	if t == nil {
		return noopTelemetry{}
	}
	return t
}
