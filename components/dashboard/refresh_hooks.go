package dashboard

import (
	"context"
	"errors"
)

// RefreshHooks fans a dashboard event out to several hooks, e.g. the
// WebSocket broadcaster and a logging hook.
type RefreshHooks []RefreshHook

// DashboardUpdated notifies every hook and joins their errors.
func (hooks RefreshHooks) DashboardUpdated(ctx context.Context, event DashboardEvent) error {
	var errs []error
	for _, hook := range hooks {
		if hook == nil {
			continue
		}
		if err := hook.DashboardUpdated(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TelemetryRefreshHook records dashboard events through Telemetry.
type TelemetryRefreshHook struct {
	Telemetry Telemetry
}

// DashboardUpdated records the event.
func (h TelemetryRefreshHook) DashboardUpdated(ctx context.Context, event DashboardEvent) error {
	normalizeTelemetry(h.Telemetry).Record(ctx, "dashboard.refresh", map[string]any{
		"page":   event.Page,
		"reason": event.Reason,
	})
	return nil
}
