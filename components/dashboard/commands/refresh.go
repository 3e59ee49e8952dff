package commands

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// RefreshMetricsInput asks for a fresh metrics snapshot.
type RefreshMetricsInput struct {
	Viewer dashboard.ViewerContext `json:"viewer"`
}

type metricsRefresher interface {
	RefreshMetrics(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.MetricsSnapshot, error)
}

// RefreshMetricsCommand bypasses the metrics cache and notifies open dashboards.
type RefreshMetricsCommand struct {
	service   metricsRefresher
	telemetry Telemetry
}

// NewRefreshMetricsCommand creates the command.
func NewRefreshMetricsCommand(service metricsRefresher, telemetry Telemetry) *RefreshMetricsCommand {
	return &RefreshMetricsCommand{service: service, telemetry: normalizeTelemetry(telemetry)}
}

var _ gocommand.Commander[RefreshMetricsInput] = (*RefreshMetricsCommand)(nil)

// Execute refreshes the metrics snapshot.
func (c *RefreshMetricsCommand) Execute(ctx context.Context, msg RefreshMetricsInput) error {
	if c.service == nil {
		return errors.New("refresh command requires service")
	}
	snapshot, err := c.service.RefreshMetrics(ctx, msg.Viewer)
	if err != nil {
		return err
	}
	c.telemetry.Record(ctx, "dashboard.metrics.refresh", map[string]any{
		"user_id":      msg.Viewer.UserID,
		"generated_at": snapshot.GeneratedAt,
	})
	return nil
}
