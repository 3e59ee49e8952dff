package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// MetricsInput is the (empty) metrics query message.
type MetricsInput struct{}

type metricsService interface {
	Metrics(ctx context.Context) (dashboard.MetricsSnapshot, error)
}

// MetricsQuery reads the current metrics snapshot through the cache.
type MetricsQuery struct {
	service metricsService
}

// NewMetricsQuery builds the query.
func NewMetricsQuery(service metricsService) *MetricsQuery {
	return &MetricsQuery{service: service}
}

var _ gocommand.Querier[MetricsInput, dashboard.MetricsSnapshot] = (*MetricsQuery)(nil)

// Query returns the metrics snapshot.
func (q *MetricsQuery) Query(ctx context.Context, _ MetricsInput) (dashboard.MetricsSnapshot, error) {
	return q.service.Metrics(ctx)
}
