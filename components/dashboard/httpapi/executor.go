package httpapi

import (
	"context"
	"errors"

	gocommand "github.com/goliatone/go-command"
	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/components/dashboard/commands"
	"github.com/goliatone/go-insights/components/dashboard/queries"
)

// Executor runs dashboard mutations for transports and returns the state they
// should echo back.
type Executor interface {
	SavePreferences(ctx context.Context, input commands.SavePreferencesInput) (dashboard.ViewerPreferences, error)
	RefreshMetrics(ctx context.Context, input commands.RefreshMetricsInput) (dashboard.MetricsSnapshot, error)
	Metrics(ctx context.Context) (dashboard.MetricsSnapshot, error)
}

// CommandExecutor implements Executor on top of go-command handlers.
type CommandExecutor struct {
	Preferences      gocommand.Commander[commands.SavePreferencesInput]
	Refresh          gocommand.Commander[commands.RefreshMetricsInput]
	PreferencesQuery gocommand.Querier[dashboard.ViewerContext, dashboard.ViewerPreferences]
	MetricsQuery     gocommand.Querier[queries.MetricsInput, dashboard.MetricsSnapshot]
}

var _ Executor = (*CommandExecutor)(nil)

var errNotConfigured = errors.New("httpapi: handler not configured")

// NewCommandExecutor wires the default commands and queries against service.
func NewCommandExecutor(service *dashboard.Service, telemetry dashboard.Telemetry) *CommandExecutor {
	return &CommandExecutor{
		Preferences:      commands.NewSavePreferencesCommand(service, telemetry),
		Refresh:          commands.NewRefreshMetricsCommand(service, telemetry),
		PreferencesQuery: queries.NewPreferencesQuery(service),
		MetricsQuery:     queries.NewMetricsQuery(service),
	}
}

// SavePreferences executes the preferences command and reads back the result.
func (e *CommandExecutor) SavePreferences(ctx context.Context, input commands.SavePreferencesInput) (dashboard.ViewerPreferences, error) {
	if e.Preferences == nil || e.PreferencesQuery == nil {
		return dashboard.ViewerPreferences{}, errNotConfigured
	}
	if err := e.Preferences.Execute(ctx, input); err != nil {
		return dashboard.ViewerPreferences{}, err
	}
	return e.PreferencesQuery.Query(ctx, input.Viewer)
}

// RefreshMetrics executes the refresh command and reads back the snapshot.
func (e *CommandExecutor) RefreshMetrics(ctx context.Context, input commands.RefreshMetricsInput) (dashboard.MetricsSnapshot, error) {
	if e.Refresh == nil {
		return dashboard.MetricsSnapshot{}, errNotConfigured
	}
	if err := e.Refresh.Execute(ctx, input); err != nil {
		return dashboard.MetricsSnapshot{}, err
	}
	return e.Metrics(ctx)
}

// Metrics runs the metrics query.
func (e *CommandExecutor) Metrics(ctx context.Context) (dashboard.MetricsSnapshot, error) {
	if e.MetricsQuery == nil {
		return dashboard.MetricsSnapshot{}, errNotConfigured
	}
	return e.MetricsQuery.Query(ctx, queries.MetricsInput{})
}
