package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// PageInput selects a page for a viewer.
type PageInput struct {
	Viewer dashboard.ViewerContext
	Page   string
}

type pageService interface {
	ResolvePage(ctx context.Context, viewer dashboard.ViewerContext, code string) (dashboard.Page, error)
}

// PageQuery executes read-only page resolution.
type PageQuery struct {
	service pageService
}

// NewPageQuery builds the query.
func NewPageQuery(service pageService) *PageQuery {
	return &PageQuery{service: service}
}

var _ gocommand.Querier[PageInput, dashboard.Page] = (*PageQuery)(nil)

// Query resolves the page for the viewer.
func (q *PageQuery) Query(ctx context.Context, input PageInput) (dashboard.Page, error) {
	return q.service.ResolvePage(ctx, input.Viewer, input.Page)
}

type preferencesService interface {
	Preferences(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error)
}

// PreferencesQuery reads the viewer's UI toggles.
type PreferencesQuery struct {
	service preferencesService
}

// NewPreferencesQuery builds the query.
func NewPreferencesQuery(service preferencesService) *PreferencesQuery {
	return &PreferencesQuery{service: service}
}

var _ gocommand.Querier[dashboard.ViewerContext, dashboard.ViewerPreferences] = (*PreferencesQuery)(nil)

// Query returns the stored preferences.
func (q *PreferencesQuery) Query(ctx context.Context, viewer dashboard.ViewerContext) (dashboard.ViewerPreferences, error) {
	return q.service.Preferences(ctx, viewer)
}
