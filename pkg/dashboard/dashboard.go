package dashboard

import (
	core "github.com/goliatone/go-insights/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// ViewerContext re-export for hosts building viewers.
type ViewerContext = core.ViewerContext

// NavItem re-export for menu integrations.
type NavItem = core.NavItem

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}
