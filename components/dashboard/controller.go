package dashboard

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/ettle/strcase"
)

// PageService is the subset of Service used by the controller.
type PageService interface {
	ResolvePage(ctx context.Context, viewer ViewerContext, code string) (Page, error)
	Navigation(ctx context.Context, viewer ViewerContext, active string) []NavItem
	Preferences(ctx context.Context, viewer ViewerContext) (ViewerPreferences, error)
}

// ControllerOptions configures the controller.
type ControllerOptions struct {
	Service  PageService
	Renderer Renderer
	Template string
	Title    string
	Brand    string
	Theme    *ThemeSelection
}

// Controller turns resolved pages into HTML and JSON views.
type Controller struct {
	opts ControllerOptions
}

var errMissingRenderer = errors.New("dashboard: renderer not configured")

// NewController wires the service into a controller.
func NewController(opts ControllerOptions) *Controller {
	if opts.Template == "" {
		opts.Template = DefaultTemplate
	}
	if opts.Title == "" {
		opts.Title = "EBRS Insights"
	}
	if opts.Brand == "" {
		opts.Brand = "EBRS Insights"
	}
	if opts.Theme == nil {
		opts.Theme = DefaultTheme()
	}
	return &Controller{opts: opts}
}

// RenderTemplate renders page for viewer into out.
func (c *Controller) RenderTemplate(ctx context.Context, viewer ViewerContext, page string, out io.Writer) error {
	if c.opts.Renderer == nil {
		return errMissingRenderer
	}
	view, err := c.PagePayload(ctx, viewer, page)
	if err != nil {
		return err
	}
	_, err = c.opts.Renderer.Render(c.opts.Template, view, out)
	return err
}

// PagePayload builds the template view of page. JSON transports return it as is.
func (c *Controller) PagePayload(ctx context.Context, viewer ViewerContext, page string) (map[string]any, error) {
	if c.opts.Service == nil {
		return nil, errors.New("dashboard: service not configured")
	}
	prefs, err := c.opts.Service.Preferences(ctx, viewer)
	if err != nil {
		return nil, err
	}
	resolved, err := c.opts.Service.ResolvePage(ctx, viewer, page)
	if err != nil {
		return nil, err
	}
	nav := c.opts.Service.Navigation(ctx, viewer, resolved.Code)

	widgets := make([]map[string]any, 0, len(resolved.Widgets))
	for _, w := range resolved.Widgets {
		var data any = WidgetData{}
		if v, ok := w.Metadata["data"]; ok {
			data = v
		}
		widgets = append(widgets, map[string]any{
			"id":         w.ID,
			"definition": w.DefinitionID,
			"kind":       WidgetKind(w.DefinitionID),
			"config":     w.Configuration,
			"data":       data,
		})
	}

	return map[string]any{
		"title":         c.opts.Title,
		"brand":         c.opts.Brand,
		"dark":          prefs.DarkMode,
		"wrapper_class": WrapperClass(prefs.DarkMode),
		"theme_css":     c.opts.Theme.CSSVariablesInline(),
		"locale":        viewer.Locale,
		"page": map[string]any{
			"code":       resolved.Code,
			"label":      resolved.Label,
			"breadcrumb": resolved.Breadcrumb,
		},
		"breadcrumb": resolved.Breadcrumb,
		"nav":        navSections(nav),
		"widgets":    widgets,
	}, nil
}

// WidgetKind derives the template partial key from a definition code
// ("insights.widget.overview_kpis" → "overview-kpis").
func WidgetKind(definition string) string {
	if idx := strings.LastIndex(definition, "."); idx >= 0 {
		definition = definition[idx+1:]
	}
	return strcase.ToKebab(definition)
}

func navSections(items []NavItem) map[string][]NavItem {
	sections := map[string][]NavItem{
		SectionMain:   {},
		SectionSystem: {},
	}
	for _, item := range items {
		sections[item.Section] = append(sections[item.Section], item)
	}
	return sections
}
