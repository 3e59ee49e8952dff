package dashboard

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// DefaultBreadcrumb is shown when no page matches the active selection.
const DefaultBreadcrumb = "Dashboard"

// Catalog implements PageCatalog with manifest support.
type Catalog struct {
	mu    sync.RWMutex
	pages map[string]PageDefinition
}

// NewCatalog builds a catalog seeded with the default pages.
func NewCatalog() *Catalog {
	c := NewEmptyCatalog()
	for _, page := range DefaultPages() {
		_ = c.Register(page)
	}
	return c
}

// NewEmptyCatalog builds a catalog without pages.
func NewEmptyCatalog() *Catalog {
	return &Catalog{pages: map[string]PageDefinition{}}
}

// Register stores or replaces a page definition.
func (c *Catalog) Register(page PageDefinition) error {
	page.Code = strings.TrimSpace(page.Code)
	if page.Code == "" {
		return fmt.Errorf("dashboard: page code is required")
	}
	if page.Label == "" {
		return fmt.Errorf("dashboard: page %s label is required", page.Code)
	}
	page.normalizeLocalizedFields()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[page.Code] = page
	return nil
}

// Reset removes every page.
func (c *Catalog) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = map[string]PageDefinition{}
}

// Page fetches a routable page by code. Inert entries are never routable.
func (c *Catalog) Page(code string) (PageDefinition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page, ok := c.pages[code]
	if !ok || page.Inert {
		return PageDefinition{}, false
	}
	return page, true
}

// Pages returns every page ordered by position then code.
func (c *Catalog) Pages() []PageDefinition {
	c.mu.RLock()
	defer c.mu.RUnlock()
	pages := make([]PageDefinition, 0, len(c.pages))
	for _, page := range c.pages {
		pages = append(pages, page)
	}
	sortPages(pages)
	return pages
}

// Breadcrumb returns the breadcrumb label for code, or DefaultBreadcrumb when unknown.
func (c *Catalog) Breadcrumb(code, locale string) string {
	return BreadcrumbLabel(c, code, locale)
}

// BreadcrumbLabel resolves the breadcrumb for a page code against any catalog.
func BreadcrumbLabel(catalog PageCatalog, code, locale string) string {
	if catalog == nil {
		return DefaultBreadcrumb
	}
	page, ok := catalog.Page(code)
	if !ok {
		return DefaultBreadcrumb
	}
	if label := page.BreadcrumbForLocale(locale); label != "" {
		return label
	}
	return DefaultBreadcrumb
}

// BuildNavigation lists the sidebar entries of catalog, flagging active.
func BuildNavigation(catalog PageCatalog, active, locale, basePath string) []NavItem {
	if catalog == nil {
		return nil
	}
	pages := catalog.Pages()
	items := make([]NavItem, 0, len(pages))
	for _, page := range pages {
		if page.Hidden {
			continue
		}
		section := page.Section
		if section == "" {
			section = SectionMain
		}
		item := NavItem{
			Code:    page.Code,
			Label:   page.LabelForLocale(locale),
			Icon:    page.Icon,
			Section: section,
		}
		if !page.Inert {
			item.Href = PageHref(basePath, page.Code)
			item.Active = page.Code == active
		}
		items = append(items, item)
	}
	return items
}

// PageHref returns the HTML route for a page under basePath.
func PageHref(basePath, code string) string {
	return strings.TrimRight(basePath, "/") + "/pages/" + code
}

func sortPages(pages []PageDefinition) {
	sort.SliceStable(pages, func(i, j int) bool {
		if pages[i].Position != pages[j].Position {
			return pages[i].Position < pages[j].Position
		}
		return pages[i].Code < pages[j].Code
	})
}
