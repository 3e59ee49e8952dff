package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/goliatone/go-insights/components/dashboard"
	"github.com/goliatone/go-insights/internal/logging"
)

type pagesCmd struct {
	List   pagesListCmd   `cmd:"" default:"1" help:"List sidebar pages."`
	Export pagesExportCmd `cmd:"" help:"Write the page catalog as a YAML manifest."`
}

type pagesListCmd struct{}

func (cmd *pagesListCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	app, err := newApplication(cfg, logger)
	if err != nil {
		return err
	}
	return listPages(g.stdout(), app.catalog, cfg.Dashboard.Locale, cfg.Server.BasePath+"/dashboard")
}

func listPages(w io.Writer, catalog dashboard.PageCatalog, locale, basePath string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tLABEL\tBREADCRUMB\tSECTION\tROUTE\tWIDGETS")
	for _, page := range catalog.Pages() {
		route := dashboard.PageHref(basePath, page.Code)
		var flags []string
		if page.Inert {
			route = "-"
			flags = append(flags, "inert")
		}
		if page.Hidden {
			flags = append(flags, "hidden")
		}
		section := page.Section
		if section == "" {
			section = dashboard.SectionMain
		}
		if len(flags) > 0 {
			section += " (" + strings.Join(flags, ",") + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			page.Code,
			page.LabelForLocale(locale),
			dashboard.BreadcrumbLabel(catalog, page.Code, locale),
			section,
			route,
			len(page.Widgets),
		)
	}
	return tw.Flush()
}

type pagesExportCmd struct {
	Out  string `short:"o" type:"path" help:"Write to this file instead of stdout."`
	Name string `default:"ebrs-insights" help:"Manifest name."`
}

func (cmd *pagesExportCmd) Run(g *Globals) error {
	cfg, logger, err := g.load()
	if err != nil {
		return err
	}
	app, err := newApplication(cfg, logger)
	if err != nil {
		return err
	}
	doc := dashboard.NewManifest(cmd.Name, app.catalog)
	if cmd.Out == "" {
		return dashboard.EncodeManifest(g.stdout(), doc)
	}
	f, err := os.Create(cmd.Out)
	if err != nil {
		return fmt.Errorf("create %s: %w", cmd.Out, err)
	}
	defer logging.SafeClose(f, logger, "manifest export")
	if err := dashboard.EncodeManifest(f, doc); err != nil {
		return err
	}
	fmt.Fprintf(g.stderr(), "wrote %d pages to %s\n", len(doc.Pages), cmd.Out)
	return nil
}
