package dashboard

import (
	"errors"
	"fmt"
)

// BootstrapOptions configures Bootstrap.
type BootstrapOptions struct {
	Catalog      *Catalog
	Registry     *Registry
	Validator    ConfigValidator
	ManifestPath string
}

// Bootstrap loads the optional page manifest and validates every page
// against the widget registry, so configuration errors surface at startup
// instead of on first render.
func Bootstrap(opts BootstrapOptions) error {
	if opts.Catalog == nil {
		return errors.New("dashboard: catalog is required to bootstrap")
	}
	if opts.Registry == nil {
		opts.Registry = NewRegistry()
	}
	if opts.Validator == nil {
		opts.Validator = NewJSONSchemaValidator()
	}
	if opts.ManifestPath != "" {
		doc, err := ReadManifest(opts.ManifestPath)
		if err != nil {
			return err
		}
		if err := opts.Registry.LoadManifestDocument(doc); err != nil {
			return err
		}
		if err := opts.Catalog.LoadManifestDocument(doc); err != nil {
			return err
		}
	}
	var errs []error
	for _, page := range opts.Catalog.Pages() {
		if err := ValidatePage(page, opts.Registry, opts.Validator); err != nil {
			errs = append(errs, fmt.Errorf("page %s: %w", page.Code, err))
		}
	}
	return errors.Join(errs...)
}
