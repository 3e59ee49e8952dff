package dashboard

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// PageManifestDocument models a YAML manifest describing the sidebar pages
// and any extra widget definitions they use.
type PageManifestDocument struct {
	Version string             `json:"version" yaml:"version"`
	Name    string             `json:"name,omitempty" yaml:"name,omitempty"`
	Widgets []WidgetDefinition `json:"widgets,omitempty" yaml:"widgets,omitempty"`
	Pages   []PageDefinition   `json:"pages" yaml:"pages"`
	Source  string             `json:"-" yaml:"-"`
}

// NewManifest snapshots the pages of catalog into a manifest document.
func NewManifest(name string, catalog PageCatalog) *PageManifestDocument {
	doc := &PageManifestDocument{Version: manifestVersionV1, Name: name}
	if catalog != nil {
		doc.Pages = catalog.Pages()
	}
	return doc
}

// LoadManifestFile reads a manifest from disk and replaces the catalog pages with it.
func (c *Catalog) LoadManifestFile(path string) (*PageManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := c.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument replaces the catalog pages with those of doc.
func (c *Catalog) LoadManifestDocument(doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	next := NewEmptyCatalog()
	for _, page := range doc.Pages {
		if err := next.Register(page); err != nil {
			return fmt.Errorf("dashboard: register page %s from %s: %w", page.Code, doc.Source, err)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = next.pages
	return nil
}

// LoadManifestDocument registers the extra widget definitions of doc.
func (r *Registry) LoadManifestDocument(doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	for _, def := range doc.Widgets {
		if err := r.RegisterDefinition(def); err != nil {
			return fmt.Errorf("dashboard: register widget %s from %s: %w", def.Code, doc.Source, err)
		}
	}
	return nil
}

// ReadManifest loads a manifest file from disk without applying it.
func ReadManifest(path string) (*PageManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("dashboard: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("dashboard: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*PageManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc PageManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("dashboard: manifest is empty")
		}
		return nil, fmt.Errorf("dashboard: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// EncodeManifest writes doc as YAML.
func EncodeManifest(w io.Writer, doc *PageManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("dashboard: manifest document is nil")
	}
	doc.applyDefaults()
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("dashboard: encode manifest: %w", err)
	}
	return encoder.Close()
}

// Validate ensures the manifest satisfies required fields.
func (doc *PageManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("dashboard: unsupported manifest version %q", doc.Version)
	}
	seenWidgets := make(map[string]struct{}, len(doc.Widgets))
	for idx, def := range doc.Widgets {
		if def.Code == "" {
			return fmt.Errorf("dashboard: manifest widget at index %d is missing code", idx)
		}
		if def.Name == "" {
			return fmt.Errorf("dashboard: manifest widget %s missing name", def.Code)
		}
		if _, exists := seenWidgets[def.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates widget code %s", def.Code)
		}
		seenWidgets[def.Code] = struct{}{}
	}
	if len(doc.Pages) == 0 {
		return fmt.Errorf("dashboard: manifest declares no pages")
	}
	seenPages := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		if page.Code == "" {
			return fmt.Errorf("dashboard: manifest page at index %d is missing code", idx)
		}
		if page.Label == "" {
			return fmt.Errorf("dashboard: manifest page %s missing label", page.Code)
		}
		if _, exists := seenPages[page.Code]; exists {
			return fmt.Errorf("dashboard: manifest duplicates page code %s", page.Code)
		}
		seenPages[page.Code] = struct{}{}
	}
	return nil
}

func (doc *PageManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}
