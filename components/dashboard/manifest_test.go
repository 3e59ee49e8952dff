package dashboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePageManifest = `
version: 1
name: ebrs-pilot
widgets:
  - code: pilot.widget.notes
    name: Pilot Notes
    category: insights
pages:
  - code: overview
    label: Overview
    breadcrumb: Market Research Overview
    position: 10
    widgets:
      - id: overview.filters
        definition: insights.widget.filters
        configuration:
          labels: ["Client", "Project"]
  - code: pilot
    label: Pilot
    label_localized:
      es: Piloto
    position: 20
`

func TestDecodeManifest(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(samplePageManifest))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 2)
	require.Len(t, doc.Widgets, 1)

	assert.Equal(t, "ebrs-pilot", doc.Name)
	assert.Equal(t, "overview", doc.Pages[0].Code)
	assert.Equal(t, "Market Research Overview", doc.Pages[0].Breadcrumb)
	assert.Equal(t, FiltersWidgetCode, doc.Pages[0].Widgets[0].DefinitionID)
	assert.Equal(t, "Piloto", doc.Pages[1].LabelLocalized["es"])
	assert.Equal(t, "pilot.widget.notes", doc.Widgets[0].Code)
}

func TestDecodeManifestRejectsUnknownFields(t *testing.T) {
	_, err := DecodeManifest(strings.NewReader("version: 1\npages:\n  - code: a\n    label: A\n    colour: red\n"))
	require.Error(t, err)
}

func TestDecodeManifestValidation(t *testing.T) {
	cases := map[string]string{
		"empty":         "",
		"bad version":   "version: 2\npages:\n  - code: a\n    label: A\n",
		"no pages":      "version: 1\n",
		"missing label": "version: 1\npages:\n  - code: a\n",
		"duplicate":     "version: 1\npages:\n  - code: a\n    label: A\n  - code: a\n    label: B\n",
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeManifest(strings.NewReader(payload))
			assert.Error(t, err)
		})
	}
}

func TestCatalogLoadManifestFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pages.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePageManifest), 0o600))

	catalog := NewCatalog()
	doc, err := catalog.LoadManifestFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)

	pages := catalog.Pages()
	require.Len(t, pages, 2)
	_, ok := catalog.Page(PageAudit)
	assert.False(t, ok, "manifest replaces the default pages")
	assert.Equal(t, "Piloto", BuildNavigation(catalog, "pilot", "es", "/admin/dashboard")[1].Label)
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc, err := DecodeManifest(strings.NewReader(samplePageManifest))
	require.NoError(t, err)
	reg := NewRegistry()
	require.NoError(t, reg.LoadManifestDocument(doc))
	def, ok := reg.Definition("pilot.widget.notes")
	require.True(t, ok)
	assert.Equal(t, "Pilot Notes", def.Name)
}

func TestEncodeManifestRoundTripsDefaults(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeManifest(&buf, NewManifest("defaults", NewCatalog())))

	doc, err := DecodeManifest(&buf)
	require.NoError(t, err)
	require.Len(t, doc.Pages, len(DefaultPages()))

	catalog := NewEmptyCatalog()
	require.NoError(t, catalog.LoadManifestDocument(doc))
	require.NoError(t, Bootstrap(BootstrapOptions{Catalog: catalog}))
	assert.Equal(t, "Completion Details", BreadcrumbLabel(catalog, PageCompletion, "en"))
}
