package metrics

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// FileSource reads the metrics resource from a file system, typically the
// directory the static site is published from.
type FileSource struct {
	fsys fs.FS
	path string
}

var _ dashboard.MetricsSource = (*FileSource)(nil)

// NewFileSource reads path from fsys. An empty path means data/metrics.json.
func NewFileSource(fsys fs.FS, path string) *FileSource {
	if path == "" {
		path = dashboard.MetricsPath
	}
	return &FileSource{fsys: fsys, path: strings.TrimLeft(path, "/")}
}

// NewDirSource reads path below dir on the local disk.
func NewDirSource(dir, path string) *FileSource {
	return NewFileSource(os.DirFS(dir), path)
}

// FetchMetrics implements dashboard.MetricsSource.
func (s *FileSource) FetchMetrics(ctx context.Context) (dashboard.MetricsSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return dashboard.MetricsSnapshot{}, err
	}
	if s.fsys == nil {
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: file system not configured")
	}
	data, err := fs.ReadFile(s.fsys, s.path)
	if err != nil {
		return dashboard.MetricsSnapshot{}, fmt.Errorf("metrics: read %s: %w", s.path, err)
	}
	return dashboard.DecodeMetrics(data)
}
