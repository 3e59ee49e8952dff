package metrics

import (
	"context"
	"sync"

	dashboard "github.com/goliatone/go-insights/components/dashboard"
)

// StaticSource serves a fixed snapshot, or a fixed error, for demos and tests.
type StaticSource struct {
	mu       sync.RWMutex
	snapshot dashboard.MetricsSnapshot
	err      error
}

var _ dashboard.MetricsSource = (*StaticSource)(nil)

// NewStaticSource builds a source returning snapshot.
func NewStaticSource(snapshot dashboard.MetricsSnapshot) *StaticSource {
	return &StaticSource{snapshot: snapshot}
}

// FetchMetrics returns the configured snapshot or error.
func (s *StaticSource) FetchMetrics(context.Context) (dashboard.MetricsSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return dashboard.MetricsSnapshot{}, s.err
	}
	return s.snapshot, nil
}

// Set swaps the snapshot and clears any configured error.
func (s *StaticSource) Set(snapshot dashboard.MetricsSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = snapshot
	s.err = nil
}

// Fail makes subsequent fetches return err.
func (s *StaticSource) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}
