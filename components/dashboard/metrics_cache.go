package dashboard

import (
	"context"
	"sync"
	"time"
)

// CachedMetricsSource memoizes successful metrics fetches for a TTL.
// Failures are never cached so the next render fetches again.
type CachedMetricsSource struct {
	source MetricsSource
	ttl    time.Duration
	now    func() time.Time

	mu       sync.RWMutex
	snapshot MetricsSnapshot
	expires  time.Time
	valid    bool
}

// NewCachedMetricsSource wraps source with a TTL cache. A non-positive TTL disables caching.
func NewCachedMetricsSource(source MetricsSource, ttl time.Duration) *CachedMetricsSource {
	return &CachedMetricsSource{
		source: source,
		ttl:    ttl,
		now:    time.Now,
	}
}

// FetchMetrics returns the cached snapshot or fetches a fresh one.
func (c *CachedMetricsSource) FetchMetrics(ctx context.Context) (MetricsSnapshot, error) {
	if c == nil || c.source == nil {
		return MetricsSnapshot{}, errMissingMetricsSource
	}
	if snapshot, ok := c.get(); ok {
		return snapshot, nil
	}
	snapshot, err := c.source.FetchMetrics(ctx)
	if err != nil {
		return MetricsSnapshot{}, err
	}
	c.set(snapshot)
	return snapshot, nil
}

// Invalidate drops the cached snapshot.
func (c *CachedMetricsSource) Invalidate() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.valid = false
	c.snapshot = MetricsSnapshot{}
	c.mu.Unlock()
}

func (c *CachedMetricsSource) get() (MetricsSnapshot, bool) {
	if c.ttl <= 0 {
		return MetricsSnapshot{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || c.now().After(c.expires) {
		return MetricsSnapshot{}, false
	}
	return c.snapshot, true
}

func (c *CachedMetricsSource) set(snapshot MetricsSnapshot) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.snapshot = snapshot
	c.expires = c.now().Add(c.ttl)
	c.valid = true
	c.mu.Unlock()
}
