package dashboard

import (
	"context"
	"fmt"
	"sync"
)

// PreferenceUpdater is implemented by stores that can apply a
// read-modify-write of one viewer's preferences as a single step. fn reports
// whether anything changed; unchanged results are not written.
type PreferenceUpdater interface {
	UpdatePreferences(ctx context.Context, viewer ViewerContext, fn func(ViewerPreferences) (ViewerPreferences, bool, error)) (ViewerPreferences, bool, error)
}

// InMemoryPreferenceStore keeps viewer toggles for the lifetime of the process.
type InMemoryPreferenceStore struct {
	mu   sync.RWMutex
	data map[string]ViewerPreferences
}

var _ PreferenceUpdater = (*InMemoryPreferenceStore)(nil)

// NewInMemoryPreferenceStore creates an empty preference store.
func NewInMemoryPreferenceStore() *InMemoryPreferenceStore {
	return &InMemoryPreferenceStore{
		data: make(map[string]ViewerPreferences),
	}
}

// Preferences returns stored preferences or light-mode defaults.
func (s *InMemoryPreferenceStore) Preferences(_ context.Context, viewer ViewerContext) (ViewerPreferences, error) {
	if viewer.UserID == "" {
		return ViewerPreferences{Locale: viewer.Locale}, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookupLocked(viewer), nil
}

// SavePreferences persists preferences for a viewer.
func (s *InMemoryPreferenceStore) SavePreferences(_ context.Context, viewer ViewerContext, prefs ViewerPreferences) error {
	if viewer.UserID == "" {
		return fmt.Errorf("preference store requires viewer user id")
	}
	if prefs.Locale == "" {
		prefs.Locale = viewer.Locale
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[viewer.UserID] = prefs
	return nil
}

// UpdatePreferences runs fn against the stored preferences while holding the
// write lock.
func (s *InMemoryPreferenceStore) UpdatePreferences(_ context.Context, viewer ViewerContext, fn func(ViewerPreferences) (ViewerPreferences, bool, error)) (ViewerPreferences, bool, error) {
	if viewer.UserID == "" {
		return ViewerPreferences{}, false, fmt.Errorf("preference store requires viewer user id")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	current := s.lookupLocked(viewer)
	next, changed, err := fn(current)
	if err != nil || !changed {
		return current, false, err
	}
	if next.Locale == "" {
		next.Locale = viewer.Locale
	}
	s.data[viewer.UserID] = next
	return next, true, nil
}

func (s *InMemoryPreferenceStore) lookupLocked(viewer ViewerContext) ViewerPreferences {
	prefs, ok := s.data[viewer.UserID]
	if !ok {
		return ViewerPreferences{Locale: viewer.Locale}
	}
	if prefs.Locale == "" {
		prefs.Locale = viewer.Locale
	}
	return prefs
}
