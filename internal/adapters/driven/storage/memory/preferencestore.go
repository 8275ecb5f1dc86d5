package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// Ensure PreferenceStore implements the interface.
var _ driven.PreferenceStore = (*PreferenceStore)(nil)

// PreferenceStore is an in-memory implementation of driven.PreferenceStore.
type PreferenceStore struct {
	mu    sync.RWMutex
	prefs map[string]domain.UserPreference
}

// NewPreferenceStore creates a new in-memory preference store.
func NewPreferenceStore() *PreferenceStore {
	return &PreferenceStore{
		prefs: make(map[string]domain.UserPreference),
	}
}

// Save creates or fully replaces the user's row.
func (s *PreferenceStore) Save(_ context.Context, pref *domain.UserPreference) error {
	if pref == nil || pref.UserID == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	pref.CreatedAt = now
	if existing, ok := s.prefs[pref.UserID]; ok {
		pref.CreatedAt = existing.CreatedAt
	}
	pref.UpdatedAt = now

	s.prefs[pref.UserID] = clonePreference(*pref)
	return nil
}

// Get retrieves the user's row.
func (s *PreferenceStore) Get(_ context.Context, userID string) (*domain.UserPreference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pref, ok := s.prefs[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	pref = clonePreference(pref)
	return &pref, nil
}

// clonePreference copies the sets so callers cannot mutate stored rows.
func clonePreference(p domain.UserPreference) domain.UserPreference {
	p.PreferredSources = slices.Clone(p.PreferredSources)
	p.PreferredCategories = slices.Clone(p.PreferredCategories)
	p.PreferredAuthors = slices.Clone(p.PreferredAuthors)
	return p
}
