package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// Ensure RunStore implements the interface.
var _ driven.RunStore = (*RunStore)(nil)

// RunStore is an in-memory implementation of driven.RunStore.
type RunStore struct {
	mu   sync.RWMutex
	runs []domain.IngestionRun
}

// NewRunStore creates a new in-memory run store.
func NewRunStore() *RunStore {
	return &RunStore{}
}

// SaveRun stores a finished run.
func (s *RunStore) SaveRun(_ context.Context, run *domain.IngestionRun) error {
	if run == nil || run.ID == "" {
		return domain.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *run
	r.Providers = slices.Clone(run.Providers)
	s.runs = append(s.runs, r)
	return nil
}

// LatestRun returns the most recently started run.
func (s *RunStore) LatestRun(_ context.Context) (*domain.IngestionRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.runs) == 0 {
		return nil, domain.ErrNotFound
	}
	latest := s.runs[0]
	for _, r := range s.runs[1:] {
		if !r.StartedAt.Before(latest.StartedAt) {
			latest = r
		}
	}
	latest.Providers = slices.Clone(latest.Providers)
	return &latest, nil
}
