package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// Ensure PreferenceService implements the interface.
var _ driving.PreferenceService = (*PreferenceService)(nil)

// PreferenceService manages user preferences and resolves personalised feeds.
type PreferenceService struct {
	preferences driven.PreferenceStore
	articles    driven.ArticleStore
}

// NewPreferenceService creates a new preference service.
func NewPreferenceService(preferences driven.PreferenceStore, articles driven.ArticleStore) *PreferenceService {
	return &PreferenceService{
		preferences: preferences,
		articles:    articles,
	}
}

// Save replaces the user's preferences with the supplied sets.
func (s *PreferenceService) Save(
	ctx context.Context,
	userID string,
	in driving.PreferenceInput,
) (*domain.UserPreference, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrInvalidInput)
	}

	pref := &domain.UserPreference{
		UserID:              userID,
		PreferredSources:    in.Sources,
		PreferredCategories: in.Categories,
		PreferredAuthors:    in.Authors,
	}
	if err := s.preferences.Save(ctx, pref); err != nil {
		return nil, fmt.Errorf("save preferences: %w", err)
	}
	return pref, nil
}

// Get returns the user's saved preferences.
func (s *PreferenceService) Get(ctx context.Context, userID string) (*domain.UserPreference, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user ID is required", domain.ErrInvalidInput)
	}
	return s.preferences.Get(ctx, userID)
}

// Feed returns one page of articles constrained by the user's preferences.
// Each non-empty set becomes an "is one of" filter; empty sets are ignored,
// so a row with three empty sets yields every article.
func (s *PreferenceService) Feed(ctx context.Context, userID string, page int) (*domain.ArticlePage, error) {
	pref, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("no preferences set for personalised feed: %w", err)
		}
		return nil, err
	}

	result, err := s.articles.Query(ctx, pref.Filter(), domain.PageRequest{Page: page})
	if err != nil {
		return nil, fmt.Errorf("query feed: %w", err)
	}
	return result, nil
}
