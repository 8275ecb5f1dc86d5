package driving

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// PreferenceInput carries the three preference sets.
// A nil slice means the set was not supplied.
type PreferenceInput struct {
	Sources    []string
	Categories []string
	Authors    []string
}

// PreferenceService manages user preferences and personalised feeds.
// Every operation takes the caller's user ID explicitly.
type PreferenceService interface {
	// Save replaces the user's preferences.
	Save(ctx context.Context, userID string, in PreferenceInput) (*domain.UserPreference, error)

	// Get returns the user's preferences or domain.ErrNotFound.
	Get(ctx context.Context, userID string) (*domain.UserPreference, error)

	// Feed returns one page of articles filtered by the user's preferences.
	// Returns domain.ErrNotFound if the user has no saved preferences.
	Feed(ctx context.Context, userID string, page int) (*domain.ArticlePage, error)
}
