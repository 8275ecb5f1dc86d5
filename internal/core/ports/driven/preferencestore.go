package driven

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// PreferenceStore persists one preference row per user.
type PreferenceStore interface {
	// Save creates or fully replaces the user's row.
	Save(ctx context.Context, pref *domain.UserPreference) error

	// Get retrieves the user's row.
	// Returns domain.ErrNotFound if the user never saved preferences.
	Get(ctx context.Context, userID string) (*domain.UserPreference, error)
}
