package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

func TestRunStore_LatestRun_Empty(t *testing.T) {
	store := NewRunStore()
	_, err := store.LatestRun(context.Background())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRunStore_LatestRun_ReturnsNewest(t *testing.T) {
	store := NewRunStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, store.SaveRun(ctx, &domain.IngestionRun{ID: "old", StartedAt: now.Add(-time.Hour)}))
	require.NoError(t, store.SaveRun(ctx, &domain.IngestionRun{
		ID:        "new",
		StartedAt: now,
		Providers: []domain.ProviderResult{{Provider: "newsapi", Upserted: 3}},
	}))

	latest, err := store.LatestRun(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new", latest.ID)
	assert.Equal(t, 3, latest.Upserted())
}

func TestRunStore_SaveRun_RequiresID(t *testing.T) {
	store := NewRunStore()
	assert.ErrorIs(t, store.SaveRun(context.Background(), &domain.IngestionRun{}), domain.ErrInvalidInput)
}
