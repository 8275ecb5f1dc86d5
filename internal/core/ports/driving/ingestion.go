package driving

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// IngestionService coordinates article ingestion from all providers.
type IngestionService interface {
	// Run performs one full ingestion pass over every provider.
	// The returned run is non-nil even when err is a *domain.IngestionError.
	Run(ctx context.Context) (*domain.IngestionRun, error)

	// Latest returns the report of the most recent run.
	Latest(ctx context.Context) (*domain.IngestionRun, error)

	// Running reports whether a pass is in progress.
	Running() bool
}
