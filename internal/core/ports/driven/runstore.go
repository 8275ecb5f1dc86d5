package driven

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// RunStore persists ingestion run reports.
type RunStore interface {
	// SaveRun stores a finished run.
	SaveRun(ctx context.Context, run *domain.IngestionRun) error

	// LatestRun returns the most recently started run.
	// Returns domain.ErrNotFound if no run was recorded.
	LatestRun(ctx context.Context) (*domain.IngestionRun, error)
}
