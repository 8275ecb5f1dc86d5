package driven

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// ArticleStore persists canonical articles keyed by title.
type ArticleStore interface {
	// Upsert inserts the article, or replaces every non-key field of the
	// article with the same title. The stored ID is written back.
	Upsert(ctx context.Context, article *domain.Article) error

	// Query returns one page of articles matching the filter,
	// newest insertion first.
	Query(ctx context.Context, filter domain.ArticleFilter, page domain.PageRequest) (*domain.ArticlePage, error)

	// Get retrieves an article by ID.
	// Returns domain.ErrNotFound if no article has that ID.
	Get(ctx context.Context, id int64) (*domain.Article, error)

	// Count returns the number of stored articles.
	Count(ctx context.Context) (int, error)
}
