package driving

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
)

// ArticleQuery carries caller-supplied list criteria.
// Empty strings mean "not supplied".
type ArticleQuery struct {
	Keyword  string
	Category string
	Source   string
	// Date is YYYY-MM-DD.
	Date string
	Page int
}

// ArticleService serves article queries.
type ArticleService interface {
	// List returns one page of articles matching the query.
	List(ctx context.Context, q ArticleQuery) (*domain.ArticlePage, error)

	// Get retrieves an article by ID.
	Get(ctx context.Context, id int64) (*domain.Article, error)

	// Count returns the number of stored articles.
	Count(ctx context.Context) (int, error)
}
