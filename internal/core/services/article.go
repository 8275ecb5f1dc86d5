package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// Ensure ArticleService implements the interface.
var _ driving.ArticleService = (*ArticleService)(nil)

// ArticleService is the query engine over the article store.
type ArticleService struct {
	store driven.ArticleStore
}

// NewArticleService creates a new article service.
func NewArticleService(store driven.ArticleStore) *ArticleService {
	return &ArticleService{store: store}
}

// List returns one page of articles matching the query.
func (s *ArticleService) List(ctx context.Context, q driving.ArticleQuery) (*domain.ArticlePage, error) {
	filter, err := BuildFilter(q)
	if err != nil {
		return nil, err
	}

	page, err := s.store.Query(ctx, filter, domain.PageRequest{Page: q.Page})
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}
	return page, nil
}

// Get retrieves an article by ID.
func (s *ArticleService) Get(ctx context.Context, id int64) (*domain.Article, error) {
	if id <= 0 {
		return nil, domain.ErrNotFound
	}
	return s.store.Get(ctx, id)
}

// Count returns the number of stored articles.
func (s *ArticleService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// BuildFilter turns caller-supplied criteria into an article filter.
// Blank criteria are left out; a malformed date yields domain.ErrInvalidInput.
func BuildFilter(q driving.ArticleQuery) (domain.ArticleFilter, error) {
	filter := domain.ArticleFilter{
		Keyword:  strings.TrimSpace(q.Keyword),
		Category: strings.TrimSpace(q.Category),
		Source:   strings.TrimSpace(q.Source),
	}

	if date := strings.TrimSpace(q.Date); date != "" {
		d, err := domain.ParseDate(date)
		if err != nil {
			return domain.ArticleFilter{}, err
		}
		filter.Date = &d
	}

	return filter, nil
}
