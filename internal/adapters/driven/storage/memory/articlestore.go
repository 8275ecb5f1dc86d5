package memory

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// Ensure ArticleStore implements the interface.
var _ driven.ArticleStore = (*ArticleStore)(nil)

// ArticleStore is an in-memory implementation of driven.ArticleStore.
// Articles are kept in insertion order; the title index points into it.
type ArticleStore struct {
	mu      sync.RWMutex
	nextID  int64
	order   []int64
	byID    map[int64]domain.Article
	byTitle map[string]int64
}

// NewArticleStore creates a new in-memory article store.
func NewArticleStore() *ArticleStore {
	return &ArticleStore{
		byID:    make(map[int64]domain.Article),
		byTitle: make(map[string]int64),
	}
}

// Upsert inserts the article or replaces the one with the same title.
func (s *ArticleStore) Upsert(_ context.Context, article *domain.Article) error {
	if article == nil || article.Title == "" {
		return domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if id, ok := s.byTitle[article.Title]; ok {
		existing := s.byID[id]
		article.ID = id
		article.CreatedAt = existing.CreatedAt
		article.UpdatedAt = now
		s.byID[id] = cloneArticle(*article)
		return nil
	}

	s.nextID++
	article.ID = s.nextID
	article.CreatedAt = now
	article.UpdatedAt = now
	s.byID[article.ID] = cloneArticle(*article)
	s.byTitle[article.Title] = article.ID
	s.order = append(s.order, article.ID)
	return nil
}

// Query returns one page of matching articles, newest insertion first.
func (s *ArticleStore) Query(
	_ context.Context,
	filter domain.ArticleFilter,
	page domain.PageRequest,
) (*domain.ArticlePage, error) {
	page = page.Normalised()
	offset := page.Offset()

	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []domain.Article
	total := 0
	for i := len(s.order) - 1; i >= 0; i-- {
		article := s.byID[s.order[i]]
		if !filter.Matches(&article) {
			continue
		}
		if total >= offset && len(items) < domain.PageSize {
			items = append(items, cloneArticle(article))
		}
		total++
	}

	return domain.NewArticlePage(page, items, total), nil
}

// Get retrieves an article by ID.
func (s *ArticleStore) Get(_ context.Context, id int64) (*domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	article, ok := s.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	article = cloneArticle(article)
	return &article, nil
}

// Count returns the number of stored articles.
func (s *ArticleStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// cloneArticle copies the author so callers cannot mutate stored rows.
func cloneArticle(a domain.Article) domain.Article {
	if a.Author != nil {
		a.Author = domain.StringPtr(*a.Author)
	}
	return a
}
