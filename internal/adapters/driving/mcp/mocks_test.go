package mcp

import (
	"context"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
)

// mockArticleService is a mock implementation of driving.ArticleService.
type mockArticleService struct {
	page      *domain.ArticlePage
	article   *domain.Article
	err       error
	lastQuery driving.ArticleQuery
	lastID    int64
}

func (m *mockArticleService) List(_ context.Context, q driving.ArticleQuery) (*domain.ArticlePage, error) {
	m.lastQuery = q
	return m.page, m.err
}

func (m *mockArticleService) Get(_ context.Context, id int64) (*domain.Article, error) {
	m.lastID = id
	return m.article, m.err
}

func (m *mockArticleService) Count(_ context.Context) (int, error) {
	if m.page == nil {
		return 0, m.err
	}
	return m.page.Total, m.err
}

// mockPreferenceService is a mock implementation of driving.PreferenceService.
type mockPreferenceService struct {
	page     *domain.ArticlePage
	err      error
	lastUser string
	lastPage int
}

func (m *mockPreferenceService) Save(_ context.Context, userID string, in driving.PreferenceInput) (*domain.UserPreference, error) {
	return &domain.UserPreference{
		UserID:              userID,
		PreferredSources:    in.Sources,
		PreferredCategories: in.Categories,
		PreferredAuthors:    in.Authors,
	}, m.err
}

func (m *mockPreferenceService) Get(_ context.Context, userID string) (*domain.UserPreference, error) {
	return &domain.UserPreference{UserID: userID}, m.err
}

func (m *mockPreferenceService) Feed(_ context.Context, userID string, page int) (*domain.ArticlePage, error) {
	m.lastUser = userID
	m.lastPage = page
	return m.page, m.err
}

// mockIngestionService is a mock implementation of driving.IngestionService.
type mockIngestionService struct {
	run *domain.IngestionRun
	err error
}

func (m *mockIngestionService) Run(_ context.Context) (*domain.IngestionRun, error) {
	return m.run, m.err
}

func (m *mockIngestionService) Latest(_ context.Context) (*domain.IngestionRun, error) {
	return m.run, m.err
}

func (m *mockIngestionService) Running() bool { return false }

func testPage(articles ...domain.Article) *domain.ArticlePage {
	return domain.NewArticlePage(domain.PageRequest{Page: 1}, articles, len(articles))
}
