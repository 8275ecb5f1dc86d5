package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
)

// --- Mock implementations for service tests ---

// mockProvider implements driven.Provider over canned articles.
type mockProvider struct {
	name     string
	articles []domain.Article
	fetchErr error
	// badItem makes Normalise fail at that index (-1 disables)
	badItem int
	// timeout makes Fetch stall that long, then fail as its client would
	timeout time.Duration

	mu      sync.Mutex
	fetches int
}

func newMockProvider(name string, articles ...domain.Article) *mockProvider {
	return &mockProvider{name: name, articles: articles, badItem: -1}
}

func (m *mockProvider) Name() string { return m.name }

func (m *mockProvider) Fetch(ctx context.Context) ([]domain.RawItem, error) {
	m.mu.Lock()
	m.fetches++
	m.mu.Unlock()

	if m.timeout > 0 {
		select {
		case <-time.After(m.timeout):
		case <-ctx.Done():
		}
		return nil, fmt.Errorf("%w: no response within %s", domain.ErrProviderTimeout, m.timeout)
	}
	if m.fetchErr != nil {
		return nil, m.fetchErr
	}

	items := make([]domain.RawItem, 0, len(m.articles))
	for i := range m.articles {
		payload, err := json.Marshal(i)
		if err != nil {
			return nil, err
		}
		items = append(items, domain.RawItem{Provider: m.name, Payload: payload})
	}
	return items, nil
}

func (m *mockProvider) Normalise(raw domain.RawItem) (*domain.Article, error) {
	var i int
	if err := json.Unmarshal(raw.Payload, &i); err != nil {
		return nil, err
	}
	if i == m.badItem {
		return nil, fmt.Errorf("%w: missing title", domain.ErrMalformedPayload)
	}
	article := m.articles[i]
	return &article, nil
}

func (m *mockProvider) fetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetches
}

var _ driven.Provider = (*mockProvider)(nil)

// mockMetrics records observations.
type mockMetrics struct {
	mu        sync.Mutex
	providers []string
	failed    []string
	runs      int
	runErr    error
}

func (m *mockMetrics) ObserveProvider(provider string, _, _ int, _ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.providers = append(m.providers, provider)
	if err != nil {
		m.failed = append(m.failed, provider)
	}
}

func (m *mockMetrics) ObserveRun(_ time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs++
	m.runErr = err
}

// failingArticleStore fails every Upsert after the first n.
type failingArticleStore struct {
	driven.ArticleStore
	allow int
	calls int
}

func (s *failingArticleStore) Upsert(ctx context.Context, a *domain.Article) error {
	s.calls++
	if s.calls > s.allow {
		return errors.New("disk full")
	}
	return s.ArticleStore.Upsert(ctx, a)
}

// stubIngestion implements driving.IngestionService for scheduler tests.
type stubIngestion struct {
	mu      sync.Mutex
	calls   int
	running bool
	delay   time.Duration
	err     error
}

func (s *stubIngestion) Run(ctx context.Context) (*domain.IngestionRun, error) {
	s.mu.Lock()
	s.calls++
	s.running = true
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
		}
	}

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	if s.err != nil {
		return nil, s.err
	}
	return &domain.IngestionRun{ID: "run"}, nil
}

func (s *stubIngestion) Latest(context.Context) (*domain.IngestionRun, error) {
	return nil, domain.ErrNotFound
}

func (s *stubIngestion) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *stubIngestion) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func article(title, source, category string, author *string, date domain.Date) domain.Article {
	return domain.Article{
		Title:       title,
		Content:     "body of " + title,
		Author:      author,
		Source:      source,
		Category:    category,
		PublishedAt: date,
	}
}

var may1 = domain.Date{Year: 2024, Month: time.May, Day: 1}
