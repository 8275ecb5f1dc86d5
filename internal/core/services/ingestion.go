package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driven"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
	"github.com/custodia-labs/newsagg/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.IngestionService = (*IngestionPipeline)(nil)

// DefaultFetchConcurrency bounds how many providers are fetched at once.
const DefaultFetchConcurrency = 3

// IngestionPipeline fetches articles from every provider, normalises them
// and upserts them into the article store.
type IngestionPipeline struct {
	providers   []driven.Provider
	articles    driven.ArticleStore
	runs        driven.RunStore
	metrics     driven.IngestionMetrics
	concurrency int

	mu      sync.Mutex
	running bool
	last    *domain.IngestionRun
}

// NewIngestionPipeline creates a pipeline over providers in the given order.
// The order determines error attribution and the order batches are applied.
// runs and metrics are optional.
func NewIngestionPipeline(
	providers []driven.Provider,
	articles driven.ArticleStore,
	runs driven.RunStore,
	metrics driven.IngestionMetrics,
) *IngestionPipeline {
	return &IngestionPipeline{
		providers:   providers,
		articles:    articles,
		runs:        runs,
		metrics:     metrics,
		concurrency: DefaultFetchConcurrency,
	}
}

// SetConcurrency changes how many providers are fetched in parallel.
// Values below 1 fetch sequentially.
func (p *IngestionPipeline) SetConcurrency(n int) {
	if n < 1 {
		n = 1
	}
	p.concurrency = n
}

// fetchResult holds the outcome of one provider's Fetch call.
type fetchResult struct {
	items    []domain.RawItem
	err      error
	duration time.Duration
}

// Run performs one ingestion pass over every provider.
// A failed provider never prevents the others from being attempted; the
// returned error is a *domain.IngestionError naming the first failure.
func (p *IngestionPipeline) Run(ctx context.Context) (*domain.IngestionRun, error) {
	if !p.begin() {
		return nil, domain.ErrIngestionInProgress
	}
	defer p.end()

	run := &domain.IngestionRun{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}

	logger.Section("Ingestion " + run.ID)
	logger.Info("Starting ingestion over %d providers", len(p.providers))

	// 1. FETCH (concurrently, results kept by provider position)
	batches := p.fetchAll(ctx)

	// 2. NORMALISE + UPSERT (in provider order)
	var failures []*domain.ProviderFetchError
	for i, provider := range p.providers {
		result := p.ingestBatch(ctx, provider, batches[i])
		run.Providers = append(run.Providers, result.ProviderResult)
		if result.err != nil {
			failures = append(failures, &domain.ProviderFetchError{
				Provider: provider.Name(),
				Err:      result.err,
			})
		}
	}

	run.FinishedAt = time.Now().UTC()

	var err error
	if len(failures) > 0 {
		ingestErr := &domain.IngestionError{Failures: failures}
		run.Error = ingestErr.Error()
		err = ingestErr
		logger.Error("Ingestion %s finished with %d failed provider(s): %v", run.ID, len(failures), err)
	} else {
		logger.Info("Ingestion %s complete: %d articles upserted", run.ID, run.Upserted())
	}

	if p.metrics != nil {
		p.metrics.ObserveRun(run.FinishedAt.Sub(run.StartedAt), err)
	}
	p.record(ctx, run)

	return run, err
}

// Latest returns the most recent run report.
func (p *IngestionPipeline) Latest(ctx context.Context) (*domain.IngestionRun, error) {
	if p.runs != nil {
		return p.runs.LatestRun(ctx)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == nil {
		return nil, domain.ErrNotFound
	}
	last := *p.last
	return &last, nil
}

// Running reports whether a pass is in progress.
func (p *IngestionPipeline) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

func (p *IngestionPipeline) fetchAll(ctx context.Context) []fetchResult {
	batches := make([]fetchResult, len(p.providers))

	var g errgroup.Group
	g.SetLimit(p.concurrency)
	for i, provider := range p.providers {
		g.Go(func() error {
			start := time.Now()
			items, err := provider.Fetch(ctx)
			batches[i] = fetchResult{items: items, err: err, duration: time.Since(start)}
			return nil // failures are per provider
		})
	}
	_ = g.Wait()

	return batches
}

// batchResult pairs the reported summary with the batch's terminal error.
type batchResult struct {
	domain.ProviderResult
	err error
}

// ingestBatch applies one provider's fetched items to the store.
// The first failing item aborts the rest of the batch; earlier upserts stay.
func (p *IngestionPipeline) ingestBatch(ctx context.Context, provider driven.Provider, batch fetchResult) (result batchResult) {
	name := provider.Name()
	log := logger.With("provider", name)
	result.Provider = name

	defer func() {
		result.Duration = batch.duration
		if result.err != nil {
			result.Error = result.err.Error()
		}
		if p.metrics != nil {
			p.metrics.ObserveProvider(name, result.Fetched, result.Upserted, batch.duration, result.err)
		}
	}()

	if batch.err != nil {
		log.Error("fetch failed", "error", batch.err)
		result.err = batch.err
		return result
	}

	result.Fetched = len(batch.items)
	log.Debug("fetched items", "count", result.Fetched, "duration", batch.duration)

	for i := range batch.items {
		if err := ctx.Err(); err != nil {
			result.err = err
			return result
		}

		article, err := provider.Normalise(batch.items[i])
		if err != nil {
			log.Error("normalise failed", "item", i, "error", err)
			result.err = fmt.Errorf("normalise item %d: %w", i, err)
			return result
		}

		if article.TruncateContent() {
			log.Debug("content truncated", "title", article.Title)
		}

		if err := p.articles.Upsert(ctx, article); err != nil {
			log.Error("upsert failed", "title", article.Title, "error", err)
			result.err = fmt.Errorf("save article %q: %w", article.Title, err)
			return result
		}
		result.Upserted++
	}

	log.Info("batch ingested", "upserted", result.Upserted)
	return result
}

// record keeps the run in memory and, when configured, in the run store.
func (p *IngestionPipeline) record(ctx context.Context, run *domain.IngestionRun) {
	p.mu.Lock()
	p.last = run
	p.mu.Unlock()

	if p.runs == nil {
		return
	}
	// Use a fresh context so a cancelled run is still recorded.
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := p.runs.SaveRun(saveCtx, run); err != nil && !errors.Is(err, context.Canceled) {
		logger.Warn("Failed to save ingestion run %s: %v", run.ID, err)
	}
}

func (p *IngestionPipeline) begin() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return false
	}
	p.running = true
	return true
}

func (p *IngestionPipeline) end() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.running = false
}
