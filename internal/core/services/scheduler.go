package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/custodia-labs/newsagg/internal/core/domain"
	"github.com/custodia-labs/newsagg/internal/core/ports/driving"
	"github.com/custodia-labs/newsagg/internal/logger"
)

// Ensure Scheduler implements the interface.
var _ driving.Scheduler = (*Scheduler)(nil)

// Scheduler triggers ingestion passes on a fixed interval.
// It is a pure core service with no external control API.
type Scheduler struct {
	config    domain.SchedulerConfig
	ingestion driving.IngestionService

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	nextRun time.Time
	wg      sync.WaitGroup
}

// NewScheduler creates a scheduler with configuration.
func NewScheduler(config domain.SchedulerConfig, ingestion driving.IngestionService) *Scheduler {
	return &Scheduler{
		config:    config,
		ingestion: ingestion,
	}
}

// Start begins the scheduler loop. This method blocks until Stop is called
// or the context is cancelled. A disabled scheduler returns immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	if !s.config.Enabled() {
		logger.Info("Scheduled ingestion disabled")
		return nil
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil // Already running
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.mu.Unlock()

	return s.run(ctx)
}

// Stop gracefully shuts down the scheduler and waits for an in-flight pass.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}

// NextRun returns when the next scheduled pass is due.
func (s *Scheduler) NextRun() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextRun
}

// run is the main scheduler loop.
func (s *Scheduler) run(ctx context.Context) error {
	if s.config.RunOnStart {
		s.trigger(ctx)
	}
	s.setNextRun(time.Now().Add(s.config.Interval))

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case <-s.stopCh:
			return nil
		case <-ticker.C:
			s.setNextRun(time.Now().Add(s.config.Interval))
			s.trigger(ctx)
		}
	}
}

// trigger starts one ingestion pass in the background.
// A pass that is still running from an earlier tick is left alone.
func (s *Scheduler) trigger(ctx context.Context) {
	if s.ingestion == nil || s.ingestion.Running() {
		logger.Debug("scheduler: ingestion already running, skipping tick")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		run, err := s.ingestion.Run(ctx)
		switch {
		case errors.Is(err, domain.ErrIngestionInProgress):
			logger.Debug("scheduler: ingestion already running, skipping tick")
		case err != nil:
			logger.Warn("scheduler: ingestion failed: %v", err)
		default:
			logger.Info("scheduler: ingestion %s upserted %d articles", run.ID, run.Upserted())
		}
	}()
}

func (s *Scheduler) setNextRun(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRun = t
}
