package refresh

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"feedsink/pkg/domain"
)

//go:generate moq -out mocks/due_lister.go -pkg mocks -skip-ensure -fmt goimports . DueLister
//go:generate moq -out mocks/refresher.go -pkg mocks -skip-ensure -fmt goimports . Refresher

// DueLister supplies the sources whose sync interval has elapsed
type DueLister interface {
	GetDueSources(ctx context.Context) ([]*domain.Source, error)
}

// Refresher runs one refresh attempt for a source
type Refresher interface {
	Refresh(ctx context.Context, sourceID int64) (*domain.FetchLog, error)
}

// Scheduler periodically scans for due sources and dispatches refresh
// work into a bounded worker pool. The scan loop never blocks on a
// refresh: a full pool defers the source to the next tick, and ticks that
// fall due while a scan is still running are dropped by the ticker rather
// than queued.
type Scheduler struct {
	sources      DueLister
	refresher    Refresher
	pollInterval time.Duration
	maxWorkers   int

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// SchedulerConfig holds scheduler configuration
type SchedulerConfig struct {
	PollInterval time.Duration
	MaxWorkers   int
}

// NewScheduler creates a scheduler; zero config values get defaults
func NewScheduler(sources DueLister, refresher Refresher, cfg SchedulerConfig) *Scheduler {
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Minute
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 5
	}

	return &Scheduler{
		sources:      sources,
		refresher:    refresher,
		pollInterval: cfg.PollInterval,
		maxWorkers:   cfg.MaxWorkers,
	}
}

// Start spawns the polling loop. The loop stops when ctx is canceled or
// Stop is called; in-flight refreshes keep their own timeouts and are
// allowed to finish.
func (s *Scheduler) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	// workers outlive loop cancellation so shutdown drains instead of
	// aborting mid-write; each fetch is bounded by its own timeout
	taskCtx := context.WithoutCancel(ctx)

	pool := &errgroup.Group{}
	pool.SetLimit(s.maxWorkers)

	s.wg.Add(1)
	go s.run(loopCtx, taskCtx, pool)

	lgr.Printf("[INFO] scheduler started, poll interval %v, max workers %d", s.pollInterval, s.maxWorkers)
}

// Stop signals the loop to exit and waits for in-flight refreshes
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// run is the single scheduling loop
func (s *Scheduler) run(loopCtx, taskCtx context.Context, pool *errgroup.Group) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	// scan immediately on start
	s.scan(loopCtx, taskCtx, pool)

	for {
		select {
		case <-loopCtx.Done():
			if err := pool.Wait(); err != nil {
				lgr.Printf("[ERROR] worker pool error: %v", err)
			}
			return
		case <-ticker.C:
			s.scan(loopCtx, taskCtx, pool)
		}
	}
}

// scan queries due sources and dispatches each into the pool without
// waiting for completion
func (s *Scheduler) scan(loopCtx, taskCtx context.Context, pool *errgroup.Group) {
	due, err := s.sources.GetDueSources(loopCtx)
	if err != nil {
		lgr.Printf("[ERROR] failed to get due sources: %v", err)
		return
	}
	if len(due) == 0 {
		lgr.Printf("[DEBUG] no sources due for refresh")
		return
	}

	lgr.Printf("[INFO] dispatching refresh for %d due sources", len(due))

	for _, source := range due {
		sourceID := source.ID
		lgr.Printf("[DEBUG] source %d (%s) due, cadence %v", sourceID, source.Name, source.SyncInterval())
		dispatched := pool.TryGo(func() error {
			s.refreshOne(taskCtx, sourceID)
			return nil
		})
		if !dispatched {
			// pool is full, the source stays due and is retried next tick
			lgr.Printf("[DEBUG] worker pool full, deferring source %d", sourceID)
		}
	}
}

// refreshOne runs a single dispatched refresh; failures are already
// persisted in the fetch log, the scheduler only reports them
func (s *Scheduler) refreshOne(ctx context.Context, sourceID int64) {
	fetchLog, err := s.refresher.Refresh(ctx, sourceID)
	switch {
	case errors.Is(err, ErrRefreshInFlight):
		lgr.Printf("[DEBUG] source %d refresh already in flight, skipped", sourceID)
	case err != nil:
		lgr.Printf("[WARN] scheduled refresh for source %d not attempted: %v", sourceID, err)
	case fetchLog.Status == domain.FetchFailed:
		lgr.Printf("[DEBUG] scheduled refresh for source %d failed: %s", sourceID, fetchLog.ErrorMessage)
	default:
		lgr.Printf("[DEBUG] scheduled refresh for source %d done, %d new entries", sourceID, fetchLog.EntriesFetched)
	}
}
