package syncer

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/akovalev/feedsync/pkg/domain"
)

//go:generate moq -out mocks/runner.go -pkg mocks -skip-ensure -fmt goimports . Runner

// Runner executes a sync run, implemented by the orchestrator
type Runner interface {
	SyncAll(ctx context.Context, scope domain.SyncScope, reason domain.SyncReason) (*domain.SyncRunResult, error)
}

// Scheduler fires periodic sync runs across all feeds. The first run starts
// immediately, later runs follow the configured interval.
type Scheduler struct {
	runner   Runner
	prefs    Preferences
	metered  func() bool // reports whether the current network is metered, nil means never
	interval time.Duration
	wg       sync.WaitGroup
	cancel   context.CancelFunc
}

// SchedulerParams holds scheduler dependencies and tuning
type SchedulerParams struct {
	Runner   Runner
	Prefs    Preferences
	Metered  func() bool
	Interval time.Duration
}

// NewScheduler creates a periodic sync scheduler
func NewScheduler(p SchedulerParams) *Scheduler {
	if p.Interval == 0 {
		p.Interval = 30 * time.Minute
	}
	return &Scheduler{runner: p.Runner, prefs: p.Prefs, metered: p.Metered, interval: p.Interval}
}

// Start begins periodic runs in the background
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.loop(ctx)

	lgr.Printf("[INFO] sync scheduler started with interval %v", s.interval)
}

// Stop cancels the running loop and waits for it to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping sync scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] sync scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// run immediately on start
	s.run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.run(ctx)
		}
	}
}

func (s *Scheduler) run(ctx context.Context) {
	if s.skipMetered(ctx) {
		lgr.Printf("[INFO] periodic sync skipped, network is metered")
		return
	}
	if _, err := s.runner.SyncAll(ctx, domain.ScopeEverything(), domain.ReasonPeriodic); err != nil {
		lgr.Printf("[ERROR] periodic sync failed: %v", err)
	}
}

// skipMetered is true when the unmetered-only preference is on and the
// current network is metered
func (s *Scheduler) skipMetered(ctx context.Context) bool {
	if s.metered == nil || s.prefs == nil {
		return false
	}
	unmeteredOnly, err := s.prefs.SyncUnmeteredOnly(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to read unmetered-only preference: %v", err)
		return false
	}
	return unmeteredOnly && s.metered()
}
