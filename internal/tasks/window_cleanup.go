package tasks

import (
	"sync"
	"time"

	"github.com/hbjsyndicate/syndicate-api/internal/logging"
)

// Sweeper drops expired state and reports how much it removed.
type Sweeper interface {
	Sweep() int
}

// WindowCleanup periodically removes elapsed rate limit windows so the
// in-memory store does not grow with every address ever seen.
type WindowCleanup struct {
	store    Sweeper
	interval time.Duration
	logger   *logging.Logger
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewWindowCleanup creates a cleanup task that runs every interval
func NewWindowCleanup(store Sweeper, interval time.Duration, logger *logging.Logger) *WindowCleanup {
	return &WindowCleanup{
		store:    store,
		interval: interval,
		logger:   logger,
		done:     make(chan struct{}),
	}
}

// Start begins the cleanup task in the background
func (wc *WindowCleanup) Start() {
	wc.wg.Add(1)
	go wc.runPeriodically()
}

// Stop gracefully stops the cleanup task
func (wc *WindowCleanup) Stop() {
	wc.stopOnce.Do(func() {
		close(wc.done)
	})
	wc.wg.Wait()
}

// runPeriodically runs the cleanup at regular intervals
func (wc *WindowCleanup) runPeriodically() {
	defer wc.wg.Done()

	ticker := time.NewTicker(wc.interval)
	defer ticker.Stop()

	for {
		select {
		case <-wc.done:
			return
		case <-ticker.C:
			wc.cleanup()
		}
	}
}

// cleanup performs one sweep
func (wc *WindowCleanup) cleanup() int {
	removed := wc.store.Sweep()
	if removed > 0 {
		wc.logger.Debug("Rate limit cleanup removed %d expired windows", removed)
	}
	return removed
}
