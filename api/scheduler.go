/*
scheduler.go - Automated generation scheduler

PURPOSE:
  Periodically regenerates the current month's compensation records so
  attendance edits made in the upstream systems flow into draft records
  without anyone pressing the generate button.

DESIGN:
  - Runs a background goroutine with a configurable check interval
  - Each tick regenerates the current calendar month only
  - Regeneration is idempotent and transactional, so overlapping manual
    runs are harmless
  - Skips quietly when the month has no active staff

CONFIGURATION:
  - CheckInterval: How often to regenerate (default: 1 hour)
  - Enabled: Whether the scheduler is active (default: true)

USAGE:
  scheduler := NewGenerationScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: POST /api/bisyaroh/generate (manual generation)
  - bisyaroh/generate.go: GenerationService
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/alhikam/bisyaroh-engine/bisyaroh"
)

// GenerationScheduler regenerates the current month on a timer.
type GenerationScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewGenerationScheduler creates a new scheduler.
func NewGenerationScheduler(handler *Handler) *GenerationScheduler {
	return &GenerationScheduler{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (gs *GenerationScheduler) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	gs.ticker = time.NewTicker(gs.CheckInterval)
	gs.wg.Add(1)

	go gs.run()

	log.Printf("[Scheduler] Started with check interval: %v", gs.CheckInterval)
}

// Stop stops the scheduler.
func (gs *GenerationScheduler) Stop() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.ticker != nil {
		gs.ticker.Stop()
		close(gs.stop)
		gs.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (gs *GenerationScheduler) run() {
	defer gs.wg.Done()

	// Run immediately on start
	gs.regenerateCurrentMonth()

	for {
		select {
		case <-gs.ticker.C:
			gs.regenerateCurrentMonth()
		case <-gs.stop:
			return
		}
	}
}

func (gs *GenerationScheduler) regenerateCurrentMonth() {
	ctx := context.Background()
	now := time.Now()
	period := bisyaroh.Period{Month: int(now.Month()), Year: now.Year()}

	processed, err := gs.Handler.Generation.Generate(ctx, period)
	if err != nil {
		log.Printf("[Scheduler] Generation for %s failed: %v", period, err)
		return
	}
	if processed > 0 {
		log.Printf("[Scheduler] Regenerated %s: %d records", period, processed)
	}
}

// RunNow triggers an immediate regeneration (for testing/admin).
func (gs *GenerationScheduler) RunNow() {
	gs.regenerateCurrentMonth()
}

// GetNextRunTime returns when the next scheduled run will occur.
func (gs *GenerationScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(gs.CheckInterval)
}
