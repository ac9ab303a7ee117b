package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/secondbank/mobile-api/internal/cache"
	"github.com/secondbank/mobile-api/internal/observability"
	"github.com/secondbank/mobile-api/internal/validation"
)

// Janitor reclaims expired validation-cache entries and resets the validator
// session once it has been idle long enough. It polls on a fixed interval.
type Janitor struct {
	cache     *cache.TTL[string]
	validator *validation.Service
	interval  time.Duration
	idleTTL   time.Duration
	log       *zap.Logger
	stopCh    chan struct{}
}

func NewJanitor(c *cache.TTL[string], v *validation.Service, log *zap.Logger) *Janitor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Janitor{
		cache:     c,
		validator: v,
		interval:  time.Minute,
		idleTTL:   10 * time.Minute,
		log:       log,
		stopCh:    make(chan struct{}),
	}
}

// WithInterval sets the poll interval.
func (j *Janitor) WithInterval(d time.Duration) *Janitor {
	if d > 0 {
		j.interval = d
	}
	return j
}

// WithIdleTTL sets how long the validator session may sit untouched before
// it is reset.
func (j *Janitor) WithIdleTTL(d time.Duration) *Janitor {
	if d > 0 {
		j.idleTTL = d
	}
	return j
}

// Run starts the janitor loop and returns a stop function that blocks until
// the loop has exited.
func (j *Janitor) Run(ctx context.Context) func() {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-j.stopCh:
				return
			case <-ticker.C:
				j.sweep()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(j.stopCh) })
		wg.Wait()
	}
}

func (j *Janitor) sweep() {
	removed := j.cache.SweepExpired()
	reset := false
	if j.validator != nil {
		reset = j.validator.ResetIfIdle(j.idleTTL)
	}

	observability.IncrementWorkerRun("janitor", "ok")
	if removed > 0 || reset {
		j.log.Debug("janitor sweep",
			zap.Int("cache_entries_removed", removed),
			zap.Bool("session_reset", reset),
		)
	}
}
