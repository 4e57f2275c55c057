package maintenance

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Pruner removes dead deny-list entries and reports how many it removed.
type Pruner interface {
	Prune(ctx context.Context) (int64, error)
}

// Janitor runs a Pruner on a fixed interval in its own goroutine. A failed
// pass is logged and retried on the next tick; it never blocks request handling.
type Janitor struct {
	pruner   Pruner
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
	onPrune  func(removed int64)

	wg sync.WaitGroup
}

// NewJanitor creates a Janitor. onPrune, if non-nil, is called after every
// successful pass.
func NewJanitor(pruner Pruner, interval time.Duration, log zerolog.Logger, onPrune func(int64)) *Janitor {
	timeout := interval / 2
	if timeout <= 0 || timeout > time.Minute {
		timeout = time.Minute
	}
	return &Janitor{
		pruner:   pruner,
		interval: interval,
		timeout:  timeout,
		log:      log,
		onPrune:  onPrune,
	}
}

// Start launches the worker goroutine. It stops when ctx is cancelled.
// A non-positive interval disables the janitor.
func (j *Janitor) Start(ctx context.Context) {
	if j.interval <= 0 {
		j.log.Info().Msg("revocation janitor disabled")
		return
	}
	j.wg.Add(1)
	go j.run(ctx)
}

// Wait blocks until the worker goroutine has exited.
func (j *Janitor) Wait() {
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.pass(ctx)
		}
	}
}

func (j *Janitor) pass(ctx context.Context) {
	passCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	removed, err := j.pruner.Prune(passCtx)
	if err != nil {
		j.log.Warn().Err(err).Msg("revocation prune failed")
		return
	}
	if j.onPrune != nil {
		j.onPrune(removed)
	}
	if removed > 0 {
		j.log.Debug().Int64("removed", removed).Msg("pruned revoked tokens")
	}
}
