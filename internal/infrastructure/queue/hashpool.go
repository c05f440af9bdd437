package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/retailcore/inventory-system/internal/api/metrics"
)

const (
	defaultWorkers = 4
	queueBuffer    = 64
)

// HashPool runs CPU-heavy password hashing on a fixed set of workers so that
// bcrypt never stalls request-handling goroutines. Submission and waiting are
// both bounded by the caller's context: a cancelled caller unblocks
// immediately even if the job itself still completes on a worker.
type HashPool struct {
	jobs chan job
	log  zerolog.Logger
}

type job struct {
	fn   func()
	done chan struct{}
}

// NewHashPool creates a pool with numWorkers workers and starts them.
// If numWorkers <= 0, defaultWorkers is used.
func NewHashPool(numWorkers int, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	p := &HashPool{
		jobs: make(chan job, queueBuffer),
		log:  log,
	}
	for i := 0; i < numWorkers; i++ {
		go p.runWorker(i)
	}
	return p
}

// Run executes fn on a pool worker and waits for it to finish. It returns
// ctx.Err() if the context is cancelled while the job is queued or running;
// in that case fn may still run to completion on the worker, but the caller
// no longer waits for it.
func (p *HashPool) Run(ctx context.Context, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	j := job{fn: fn, done: make(chan struct{})}

	metrics.HashQueueDepth.Inc()
	select {
	case p.jobs <- j:
	case <-ctx.Done():
		metrics.HashQueueDepth.Dec()
		return ctx.Err()
	}

	select {
	case <-j.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs and lets workers drain and exit.
func (p *HashPool) Close() {
	close(p.jobs)
}

func (p *HashPool) runWorker(id int) {
	for j := range p.jobs {
		metrics.HashQueueDepth.Dec()
		start := time.Now()
		j.fn()
		metrics.HashDuration.Observe(time.Since(start).Seconds())
		close(j.done)
	}
	p.log.Debug().Int("worker_id", id).Msg("hash worker stopped")
}
