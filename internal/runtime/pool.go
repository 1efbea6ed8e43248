// Package runtime drives run lifecycle dispatch across a pool of workers.
// It is the reference host-engine loop: each worker owns its own sequence
// built from a shared blueprint and drives strictly paired begin/end calls.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/edvalls/stagehand"
	"github.com/edvalls/stagehand/internal/logging"
)

// Work is the host's per-run payload, executed between a run's begin and end.
type Work func(ctx context.Context, r *stagehand.Run) error

// Pool executes a fixed number of runs per worker, dispatching lifecycle
// notifications through per-worker sequences.
type Pool struct {
	blueprint *stagehand.Blueprint
	job       *stagehand.Job
	workers   int
	runs      int
	work      Work
	log       *slog.Logger
}

type PoolOption func(*Pool)

// WithWork sets the payload executed inside each run.
func WithWork(w Work) PoolOption {
	return func(p *Pool) {
		p.work = w
	}
}

// WithPoolLogger sets the pool's structured logger.
func WithPoolLogger(l *slog.Logger) PoolOption {
	return func(p *Pool) {
		if l != nil {
			p.log = l
		}
	}
}

// NewPool creates a pool of workers, each driving runs runs built from the
// blueprint against the shared job state.
func NewPool(bp *stagehand.Blueprint, job *stagehand.Job, workers, runs int, opts ...PoolOption) *Pool {
	p := &Pool{
		blueprint: bp,
		job:       job,
		workers:   workers,
		runs:      runs,
		log:       logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run spawns the workers and waits for them to finish. Each worker builds
// its own sequence, rebinds it to the worker's context before the first run,
// and closes it on the way out. The first failure aborts that worker; all
// worker failures are joined into the returned error.
func (p *Pool) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make([]error, p.workers)

	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			errs[worker] = p.runWorker(ctx, worker)
		}(w)
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (p *Pool) runWorker(ctx context.Context, worker int) error {
	wctx := stagehand.NewContext(p.job, worker)

	seq, err := p.blueprint.Build(wctx)
	if err != nil {
		return fmt.Errorf("worker %d: %w", worker, err)
	}
	defer func() {
		if cerr := seq.Close(); cerr != nil {
			p.log.Warn("sequence teardown failed", "worker", worker, "error", cerr)
		}
	}()

	// Rebind before the first run, as a newly spawned worker must.
	seq.ConfigureFiber(wctx)

	log := p.log.With("worker", worker)
	for i := 0; i < p.runs; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}

		run := &stagehand.Run{Number: worker*p.runs + i}
		if err := seq.Begin(run); err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		if p.work != nil {
			if err := p.work(ctx, run); err != nil {
				return fmt.Errorf("worker %d: run %d: %w", worker, run.Number, err)
			}
		}
		if err := seq.End(run); err != nil {
			return fmt.Errorf("worker %d: %w", worker, err)
		}
		log.Debug("run complete", "run", run.Number)
	}
	return nil
}
