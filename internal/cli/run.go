// Package cli wires a job configuration into a running dispatch pool: the
// blueprint, its listeners, the introspection server, and the worker pool.
package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	backend "github.com/redis/go-redis/v9"

	"github.com/edvalls/stagehand"
	httpadapter "github.com/edvalls/stagehand/internal/adapters/http"
	"github.com/edvalls/stagehand/internal/logging"
	"github.com/edvalls/stagehand/internal/presentation/tui"
	"github.com/edvalls/stagehand/internal/runtime"
	"github.com/edvalls/stagehand/pkg/actors/metrics"
	redisactor "github.com/edvalls/stagehand/pkg/adapters/redis"
	"github.com/edvalls/stagehand/pkg/config"
)

// RunJob executes one dispatch job as described by cfg and prints a summary.
func RunJob(ctx context.Context, cfg *config.Config) error {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	log := logging.New(level)

	job := stagehand.NewJob(cfg.Job)
	masterCtx := stagehand.NewContext(job, stagehand.SharedWorker)

	bp := stagehand.NewBlueprint("run-sequence", stagehand.WithLogger(log))
	bp.CallAtBegin("log-begin", func(r *stagehand.Run) error {
		log.Debug("run starting", "job", cfg.Job, "run", r.Number)
		return nil
	})
	bp.CallAtEnd("log-end", func(r *stagehand.Run) error {
		log.Debug("run finished", "job", cfg.Job, "run", r.Number)
		return nil
	})

	var registry *prometheus.Registry
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		// One shared metrics delegate; each worker routes through its own
		// locked wrapper.
		delegate, err := metrics.New(masterCtx, registry)
		if err != nil {
			return fmt.Errorf("setup metrics: %w", err)
		}
		bp.AddActor(func(c *stagehand.Context) (stagehand.Actor, error) {
			w := stagehand.NewShared(c, "shared-run-metrics")
			w.Use(delegate)
			return w, nil
		})
	}

	var statsDelegate *redisactor.StatsActor
	if cfg.Redis.Enabled {
		client := backend.NewClient(&backend.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()

		statsDelegate = redisactor.New(client, masterCtx, redisactor.WithPrefix(cfg.Redis.Prefix))
		bp.AddActor(func(c *stagehand.Context) (stagehand.Actor, error) {
			w := stagehand.NewShared(c, "shared-redis-stats")
			w.Use(statsDelegate)
			return w, nil
		})
	}

	if cfg.HTTP.Enabled {
		// The master sequence exists only so the introspection surface can
		// report the configured listener set; it never dispatches runs.
		master, err := bp.Build(masterCtx)
		if err != nil {
			return fmt.Errorf("build master sequence: %w", err)
		}
		defer master.Close()

		var gatherer prometheus.Gatherer
		if registry != nil {
			gatherer = registry
		}
		srv := &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: httpadapter.NewHandler(master, gatherer),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("introspection server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		log.Info("introspection server listening", "addr", cfg.HTTP.Addr)
	}

	tui.PrintBanner()
	log.Info("job starting", "job", cfg.Job, "workers", cfg.Workers, "runs_per_worker", cfg.Runs)

	pool := runtime.NewPool(bp, job, cfg.Workers, cfg.Runs, runtime.WithPoolLogger(log))
	start := time.Now()
	if err := pool.Run(ctx); err != nil {
		return fmt.Errorf("job %q: %w", cfg.Job, err)
	}
	elapsed := time.Since(start)

	tui.PrintSummary(cfg.Job, cfg.Workers, cfg.Workers*cfg.Runs, elapsed)

	if statsDelegate != nil {
		stats, err := statsDelegate.Snapshot(ctx)
		if err != nil {
			log.Warn("could not read run statistics", "error", err)
		} else {
			log.Info("run statistics", "begun", stats.Begun, "ended", stats.Ended)
		}
	}
	return nil
}
