// Package metrics provides a run lifecycle actor that records Prometheus
// metrics: run counts, in-flight runs, and run durations.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/edvalls/stagehand"
)

// Actor counts runs and observes their durations. It keeps its own lock
// around the per-run start times, so one instance can be adopted directly by
// a single-worker sequence or shared across workers behind a
// stagehand.SharedActor.
type Actor struct {
	stagehand.Action

	// Collectors are exported so tests and dashboards can read them directly.
	Begun     prometheus.Counter
	Completed prometheus.Counter
	Active    prometheus.Gauge
	Durations prometheus.Histogram

	mu      sync.Mutex
	started map[int]time.Time
}

// New registers the run metrics against reg and returns the actor. A nil
// registerer defaults to the global Prometheus registry.
func New(ctx *stagehand.Context, reg prometheus.Registerer) (*Actor, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	a := &Actor{
		Action: stagehand.NewAction(ctx, "run-metrics"),
		Begun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stagehand_runs_begun_total",
			Help: "Total number of runs that received a begin notification.",
		}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stagehand_runs_completed_total",
			Help: "Total number of runs that received an end notification.",
		}),
		Active: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "stagehand_runs_active",
			Help: "Number of runs currently between begin and end.",
		}),
		Durations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stagehand_run_duration_seconds",
			Help:    "Wall-clock time between a run's begin and end.",
			Buckets: prometheus.DefBuckets,
		}),
		started: make(map[int]time.Time),
	}

	for _, c := range []prometheus.Collector{a.Begun, a.Completed, a.Active, a.Durations} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register run metrics: %w", err)
		}
	}
	return a, nil
}

// Begin records the run start.
func (a *Actor) Begin(r *stagehand.Run) error {
	a.mu.Lock()
	a.started[r.Number] = time.Now()
	a.mu.Unlock()

	a.Begun.Inc()
	a.Active.Inc()
	return nil
}

// End records the run completion and observes its duration. An end for a run
// whose begin was never seen still counts as completed but observes nothing.
func (a *Actor) End(r *stagehand.Run) error {
	a.mu.Lock()
	start, ok := a.started[r.Number]
	delete(a.started, r.Number)
	a.mu.Unlock()

	a.Completed.Inc()
	a.Active.Dec()
	if ok {
		a.Durations.Observe(time.Since(start).Seconds())
	}
	return nil
}
