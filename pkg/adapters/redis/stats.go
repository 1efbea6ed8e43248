// Package redis provides a run lifecycle actor that accumulates job-wide run
// statistics in Redis. One instance is typically shared by every worker of a
// job behind a stagehand.SharedActor; the Redis pipeline keeps each
// notification to a single round trip so the shared lock stays short.
package redis

import (
	"context"
	"fmt"
	"time"

	backend "github.com/redis/go-redis/v9"

	"github.com/edvalls/stagehand"
)

// StatsActor records run begin/end counts and a run index in Redis. It does
// not own the client; the caller closes it after the job tears down.
type StatsActor struct {
	stagehand.Action

	client  *backend.Client
	prefix  string
	timeout time.Duration
}

// Stats is a snapshot of the accumulated counters.
type Stats struct {
	Begun int64
	Ended int64
}

type Option func(*StatsActor)

// WithPrefix sets the key prefix for all stats keys.
func WithPrefix(prefix string) Option {
	return func(s *StatsActor) {
		s.prefix = prefix
	}
}

// WithTimeout bounds each Redis round trip.
func WithTimeout(d time.Duration) Option {
	return func(s *StatsActor) {
		s.timeout = d
	}
}

// New creates a stats actor on an existing client.
func New(client *backend.Client, ctx *stagehand.Context, opts ...Option) *StatsActor {
	s := &StatsActor{
		Action:  stagehand.NewAction(ctx, "redis-stats"),
		client:  client,
		prefix:  "stagehand:",
		timeout: 2 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StatsActor) key(suffix string) string {
	return s.prefix + suffix
}

func (s *StatsActor) opCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

// Begin counts the run start and indexes the run number by wall-clock time.
func (s *StatsActor) Begin(r *stagehand.Run) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, s.key("runs:begun"))
	pipe.ZAdd(ctx, s.key("runs:index"), backend.Z{
		Score:  float64(time.Now().UnixNano()),
		Member: r.Number,
	})
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record run %d begin: %w", r.Number, err)
	}
	return nil
}

// End counts the run completion and remembers the last finished run.
func (s *StatsActor) End(r *stagehand.Run) error {
	ctx, cancel := s.opCtx()
	defer cancel()

	pipe := s.client.Pipeline()
	pipe.Incr(ctx, s.key("runs:ended"))
	pipe.Set(ctx, s.key("runs:last"), r.Number, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record run %d end: %w", r.Number, err)
	}
	return nil
}

// Snapshot reads the accumulated counters back.
func (s *StatsActor) Snapshot(ctx context.Context) (Stats, error) {
	var stats Stats

	begun, err := s.client.Get(ctx, s.key("runs:begun")).Int64()
	if err != nil && err != backend.Nil {
		return stats, fmt.Errorf("read begun counter: %w", err)
	}
	ended, err := s.client.Get(ctx, s.key("runs:ended")).Int64()
	if err != nil && err != backend.Nil {
		return stats, fmt.Errorf("read ended counter: %w", err)
	}

	stats.Begun = begun
	stats.Ended = ended
	return stats, nil
}
