package stagehand

import (
	"fmt"
	"sync"
)

// SharedActor makes one heavyweight listener logically present in every
// worker's Sequence without duplicating its state. Each worker owns its own
// SharedActor wrapper; all wrappers point at the same underlying delegate,
// and the wrapper's lock guarantees only one worker executes inside the
// delegate at a time.
//
// The lock is held for the duration of one delegated Begin or End call, so
// delegate work must stay short or it serializes otherwise-parallel workers.
type SharedActor struct {
	Action

	mu       sync.Mutex
	delegate Actor
}

// NewShared creates a shared wrapper bound to ctx under the given name. The
// delegate must be bound with Use before the wrapper sees its first run.
func NewShared(ctx *Context, name string) *SharedActor {
	return &SharedActor{Action: NewAction(ctx, name)}
}

// Use sets or replaces the underlying delegate. The swap happens under the
// wrapper's lock, so a Begin or End already in flight completes against the
// delegate it started with. The wrapper does not own the delegate.
func (s *SharedActor) Use(a Actor) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delegate = a
}

// ConfigureFiber rebinds the wrapper's own context to the new worker. The
// delegate is deliberately left alone: it is shared by every worker and is
// expected to be context-agnostic.
func (s *SharedActor) ConfigureFiber(ctx *Context) {
	s.Action.ConfigureFiber(ctx)
}

// Begin delegates the begin notification under the wrapper's lock.
func (s *SharedActor) Begin(r *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delegate == nil {
		return fmt.Errorf("%w: %q", ErrNoDelegate, s.Name())
	}
	return s.delegate.Begin(r)
}

// End delegates the end notification under the wrapper's lock.
func (s *SharedActor) End(r *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.delegate == nil {
		return fmt.Errorf("%w: %q", ErrNoDelegate, s.Name())
	}
	return s.delegate.End(r)
}
