package stagehand

import (
	"fmt"
	"log/slog"

	"github.com/edvalls/stagehand/internal/logging"
)

// Sequence fans run lifecycle notifications out to its registered callbacks
// and owned actors. On each event it fires the event's callback list first,
// then every adopted actor, both in registration order, so generic callbacks
// observe the run before any actor-specific logic.
//
// A Sequence moves between two states: configured (no run active) and in-run
// (between a Begin and its matching End). Begin while in-run, or End while
// configured, is a host-engine bug and is reported with ErrProtocolViolation.
//
// One Sequence belongs to one worker goroutine. Build per-worker Sequences
// from a shared Blueprint instead of driving one instance from many workers.
type Sequence struct {
	Action

	begin  Callbacks
	end    Callbacks
	actors ActorList

	inRun   bool
	current *Run

	log *slog.Logger
}

// SequenceOption configures a Sequence at construction.
type SequenceOption func(*Sequence)

// WithLogger sets the structured logger used for dispatch tracing.
func WithLogger(l *slog.Logger) SequenceOption {
	return func(s *Sequence) {
		if l != nil {
			s.log = l
		}
	}
}

// NewSequence creates an empty sequence bound to ctx under the given name.
func NewSequence(ctx *Context, name string, opts ...SequenceOption) *Sequence {
	s := &Sequence{
		Action: NewAction(ctx, name),
		log:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CallAtBegin registers a callback fired at the start of every run, before
// any owned actor runs. Setup phase only.
func (s *Sequence) CallAtBegin(name string, fn RunCallback) {
	s.begin.Add(name, fn)
}

// CallAtEnd registers a callback fired at the end of every run, before any
// owned actor's End. Setup phase only.
func (s *Sequence) CallAtEnd(name string, fn RunCallback) {
	s.end.Add(name, fn)
}

// Adopt takes ownership of an actor responding to every lifecycle event.
// Setup phase only; duplicate names are rejected with ErrDuplicateActor.
func (s *Sequence) Adopt(a Actor) error {
	return s.actors.Adopt(a)
}

// Get returns the owned actor with the given name, or false if none exists.
func (s *Sequence) Get(name string) (Actor, bool) {
	return s.actors.Get(name)
}

// Actors returns the owned actor names in adoption order.
func (s *Sequence) Actors() []string {
	return s.actors.Names()
}

// UpdateContext rebinds the sequence and every owned actor to a new context.
func (s *Sequence) UpdateContext(ctx *Context) {
	s.Action.UpdateContext(ctx)
	_ = s.actors.ForEach(func(a Actor) error {
		a.UpdateContext(ctx)
		return nil
	})
}

// ConfigureFiber rebinds the sequence and every owned actor for use on a
// newly spawned worker. The host calls this once per worker before the first
// run is dispatched.
func (s *Sequence) ConfigureFiber(ctx *Context) {
	s.Action.ConfigureFiber(ctx)
	_ = s.actors.ForEach(func(a Actor) error {
		a.ConfigureFiber(ctx)
		return nil
	})
}

// Begin dispatches the begin-of-run notification: callbacks first, then
// owned actors. The first listener failure stops the dispatch and is returned
// tagged with the listener's name; the sequence never catches and continues,
// since a silently skipped listener would corrupt per-run invariants.
func (s *Sequence) Begin(r *Run) error {
	if s.inRun {
		return fmt.Errorf("%w: sequence %q received begin for run %d while run %d is active",
			ErrProtocolViolation, s.Name(), r.Number, s.current.Number)
	}
	s.inRun = true
	s.current = r

	s.log.Debug("run begin", "sequence", s.Name(), "run", r.Number)
	if err := s.begin.Invoke(r); err != nil {
		return fmt.Errorf("sequence %q: begin: %w", s.Name(), err)
	}
	return s.actors.ForEach(func(a Actor) error {
		if err := a.Begin(r); err != nil {
			return fmt.Errorf("sequence %q: begin: actor %q: %w", s.Name(), a.Name(), err)
		}
		return nil
	})
}

// End dispatches the end-of-run notification, symmetric to Begin, using the
// end callback list's own registrations.
func (s *Sequence) End(r *Run) error {
	if !s.inRun {
		return fmt.Errorf("%w: sequence %q received end for run %d with no run active",
			ErrProtocolViolation, s.Name(), r.Number)
	}
	s.inRun = false
	s.current = nil

	s.log.Debug("run end", "sequence", s.Name(), "run", r.Number)
	if err := s.end.Invoke(r); err != nil {
		return fmt.Errorf("sequence %q: end: %w", s.Name(), err)
	}
	return s.actors.ForEach(func(a Actor) error {
		if err := a.End(r); err != nil {
			return fmt.Errorf("sequence %q: end: actor %q: %w", s.Name(), a.Name(), err)
		}
		return nil
	})
}

// Close releases every owned actor exactly once. Idempotent.
func (s *Sequence) Close() error {
	return s.actors.Close()
}
