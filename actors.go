package stagehand

import (
	"errors"
	"fmt"
	"io"
)

// ActorList is an ownership container of actors keyed by name. The list is
// the exclusive owner of its entries: Close releases every adopted actor
// exactly once. Iteration follows adoption order.
//
// Adopt is setup-phase only; ForEach and Get may then be used freely by the
// single goroutine driving the owning Sequence.
type ActorList struct {
	order  []Actor
	byName map[string]Actor
	closed bool
}

// Adopt takes ownership of the actor and inserts it keyed by its name.
// Adopting a second actor under an existing name is rejected with
// ErrDuplicateActor rather than silently overwriting the first.
func (l *ActorList) Adopt(a Actor) error {
	if a == nil {
		return errors.New("cannot adopt nil actor")
	}
	name := a.Name()
	if name == "" {
		return errors.New("cannot adopt unnamed actor")
	}
	if _, exists := l.byName[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateActor, name)
	}
	if l.byName == nil {
		l.byName = make(map[string]Actor)
	}
	l.byName[name] = a
	l.order = append(l.order, a)
	return nil
}

// Get returns the adopted actor with the given name. Missing names are a
// routine probe, not an error: the second return is false.
func (l *ActorList) Get(name string) (Actor, bool) {
	a, ok := l.byName[name]
	return a, ok
}

// Len returns the number of adopted actors.
func (l *ActorList) Len() int { return len(l.order) }

// Names returns the adopted actor names in adoption order.
func (l *ActorList) Names() []string {
	names := make([]string, 0, len(l.order))
	for _, a := range l.order {
		names = append(names, a.Name())
	}
	return names
}

// ForEach applies fn to every adopted actor in adoption order. The first
// error stops the iteration and is returned unmodified.
func (l *ActorList) ForEach(fn func(Actor) error) error {
	for _, a := range l.order {
		if err := fn(a); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every owned actor exactly once, in adoption order. Actors
// implementing io.Closer are closed; a failing actor does not stop the
// teardown of the rest, and all failures are joined into the returned error.
// Close is idempotent.
func (l *ActorList) Close() error {
	if l.closed {
		return nil
	}
	l.closed = true

	var errs []error
	for _, a := range l.order {
		c, ok := a.(io.Closer)
		if !ok {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("actor %q: %w", a.Name(), err))
		}
	}
	l.order = nil
	l.byName = nil
	return errors.Join(errs...)
}
