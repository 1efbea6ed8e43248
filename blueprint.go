package stagehand

import "fmt"

// ActorFactory builds one actor instance for the worker context it is given.
// Factories returning a SharedActor wrapper typically bind it to a delegate
// created once, outside the factory.
type ActorFactory func(ctx *Context) (Actor, error)

// Blueprint is the shared template a job's Sequences are built from. The host
// registers callbacks and actor factories once, during single-threaded setup;
// each worker then calls Build with its own Context to get a fresh Sequence
// bound to that worker. The blueprint itself is never driven and is read-only
// after setup, so Build may be called from many workers concurrently.
type Blueprint struct {
	name      string
	begin     []callbackEntry
	end       []callbackEntry
	factories []ActorFactory
	opts      []SequenceOption
}

// NewBlueprint creates an empty blueprint. Sequences built from it carry the
// given name.
func NewBlueprint(name string, opts ...SequenceOption) *Blueprint {
	return &Blueprint{name: name, opts: opts}
}

// CallAtBegin registers a begin-of-run callback on every built sequence.
func (b *Blueprint) CallAtBegin(name string, fn RunCallback) *Blueprint {
	b.begin = append(b.begin, callbackEntry{name: name, fn: fn})
	return b
}

// CallAtEnd registers an end-of-run callback on every built sequence.
func (b *Blueprint) CallAtEnd(name string, fn RunCallback) *Blueprint {
	b.end = append(b.end, callbackEntry{name: name, fn: fn})
	return b
}

// AddActor registers a factory producing one owned actor per built sequence.
func (b *Blueprint) AddActor(f ActorFactory) *Blueprint {
	b.factories = append(b.factories, f)
	return b
}

// Build constructs a fresh Sequence bound to ctx: callbacks registered in
// blueprint order, then one actor adopted per factory. A factory error or a
// duplicate actor name aborts the build and releases the actors adopted so
// far, so configuration mistakes fail at setup rather than mid-run.
func (b *Blueprint) Build(ctx *Context) (*Sequence, error) {
	seq := NewSequence(ctx, b.name, b.opts...)
	for _, c := range b.begin {
		seq.CallAtBegin(c.name, c.fn)
	}
	for _, c := range b.end {
		seq.CallAtEnd(c.name, c.fn)
	}
	for _, f := range b.factories {
		a, err := f(ctx)
		if err != nil {
			_ = seq.Close()
			return nil, fmt.Errorf("build sequence %q: %w", b.name, err)
		}
		if err := seq.Adopt(a); err != nil {
			_ = seq.Close()
			return nil, fmt.Errorf("build sequence %q: %w", b.name, err)
		}
	}
	return seq, nil
}
