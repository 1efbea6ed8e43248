package stagehand

import "fmt"

// RunCallback is a function callback fired on a run lifecycle event. The
// registrant owns whatever state the function captures and must keep it alive
// for as long as the callback stays registered.
type RunCallback func(r *Run) error

type callbackEntry struct {
	name string
	fn   RunCallback
}

// Callbacks is an ordered list of named run callbacks. Invocation order
// equals registration order; entries are never reordered or deduplicated, so
// registering the same function twice fires it twice.
//
// Add is setup-phase only. Concurrent Add while another goroutine is inside
// Invoke is undefined; the intended pattern is configure-then-run.
type Callbacks struct {
	entries []callbackEntry
}

// Add registers a callback under a name used in failure reports. It performs
// no uniqueness check and never fails.
func (c *Callbacks) Add(name string, fn RunCallback) {
	c.entries = append(c.entries, callbackEntry{name: name, fn: fn})
}

// Len returns the number of registered callbacks.
func (c *Callbacks) Len() int { return len(c.entries) }

// Invoke fires every registered callback in registration order, passing the
// run handle through. The first callback error stops the dispatch and is
// returned wrapped with the callback's name.
//
// A nil callback function is a programming error, not a runtime condition:
// Invoke panics instead of skipping it, since a silent skip inside the host's
// run loop would mask the bug.
func (c *Callbacks) Invoke(r *Run) error {
	for _, e := range c.entries {
		if e.fn == nil {
			panic(fmt.Sprintf("stagehand: callback %q has nil function", e.name))
		}
		if err := e.fn(r); err != nil {
			return fmt.Errorf("callback %q: %w", e.name, err)
		}
	}
	return nil
}
