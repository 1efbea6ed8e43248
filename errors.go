package stagehand

import "errors"

// ErrDuplicateActor is returned when an actor is adopted under a name that is
// already present in the list. Duplicate adoption is rejected rather than
// silently overwritten, so configuration mistakes surface at setup time.
var ErrDuplicateActor = errors.New("duplicate actor name")

// ErrProtocolViolation is returned when begin/end arrive out of order: a
// second begin without an intervening end, or an end with no preceding begin.
// It indicates a host-engine bug and should be treated as fatal.
var ErrProtocolViolation = errors.New("run protocol violation")

// ErrNoDelegate is returned when a SharedActor is exercised before Use has
// bound an underlying delegate.
var ErrNoDelegate = errors.New("no delegate bound to shared actor")
