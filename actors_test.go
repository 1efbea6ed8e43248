package stagehand_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/edvalls/stagehand"
)

// stubActor records begin/end invocations and optionally fails on demand.
// It is shared by the sequence and blueprint tests in this package.
type stubActor struct {
	stagehand.Action

	mu       sync.Mutex
	begins   []int
	ends     []int
	beginErr error
	endErr   error

	closed   int
	closeErr error

	onBegin func(r *stagehand.Run)
}

func newStubActor(ctx *stagehand.Context, name string) *stubActor {
	return &stubActor{Action: stagehand.NewAction(ctx, name)}
}

func (s *stubActor) Begin(r *stagehand.Run) error {
	s.mu.Lock()
	s.begins = append(s.begins, r.Number)
	s.mu.Unlock()
	if s.onBegin != nil {
		s.onBegin(r)
	}
	return s.beginErr
}

func (s *stubActor) End(r *stagehand.Run) error {
	s.mu.Lock()
	s.ends = append(s.ends, r.Number)
	s.mu.Unlock()
	return s.endErr
}

func (s *stubActor) Close() error {
	s.closed++
	return s.closeErr
}

func TestActorListAdoptAndGet(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	var list stagehand.ActorList

	a := newStubActor(ctx, "alpha")
	if err := list.Adopt(a); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	got, ok := list.Get("alpha")
	if !ok {
		t.Fatal("Get should find the adopted actor")
	}
	if got != stagehand.Actor(a) {
		t.Error("Get returned a different instance than adopted")
	}

	if _, ok := list.Get("missing"); ok {
		t.Error("Get with an unregistered name should report not-found")
	}
}

func TestActorListRejectsDuplicateNames(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	var list stagehand.ActorList

	first := newStubActor(ctx, "dup")
	second := newStubActor(ctx, "dup")

	if err := list.Adopt(first); err != nil {
		t.Fatalf("first Adopt failed: %v", err)
	}
	err := list.Adopt(second)
	if !errors.Is(err, stagehand.ErrDuplicateActor) {
		t.Fatalf("expected ErrDuplicateActor, got %v", err)
	}

	// The original adoption must survive the rejected one.
	got, ok := list.Get("dup")
	if !ok || got != stagehand.Actor(first) {
		t.Error("rejected adoption should leave the first actor in place")
	}
	if list.Len() != 1 {
		t.Errorf("expected 1 actor after rejected adopt, got %d", list.Len())
	}
}

func TestActorListRejectsNilAndUnnamed(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	var list stagehand.ActorList

	if err := list.Adopt(nil); err == nil {
		t.Error("adopting nil should fail")
	}
	if err := list.Adopt(newStubActor(ctx, "")); err == nil {
		t.Error("adopting an unnamed actor should fail")
	}
}

func TestActorListForEachInAdoptionOrder(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	var list stagehand.ActorList

	names := []string{"c", "a", "b"}
	for _, n := range names {
		if err := list.Adopt(newStubActor(ctx, n)); err != nil {
			t.Fatalf("Adopt %s failed: %v", n, err)
		}
	}

	var seen []string
	err := list.ForEach(func(a stagehand.Actor) error {
		seen = append(seen, a.Name())
		return nil
	})
	if err != nil {
		t.Fatalf("ForEach failed: %v", err)
	}

	for i, n := range names {
		if seen[i] != n {
			t.Errorf("position %d: expected %s, got %s", i, n, seen[i])
		}
	}
}

func TestActorListCloseReleasesAllExactlyOnce(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	var list stagehand.ActorList

	failing := newStubActor(ctx, "failing")
	failing.closeErr = errors.New("teardown failed")
	actors := []*stubActor{
		newStubActor(ctx, "one"),
		failing,
		newStubActor(ctx, "three"),
	}
	for _, a := range actors {
		if err := list.Adopt(a); err != nil {
			t.Fatalf("Adopt failed: %v", err)
		}
	}

	err := list.Close()
	if !errors.Is(err, failing.closeErr) {
		t.Fatalf("Close should surface the failing actor's error, got %v", err)
	}

	for _, a := range actors {
		if a.closed != 1 {
			t.Errorf("actor %q closed %d times, want exactly once", a.Name(), a.closed)
		}
	}

	// Second Close is a no-op.
	if err := list.Close(); err != nil {
		t.Errorf("second Close should be nil, got %v", err)
	}
	for _, a := range actors {
		if a.closed != 1 {
			t.Errorf("actor %q closed again on idempotent Close", a.Name())
		}
	}
}
