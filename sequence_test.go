package stagehand_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/edvalls/stagehand"
)

func TestSequenceDispatchOrder(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	seq := stagehand.NewSequence(ctx, "runs")

	var order []string
	seq.CallAtBegin("c1", func(r *stagehand.Run) error {
		order = append(order, "c1")
		return nil
	})
	seq.CallAtBegin("c2", func(r *stagehand.Run) error {
		order = append(order, "c2")
		return nil
	})
	seq.CallAtEnd("e1", func(r *stagehand.Run) error {
		order = append(order, "e1")
		return nil
	})

	x := newStubActor(ctx, "x")
	x.onBegin = func(r *stagehand.Run) { order = append(order, "x.begin") }
	if err := seq.Adopt(x); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	run := &stagehand.Run{Number: 1}
	if err := seq.Begin(run); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	want := []string{"c1", "c2", "x.begin"}
	if strings.Join(order, ",") != strings.Join(want, ",") {
		t.Fatalf("begin order = %v, want %v", order, want)
	}

	order = nil
	if err := seq.End(run); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	// End uses its own registrations: e1 then the actor's End.
	if strings.Join(order, ",") != "e1" {
		t.Fatalf("end callback order = %v, want [e1]", order)
	}
	if len(x.ends) != 1 || x.ends[0] != 1 {
		t.Fatalf("actor End calls = %v, want [1]", x.ends)
	}
}

func TestSequenceProtocolViolations(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	seq := stagehand.NewSequence(ctx, "runs")
	r1 := &stagehand.Run{Number: 1}
	r2 := &stagehand.Run{Number: 2}

	if err := seq.End(r1); !errors.Is(err, stagehand.ErrProtocolViolation) {
		t.Errorf("end without begin: expected ErrProtocolViolation, got %v", err)
	}

	if err := seq.Begin(r1); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := seq.Begin(r2); !errors.Is(err, stagehand.ErrProtocolViolation) {
		t.Errorf("double begin: expected ErrProtocolViolation, got %v", err)
	}

	if err := seq.End(r1); err != nil {
		t.Fatalf("matching End failed: %v", err)
	}
	if err := seq.End(r1); !errors.Is(err, stagehand.ErrProtocolViolation) {
		t.Errorf("second end: expected ErrProtocolViolation, got %v", err)
	}

	// Back in the configured state, a fresh begin/end pair works.
	if err := seq.Begin(r2); err != nil {
		t.Errorf("Begin after recovery failed: %v", err)
	}
	if err := seq.End(r2); err != nil {
		t.Errorf("End after recovery failed: %v", err)
	}
}

func TestSequenceActorFailureNamesListener(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	seq := stagehand.NewSequence(ctx, "runs")

	boom := errors.New("statistics overflow")
	bad := newStubActor(ctx, "stats")
	bad.beginErr = boom
	after := newStubActor(ctx, "after")

	if err := seq.Adopt(bad); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}
	if err := seq.Adopt(after); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	err := seq.Begin(&stagehand.Run{Number: 7})
	if !errors.Is(err, boom) {
		t.Fatalf("expected delegate failure to propagate, got %v", err)
	}
	if !strings.Contains(err.Error(), `"stats"`) {
		t.Errorf("error should identify the failing listener by name: %v", err)
	}
	if len(after.begins) != 0 {
		t.Error("dispatch must stop at the first failing actor, not continue")
	}
}

func TestSequenceContextPropagation(t *testing.T) {
	job := stagehand.NewJob("test")
	c1 := stagehand.NewContext(job, 0)
	seq := stagehand.NewSequence(c1, "runs")

	a := newStubActor(c1, "a")
	b := newStubActor(c1, "b")
	if err := seq.Adopt(a); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}
	if err := seq.Adopt(b); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	c2 := stagehand.NewContext(job, 5)
	seq.UpdateContext(c2)

	if seq.Context() != c2 {
		t.Error("sequence context not updated")
	}
	if a.Context() != c2 || b.Context() != c2 {
		t.Error("UpdateContext must propagate to every owned actor")
	}

	c3 := stagehand.NewContext(job, 6)
	seq.ConfigureFiber(c3)
	if seq.Context() != c3 || a.Context() != c3 || b.Context() != c3 {
		t.Error("ConfigureFiber must rebind the sequence and every owned actor")
	}
}

func TestSequenceGetDelegatesToActorList(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	seq := stagehand.NewSequence(ctx, "runs")

	a := newStubActor(ctx, "tracker")
	if err := seq.Adopt(a); err != nil {
		t.Fatalf("Adopt failed: %v", err)
	}

	got, ok := seq.Get("tracker")
	if !ok || got != stagehand.Actor(a) {
		t.Error("Get should return the adopted instance")
	}
	if _, ok := seq.Get("ghost"); ok {
		t.Error("Get with unknown name should report not-found")
	}

	names := seq.Actors()
	if len(names) != 1 || names[0] != "tracker" {
		t.Errorf("Actors() = %v, want [tracker]", names)
	}
}

func TestSequenceNameIsImmutable(t *testing.T) {
	ctx := stagehand.NewContext(stagehand.NewJob("test"), 0)
	seq := stagehand.NewSequence(ctx, "fixed")

	seq.UpdateContext(stagehand.NewContext(stagehand.NewJob("other"), 9))
	if seq.Name() != "fixed" {
		t.Errorf("name changed after rebind: %q", seq.Name())
	}
}
