/*
Package stagehand dispatches run lifecycle notifications to a dynamically
registered set of listeners across concurrent worker goroutines.

A "run" is one complete execution instance of the host's workload, bounded by
a begin and a matching end notification. Stagehand does not know what a run
contains; the host hands it an opaque [Run] handle and stagehand fans the
begin/end calls out to registered function callbacks and owned actors, in
registration order.

# Concept

The host engine builds a [Blueprint] once, during a single-threaded setup
phase: it registers named callbacks and actor factories. Each worker then
builds its own lightweight [Sequence] from the blueprint, bound to that
worker's [Context], and drives begin/end pairs through it. The only resource
shared across workers is a [SharedActor], which funnels calls from every
worker into one underlying delegate behind a lock.

# Usage

	package main

	import (
		"log"

		"github.com/edvalls/stagehand"
	)

	func main() {
		job := stagehand.NewJob("demo")

		bp := stagehand.NewBlueprint("run-sequence")
		bp.CallAtBegin("announce", func(r *stagehand.Run) error {
			log.Printf("run %d starting", r.Number)
			return nil
		})

		seq, err := bp.Build(stagehand.NewContext(job, 0))
		if err != nil {
			log.Fatal(err)
		}
		defer seq.Close()

		run := &stagehand.Run{Number: 1}
		if err := seq.Begin(run); err != nil {
			log.Fatal(err)
		}
		// ... event-level work for the run ...
		if err := seq.End(run); err != nil {
			log.Fatal(err)
		}
	}

# Concurrency contract

Registration (Add, Adopt, actor factories) belongs to the single-threaded
setup phase. Once workers are running, a Sequence must only be driven by the
goroutine that owns it; concurrent mutation during dispatch is undefined.
Cross-worker sharing goes through a SharedActor, whose lock is held for the
duration of one delegated call. Keep shared delegate work short: the lock
serializes every worker that routes through it.
*/
package stagehand
