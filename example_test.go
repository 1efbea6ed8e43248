package stagehand_test

import (
	"fmt"

	"github.com/edvalls/stagehand"
)

type reporter struct {
	stagehand.Action
}

func (a *reporter) Begin(r *stagehand.Run) error {
	fmt.Printf("reporter: begin run %d\n", r.Number)
	return nil
}

func (a *reporter) End(r *stagehand.Run) error {
	fmt.Printf("reporter: end run %d\n", r.Number)
	return nil
}

func Example() {
	job := stagehand.NewJob("example")
	ctx := stagehand.NewContext(job, 0)

	seq := stagehand.NewSequence(ctx, "runs")
	seq.CallAtBegin("announce", func(r *stagehand.Run) error {
		fmt.Printf("starting run %d\n", r.Number)
		return nil
	})
	if err := seq.Adopt(&reporter{Action: stagehand.NewAction(ctx, "reporter")}); err != nil {
		fmt.Println(err)
		return
	}
	defer seq.Close()

	run := &stagehand.Run{Number: 1}
	if err := seq.Begin(run); err != nil {
		fmt.Println(err)
		return
	}
	if err := seq.End(run); err != nil {
		fmt.Println(err)
		return
	}

	// Output:
	// starting run 1
	// reporter: begin run 1
	// reporter: end run 1
}

func ExampleBlueprint() {
	job := stagehand.NewJob("example")

	bp := stagehand.NewBlueprint("runs")
	bp.AddActor(func(ctx *stagehand.Context) (stagehand.Actor, error) {
		return &reporter{Action: stagehand.NewAction(ctx, "reporter")}, nil
	})

	// Each worker builds its own sequence from the shared blueprint.
	for worker := 0; worker < 2; worker++ {
		seq, err := bp.Build(stagehand.NewContext(job, worker))
		if err != nil {
			fmt.Println(err)
			return
		}
		run := &stagehand.Run{Number: worker}
		_ = seq.Begin(run)
		_ = seq.End(run)
		_ = seq.Close()
	}

	// Output:
	// reporter: begin run 0
	// reporter: end run 0
	// reporter: begin run 1
	// reporter: end run 1
}
