package workflow_test

import (
	"fmt"

	"github.com/clonalstack/clonaltrace/timeseries"
	"github.com/clonalstack/clonaltrace/workflow"
)

// Scenario:
//
//	Three mutations sweep one inside another: A rises first, B appears on
//	A's background, C appears on B's. The pipeline keeps them as three
//	genotypes and recovers the nested chain down to the ancestral root.
//
// ExampleRun demonstrates the one-call pipeline over a small table.
func ExampleRun() {
	table, _ := timeseries.NewTable([]float64{0, 1, 2, 3, 4})
	_ = table.AddRow("A", []float64{0.2, 0.5, 0.9, 0.95, 0.95})
	_ = table.AddRow("B", []float64{0.0, 0.3, 0.7, 0.85, 0.9})
	_ = table.AddRow("C", []float64{0.0, 0.0, 0.4, 0.6, 0.7})

	res, err := workflow.Run(table, workflow.DefaultOptions())
	if err != nil {
		fmt.Println("error:", err)

		return
	}

	for _, e := range res.Edges {
		fmt.Printf("%s -> %s\n", e.Parent, e.Identity)
	}
	// Output:
	// genotype-0 -> genotype-1
	// genotype-1 -> genotype-2
	// genotype-2 -> genotype-3
}
