// Command benchmark runs the MDUSim workload harness.
//
// Usage:
//
//	go run ./cmd/benchmark [flags]
//
// Flags:
//
//	-csv     Output results in CSV format (default: human-readable)
//	-json    Output results in JSON format
//	-width   Operand width in bits (1-64, default 32)
//
// Example:
//
//	# Run all workloads with human-readable output
//	go run ./cmd/benchmark
//
//	# Output CSV for spreadsheet comparison
//	go run ./cmd/benchmark -csv > results.csv
//
// Every timing-model result is cross-checked against the functional model,
// so a non-zero mismatch count means the two models disagree.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/mdusim/benchmarks"
	"github.com/sarchlab/mdusim/timing/core"
	"github.com/sarchlab/mdusim/timing/mdu"
)

func main() {
	csvOutput := flag.Bool("csv", false, "Output results in CSV format")
	jsonOutput := flag.Bool("json", false, "Output results in JSON format")
	width := flag.Uint("width", 32, "Operand width in bits (1-64)")
	flag.Parse()

	config := benchmarks.DefaultConfig()
	config.Width = *width
	config.Output = os.Stdout

	harness := benchmarks.NewHarness(config)
	harness.AddWorkloads(benchmarks.GetWorkloads())

	if !*csvOutput && !*jsonOutput {
		fmt.Println("MDUSim Workload Harness")
		fmt.Println("=======================")
		fmt.Printf("Width: %d bits\n", config.Width)
		fmt.Println("")
	}

	results := harness.RunAll()

	switch {
	case *csvOutput:
		harness.WriteCSV(results)
	case *jsonOutput:
		if err := harness.WriteJSON(results); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		harness.PrintResults(results)
		runEventDriven(config.Width)
	}

	for _, r := range results {
		if r.Mismatches > 0 {
			os.Exit(1)
		}
	}
}

// runEventDriven replays the mixed workload through the event-driven core
// so the synchronous harness numbers can be compared against the engine.
func runEventDriven(width uint) {
	engine := sim.NewSerialEngine()
	unit := mdu.New(mdu.Config{Width: width})
	c := core.NewCore(engine, 1*sim.GHz, unit)

	var workload benchmarks.Workload
	for _, w := range benchmarks.GetWorkloads() {
		if w.Name == "mixed_stream" {
			workload = w
		}
	}

	for _, op := range workload.Ops {
		c.Enqueue(op.Op, op.OperandA, op.OperandB)
	}

	if err := c.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running event-driven core: %v\n", err)
		os.Exit(1)
	}

	stats := c.Stats()
	fmt.Println("=== Event-Driven Replay (mixed_stream) ===")
	fmt.Println("")
	fmt.Printf("  Operations:       %d\n", stats.Completed)
	fmt.Printf("  Simulated Cycles: %d\n", stats.Cycles)
	fmt.Printf("  CPO:              %.2f\n", stats.CPO())
}
