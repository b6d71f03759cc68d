// Package main provides a profiling wrapper for MDUSim to identify
// simulation performance bottlenecks.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/sarchlab/mdusim/benchmarks"
)

var (
	cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")
	memProfile = flag.String("memprofile", "", "write memory profile to file")
	iterations = flag.Int("iterations", 100, "number of times to repeat the workload set")
	width      = flag.Uint("width", 32, "operand width in bits (1-64)")
)

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error starting CPU profile: %v\n", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	config := benchmarks.DefaultConfig()
	config.Width = *width
	config.Output = io.Discard

	harness := benchmarks.NewHarness(config)
	harness.AddWorkloads(benchmarks.GetWorkloads())

	var totalOps, totalCycles uint64
	start := time.Now()
	for i := 0; i < *iterations; i++ {
		for _, r := range harness.RunAll() {
			totalOps += r.Operations
			totalCycles += r.SimulatedCycles
			if r.Mismatches > 0 {
				fmt.Fprintf(os.Stderr, "workload %s: %d mismatches\n",
					r.Name, r.Mismatches)
				os.Exit(1)
			}
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("Iterations: %d\n", *iterations)
	fmt.Printf("Operations: %d\n", totalOps)
	fmt.Printf("Simulated Cycles: %d\n", totalCycles)
	fmt.Printf("Wall Time: %v\n", elapsed)
	fmt.Printf("Simulation Rate: %.0f cycles/sec\n",
		float64(totalCycles)/elapsed.Seconds())

	if *memProfile != "" {
		f, err := os.Create(*memProfile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating memory profile: %v\n", err)
			os.Exit(1)
		}
		defer func() { _ = f.Close() }()

		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing memory profile: %v\n", err)
			os.Exit(1)
		}
	}
}
