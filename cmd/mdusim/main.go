// Package main provides the entry point for MDUSim.
// MDUSim is a cycle-accurate RISC-V multiply/divide unit simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sarchlab/mdusim/emu"
	"github.com/sarchlab/mdusim/insts"
	"github.com/sarchlab/mdusim/loader"
	"github.com/sarchlab/mdusim/timing/latency"
	"github.com/sarchlab/mdusim/timing/mdu"
)

var (
	configPath = flag.String("config", "", "Path to timing configuration JSON file")
	width      = flag.Uint("width", 0, "Operand width in bits (1-64, default from config)")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func main() {
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Usage: mdusim [options] <trace file>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	tracePath := flag.Arg(0)

	entries, err := loader.Load(tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading trace: %v\n", err)
		os.Exit(1)
	}

	timingConfig, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading timing config: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Loaded: %s (%d entries)\n", tracePath, len(entries))
		fmt.Printf("Width: %d bits\n", timingConfig.Width)
	}

	if err := run(entries, timingConfig); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// resolveConfig builds the timing configuration from the -config and
// -width flags. An explicit -width overrides the config file.
func resolveConfig() (*latency.TimingConfig, error) {
	config := latency.DefaultTimingConfig()
	if *configPath != "" {
		loaded, err := latency.LoadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	if *width != 0 {
		config = latency.ForWidth(*width)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// run replays the trace against the timing model, cross-checking every
// result against the functional model.
func run(entries []loader.Entry, config *latency.TimingConfig) error {
	unit := mdu.New(mdu.Config{Width: config.Width})
	golden := emu.NewMDU(config.Width)
	table := latency.NewTableWithConfig(config)
	regFile := &emu.RegFile{}
	decoder := insts.NewDecoder()

	mismatches := 0
	operations := 0

	for _, entry := range entries {
		switch entry.Kind {
		case loader.EntrySet:
			regFile.WriteReg(entry.Reg, entry.Value)
			if *verbose {
				fmt.Printf("set   x%-2d = %#x\n", entry.Reg, entry.Value)
			}
			continue

		case loader.EntryExec:
			inst := decoder.Decode(entry.Word)
			if inst.Op == insts.OpUnknown {
				return fmt.Errorf("line %d: word %#08x is not an M-extension instruction",
					entry.Line, entry.Word)
			}

			a := regFile.ReadReg(inst.Rs1)
			b := regFile.ReadReg(inst.Rs2)
			value, cycles := execute(unit, inst.Op, a, b)
			regFile.WriteReg(inst.Rd, value)

			operations++
			mismatches += check(golden, table, inst.Op, a, b, value, cycles)
			fmt.Printf("%-6v x%-2d = %#x  (%d cycles)\n",
				inst.Op, inst.Rd, value, cycles)

		case loader.EntryImm:
			value, cycles := execute(unit, entry.Op, entry.OperandA, entry.OperandB)

			operations++
			mismatches += check(golden, table, entry.Op,
				entry.OperandA, entry.OperandB, value, cycles)
			fmt.Printf("%-6v %#x %#x = %#x  (%d cycles)\n",
				entry.Op, entry.OperandA, entry.OperandB, value, cycles)
		}
	}

	stats := unit.Stats()
	fmt.Printf("\nOperations: %d\n", operations)
	fmt.Printf("Total Cycles: %d\n", stats.Cycles)
	if operations > 0 {
		fmt.Printf("CPO: %.2f\n", float64(stats.Cycles)/float64(operations))
	}
	if *verbose {
		mul := unit.MultiplierStats()
		div := unit.DividerStats()
		fmt.Printf("Multiplies: %d (%d high-word)\n", mul.Accepted, mul.HighWord)
		fmt.Printf("Divides: %d (%d zero divisors)\n", div.Accepted, div.ZeroDivisors)
	}

	if mismatches > 0 {
		return fmt.Errorf("%d result(s) disagreed with the functional model", mismatches)
	}
	return nil
}

// execute presents one request and ticks the unit until its ready strobe,
// returning the result value and the latency in cycles after acceptance.
func execute(unit *mdu.MDU, op insts.Op, a, b uint64) (uint64, uint64) {
	cycles := uint64(0)
	res := unit.Tick(mdu.Request{
		Valid:    true,
		Funct3:   op.Funct3(),
		OperandA: a,
		OperandB: b,
	})

	for !res.Ready {
		res = unit.Idle()
		cycles++
	}

	return res.Value, cycles
}

// check compares a timing-model result and latency against the functional
// model and the latency table, returning 1 on any disagreement.
func check(golden *emu.MDU, table *latency.Table, op insts.Op,
	a, b, value, cycles uint64) int {
	expected := golden.Execute(op, a, b)
	expectedCycles := table.GetLatency(&insts.Instruction{Op: op})

	if value != expected {
		fmt.Printf("  MISMATCH: functional model says %#x\n", expected)
		return 1
	}
	if cycles != expectedCycles {
		fmt.Printf("  MISMATCH: latency table says %d cycles\n", expectedCycles)
		return 1
	}
	return 0
}
