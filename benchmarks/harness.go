// Package benchmarks provides workload infrastructure for validating and
// profiling the multiply/divide unit timing model.
package benchmarks

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sarchlab/mdusim/emu"
	"github.com/sarchlab/mdusim/insts"
	"github.com/sarchlab/mdusim/timing/mdu"
)

// WorkloadOp is one request in a workload.
type WorkloadOp struct {
	Op       insts.Op
	OperandA uint64
	OperandB uint64
}

// Workload defines a request stream to drive through the unit.
type Workload struct {
	// Name identifies the workload.
	Name string

	// Description explains what the workload exercises.
	Description string

	// Ops is the request stream, issued in order.
	Ops []WorkloadOp
}

// Result holds the outcome of a single workload run.
type Result struct {
	// Name identifies the workload.
	Name string `json:"name"`

	// Description explains what the workload exercises.
	Description string `json:"description"`

	// Operations is the number of requests driven through the unit.
	Operations uint64 `json:"operations"`

	// SimulatedCycles is the total cycle count for the stream.
	SimulatedCycles uint64 `json:"simulated_cycles"`

	// CPO is cycles per operation.
	CPO float64 `json:"cpo"`

	// Multiplies is the number of multiply-class requests.
	Multiplies uint64 `json:"multiplies"`

	// Divides is the number of divide-class requests.
	Divides uint64 `json:"divides"`

	// Mismatches counts results that disagreed with the functional model.
	// Anything other than zero is a timing-model bug.
	Mismatches uint64 `json:"mismatches"`

	// WallTime is the actual time taken to run the simulation.
	WallTime time.Duration `json:"wall_time_ns"`
}

// HarnessConfig configures the workload harness.
type HarnessConfig struct {
	// Width is the operand width of the simulated unit.
	Width uint

	// Output is where to write results (default: os.Stdout).
	Output io.Writer

	// Verbose enables per-mismatch diagnostics.
	Verbose bool
}

// DefaultConfig returns a default harness configuration.
func DefaultConfig() HarnessConfig {
	return HarnessConfig{
		Width:  32,
		Output: os.Stdout,
	}
}

// Harness runs workloads through the timing model and cross-checks every
// result against the functional model.
type Harness struct {
	config    HarnessConfig
	workloads []Workload
}

// NewHarness creates a new workload harness.
func NewHarness(config HarnessConfig) *Harness {
	if config.Output == nil {
		config.Output = os.Stdout
	}
	return &Harness{
		config: config,
	}
}

// AddWorkload adds a workload to the harness.
func (h *Harness) AddWorkload(w Workload) {
	h.workloads = append(h.workloads, w)
}

// AddWorkloads adds multiple workloads to the harness.
func (h *Harness) AddWorkloads(workloads []Workload) {
	h.workloads = append(h.workloads, workloads...)
}

// RunAll executes all workloads and returns results.
func (h *Harness) RunAll() []Result {
	results := make([]Result, 0, len(h.workloads))

	for _, w := range h.workloads {
		results = append(results, h.runWorkload(w))
	}

	return results
}

// runWorkload drives a single workload through a fresh unit.
func (h *Harness) runWorkload(w Workload) Result {
	unit := mdu.New(mdu.Config{Width: h.config.Width})
	golden := emu.NewMDU(h.config.Width)

	result := Result{
		Name:        w.Name,
		Description: w.Description,
		Operations:  uint64(len(w.Ops)),
	}

	start := time.Now()

	for _, op := range w.Ops {
		if op.Op.IsDivide() {
			result.Divides++
		} else {
			result.Multiplies++
		}

		value, ok := h.runOp(unit, op)
		expected := golden.Execute(op.Op, op.OperandA, op.OperandB)
		if !ok || value != expected {
			result.Mismatches++
			if h.config.Verbose {
				_, _ = fmt.Fprintf(h.config.Output,
					"MISMATCH %s %v a=%#x b=%#x got=%#x want=%#x\n",
					w.Name, op.Op, op.OperandA, op.OperandB, value, expected)
			}
		}
	}

	result.WallTime = time.Since(start)
	result.SimulatedCycles = unit.Stats().Cycles
	if result.Operations > 0 {
		result.CPO = float64(result.SimulatedCycles) / float64(result.Operations)
	}

	return result
}

// runOp presents one request and ticks the unit until its ready strobe.
func (h *Harness) runOp(unit *mdu.MDU, op WorkloadOp) (uint64, bool) {
	res := unit.Tick(mdu.Request{
		Valid:    true,
		Funct3:   op.Op.Funct3(),
		OperandA: op.OperandA,
		OperandB: op.OperandB,
	})

	// Fixed-latency design: the strobe must arrive within W+1 cycles.
	for i := uint(0); i <= h.config.Width+1; i++ {
		if res.Ready {
			return res.Value, true
		}
		res = unit.Idle()
	}

	return 0, res.Ready
}

// PrintResults outputs results in a human-readable format.
func (h *Harness) PrintResults(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output, "=== MDUSim Workload Results ===")
	_, _ = fmt.Fprintln(h.config.Output, "")

	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "Workload: %s\n", r.Name)
		_, _ = fmt.Fprintf(h.config.Output, "  Description:      %s\n", r.Description)
		_, _ = fmt.Fprintf(h.config.Output, "  Operations:       %d (%d mul, %d div)\n",
			r.Operations, r.Multiplies, r.Divides)
		_, _ = fmt.Fprintf(h.config.Output, "  Simulated Cycles: %d\n", r.SimulatedCycles)
		_, _ = fmt.Fprintf(h.config.Output, "  CPO:              %.2f\n", r.CPO)
		_, _ = fmt.Fprintf(h.config.Output, "  Mismatches:       %d\n", r.Mismatches)
		_, _ = fmt.Fprintf(h.config.Output, "  Wall Time:        %v\n", r.WallTime)
		_, _ = fmt.Fprintln(h.config.Output, "")
	}
}

// WriteCSV outputs results in CSV format.
func (h *Harness) WriteCSV(results []Result) {
	_, _ = fmt.Fprintln(h.config.Output,
		"name,operations,multiplies,divides,simulated_cycles,cpo,mismatches")
	for _, r := range results {
		_, _ = fmt.Fprintf(h.config.Output, "%s,%d,%d,%d,%d,%.4f,%d\n",
			r.Name, r.Operations, r.Multiplies, r.Divides,
			r.SimulatedCycles, r.CPO, r.Mismatches)
	}
}

// WriteJSON outputs results as indented JSON.
func (h *Harness) WriteJSON(results []Result) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}

	_, _ = fmt.Fprintln(h.config.Output, string(data))
	return nil
}
