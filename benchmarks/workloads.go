package benchmarks

import (
	"math/rand"

	"github.com/sarchlab/mdusim/insts"
)

// workloadSeed keeps the generated streams reproducible across runs.
const workloadSeed = 0x4D44

// GetWorkloads returns the standard set of workloads for unit validation.
func GetWorkloads() []Workload {
	return []Workload{
		multiplyThroughput(),
		divideLatency(),
		specialCases(),
		mixedStream(),
		randomCrossCheck(),
	}
}

// multiplyThroughput exercises all four multiply variants back to back.
func multiplyThroughput() Workload {
	rng := rand.New(rand.NewSource(workloadSeed))
	ops := make([]WorkloadOp, 0, 400)

	variants := []insts.Op{insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU}
	for i := 0; i < 100; i++ {
		for _, op := range variants {
			ops = append(ops, WorkloadOp{
				Op:       op,
				OperandA: rng.Uint64(),
				OperandB: rng.Uint64(),
			})
		}
	}

	return Workload{
		Name:        "multiply_throughput",
		Description: "400 multiplies across all sign variants - measures the 1-cycle pipeline",
		Ops:         ops,
	}
}

// divideLatency exercises the iterative divider with the full sign matrix.
func divideLatency() Workload {
	rng := rand.New(rand.NewSource(workloadSeed + 1))
	ops := make([]WorkloadOp, 0, 200)

	variants := []insts.Op{insts.OpDIV, insts.OpDIVU, insts.OpREM, insts.OpREMU}
	for i := 0; i < 50; i++ {
		for _, op := range variants {
			ops = append(ops, WorkloadOp{
				Op:       op,
				OperandA: rng.Uint64(),
				OperandB: rng.Uint64(),
			})
		}
	}

	return Workload{
		Name:        "divide_latency",
		Description: "200 divides and remainders - measures the W+1 cycle state machine",
		Ops:         ops,
	}
}

// specialCases covers the architecturally defined corner results.
func specialCases() Workload {
	patterns := []uint64{
		0, 1, 2, 0x7FFFFFFF, 0x80000000, 0x80000001, 0xFFFFFFFF, 0xFFFFFFFE,
	}

	ops := make([]WorkloadOp, 0, 8*8*8)
	allOps := []insts.Op{
		insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU,
		insts.OpDIV, insts.OpDIVU, insts.OpREM, insts.OpREMU,
	}
	for _, op := range allOps {
		for _, a := range patterns {
			for _, b := range patterns {
				ops = append(ops, WorkloadOp{Op: op, OperandA: a, OperandB: b})
			}
		}
	}

	return Workload{
		Name:        "special_cases",
		Description: "Edge-pattern matrix: zero divisors, signed overflow, sign boundaries",
		Ops:         ops,
	}
}

// mixedStream interleaves multiplies and divides the way compiled code does.
func mixedStream() Workload {
	rng := rand.New(rand.NewSource(workloadSeed + 2))
	ops := make([]WorkloadOp, 0, 300)

	for i := 0; i < 300; i++ {
		var op insts.Op
		// Roughly 3:1 multiply to divide, typical of integer code.
		switch rng.Intn(8) {
		case 0:
			op = insts.OpDIV
		case 1:
			op = insts.OpREMU
		case 2, 3:
			op = insts.OpMULH
		default:
			op = insts.OpMUL
		}
		ops = append(ops, WorkloadOp{
			Op:       op,
			OperandA: rng.Uint64(),
			OperandB: rng.Uint64() >> uint(rng.Intn(32)),
		})
	}

	return Workload{
		Name:        "mixed_stream",
		Description: "300 interleaved operations with a compiler-like mul/div mix",
		Ops:         ops,
	}
}

// randomCrossCheck hammers the unit with unconstrained random operands.
func randomCrossCheck() Workload {
	rng := rand.New(rand.NewSource(workloadSeed + 3))
	ops := make([]WorkloadOp, 0, 1000)

	allOps := []insts.Op{
		insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU,
		insts.OpDIV, insts.OpDIVU, insts.OpREM, insts.OpREMU,
	}
	for i := 0; i < 1000; i++ {
		ops = append(ops, WorkloadOp{
			Op:       allOps[rng.Intn(len(allOps))],
			OperandA: rng.Uint64(),
			OperandB: rng.Uint64(),
		})
	}

	return Workload{
		Name:        "random_cross_check",
		Description: "1000 random operations cross-checked against the functional model",
		Ops:         ops,
	}
}
