// Package latency provides instruction timing models for the multiply/divide unit.
//
// The latency values mirror the fixed accept-to-ready cycle counts of the
// modeled hardware and can be adjusted via TimingConfig, e.g. to explore
// what a faster multiplier or an early-out divider would do to a schedule.
package latency

import (
	"github.com/sarchlab/mdusim/insts"
)

// Table provides instruction latency lookups.
type Table struct {
	config *TimingConfig
}

// NewTable creates a new latency table for the default 32-bit unit.
func NewTable() *Table {
	return &Table{
		config: DefaultTimingConfig(),
	}
}

// NewTableWithConfig creates a new latency table with custom timing
// configuration.
func NewTableWithConfig(config *TimingConfig) *Table {
	return &Table{
		config: config,
	}
}

// GetLatency returns the accept-to-ready latency in cycles for the given
// instruction. Unknown instructions report 1.
func (t *Table) GetLatency(inst *insts.Instruction) uint64 {
	if inst == nil {
		return 1
	}

	switch inst.Op {
	case insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU:
		return t.config.MultiplyLatency

	case insts.OpDIV, insts.OpDIVU, insts.OpREM, insts.OpREMU:
		return t.config.DivideLatency

	default:
		return 1
	}
}

// IsMultiplyOp returns true if the instruction uses the multiply pipeline.
func (t *Table) IsMultiplyOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	switch inst.Op {
	case insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU:
		return true
	default:
		return false
	}
}

// IsDivideOp returns true if the instruction occupies the divider.
func (t *Table) IsDivideOp(inst *insts.Instruction) bool {
	if inst == nil {
		return false
	}
	return inst.Op.IsDivide()
}

// Config returns the current timing configuration.
func (t *Table) Config() *TimingConfig {
	return t.config
}
