// Package mdu provides the cycle-accurate multiply/divide unit model.
//
// The unit services RISC-V M-extension requests through a ready/valid
// handshake: a single-cycle multiply pipeline and an iterative restoring
// divider share the operand inputs and the result output. All state
// advances on Tick, which models one clock edge.
package mdu

// Request is the per-cycle input bundle presented to the unit.
type Request struct {
	// Valid indicates a request is present this cycle.
	Valid bool

	// Funct3 is the 3-bit operation select (insts.Funct3* encodings).
	// Bit 2 picks the divide class, bits 1:0 the sign/word variant.
	Funct3 uint8

	// OperandA is the multiplicand / dividend (rs1).
	OperandA uint64

	// OperandB is the multiplier / divisor (rs2).
	OperandB uint64
}

// Result is the per-cycle output bundle.
type Result struct {
	// Ready pulses for exactly one cycle when a result is available.
	Ready bool

	// Value is the W-bit result, meaningful only while Ready is high.
	Value uint64
}

// Control holds the operation-select flags derived from funct3.
// The derivation is a pure function with no state or latency.
type Control struct {
	// IsMul is true for the multiply class (funct3 bit 2 clear).
	IsMul bool
	// IsMulHigh selects the upper product word (any multiply variant
	// other than the plain low-word signed multiply).
	IsMulHigh bool
	// IsDiv is true for quotient operations (bit 2 set, bit 1 clear).
	IsDiv bool
	// IsRem is true for remainder operations (bit 2 set, bit 1 set).
	IsRem bool

	// Unsigned selects unsigned arithmetic for the divide class (bit 0).
	Unsigned bool

	// ZeroExtendA widens operand A without sign (mulhu only).
	ZeroExtendA bool
	// ZeroExtendB widens operand B without sign (mulhsu and mulhu).
	ZeroExtendB bool
}

// DecodeControl derives the control flags from the 3-bit operation select.
func DecodeControl(funct3 uint8) Control {
	bit2 := funct3&0b100 != 0
	bit1 := funct3&0b010 != 0
	bit0 := funct3&0b001 != 0

	return Control{
		IsMul:     !bit2,
		IsMulHigh: !bit2 && (bit1 || bit0),
		IsDiv:     bit2 && !bit1,
		IsRem:     bit2 && bit1,

		Unsigned: bit2 && bit0,

		// Operand widening for multiply: mulhu zero-extends both
		// operands, mulhsu zero-extends only the multiplier while the
		// multiplicand stays signed.
		ZeroExtendA: !bit2 && bit1 && bit0,
		ZeroExtendB: !bit2 && bit1,
	}
}
