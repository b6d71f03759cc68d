package mdu

import "math/bits"

// MultiplierStats holds statistics for the multiply pipeline.
type MultiplierStats struct {
	// Accepted is the number of multiply requests latched.
	Accepted uint64
	// HighWord is the number of accepted requests selecting the
	// upper product word.
	HighWord uint64
}

// MulOutput is the multiply pipeline's per-cycle output.
type MulOutput struct {
	// Done pulses one cycle after a multiply request was accepted.
	Done bool
	// Value is the selected product word, meaningful only while Done.
	Value uint64
}

// Multiplier models the single-cycle multiply pipeline.
//
// On the clock edge where a valid multiply request is presented, the
// operands are widened by one bit (sign- or zero-extended per the control
// flags), multiplied as signed integers, and the double-width product is
// latched together with the high/low word select. The done strobe rises on
// the following cycle. There is no busy flag: a new multiply can be
// accepted every cycle.
type Multiplier struct {
	width   uint
	mask    uint64
	signBit uint64

	// Pipeline register, latched at acceptance.
	productHi uint64
	productLo uint64
	highWord  bool
	done      bool

	stats MultiplierStats
}

// NewMultiplier creates a multiply pipeline with the given operand width.
// Width 0 selects the default of 32; widths above 64 are capped at 64.
func NewMultiplier(width uint) *Multiplier {
	width = normalizeWidth(width)
	return &Multiplier{
		width:   width,
		mask:    widthMask(width),
		signBit: uint64(1) << (width - 1),
	}
}

// Tick advances the pipeline by one clock edge and returns the output for
// the cycle that just ended. The word select comes from the flags latched
// at acceptance, so a new request arriving the cycle the result is read
// cannot change which word is reported.
func (u *Multiplier) Tick(req Request, ctrl Control) MulOutput {
	out := MulOutput{Done: u.done}
	if u.done {
		if u.highWord {
			out.Value = u.productHi
		} else {
			out.Value = u.productLo
		}
	}

	if req.Valid && ctrl.IsMul {
		u.productHi, u.productLo = u.multiply(req.OperandA, req.OperandB, ctrl)
		u.highWord = ctrl.IsMulHigh
		u.done = true

		u.stats.Accepted++
		if ctrl.IsMulHigh {
			u.stats.HighWord++
		}
	} else {
		u.done = false
	}

	return out
}

// multiply widens each operand per the control flags and returns the two
// W-bit words of the signed product of the widened pair.
func (u *Multiplier) multiply(a, b uint64, ctrl Control) (hi, lo uint64) {
	a &= u.mask
	b &= u.mask

	aNeg := !ctrl.ZeroExtendA && a&u.signBit != 0
	bNeg := !ctrl.ZeroExtendB && b&u.signBit != 0

	ua := a
	if aNeg {
		ua |= ^u.mask
	}
	ub := b
	if bNeg {
		ub |= ^u.mask
	}

	hi, lo = bits.Mul64(ua, ub)
	// Fold the sign weight of each negative operand out of the unsigned
	// product, leaving the two's-complement signed product.
	if aNeg {
		hi -= ub
	}
	if bNeg {
		hi -= ua
	}

	if u.width < 64 {
		hi = (lo>>u.width | hi<<(64-u.width)) & u.mask
		lo &= u.mask
	}

	return hi, lo
}

// Stats returns the multiply pipeline statistics.
func (u *Multiplier) Stats() MultiplierStats {
	return u.stats
}

// Reset forces the pipeline register and strobe to their idle values.
func (u *Multiplier) Reset() {
	u.productHi = 0
	u.productLo = 0
	u.highWord = false
	u.done = false
}

// widthMask returns the operand mask for a width in [1, 64].
func widthMask(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}
