package mdu

// DividerStats holds statistics for the divide state machine.
type DividerStats struct {
	// Accepted is the number of divide/remainder requests started.
	Accepted uint64
	// Completed is the number of divisions run to the ready strobe.
	Completed uint64
	// Rejected is the number of valid divide-class requests refused
	// because the divider was busy.
	Rejected uint64
	// ZeroDivisors counts accepted requests with a zero divisor.
	ZeroDivisors uint64
}

// DivOutput is the divider's per-cycle output.
type DivOutput struct {
	// Ready pulses for one cycle when the quotient/remainder is final.
	Ready bool
	// Value is the signed-corrected result, meaningful only while Ready.
	Value uint64
	// Busy is true from acceptance through the ready strobe.
	Busy bool
}

// Divider models the iterative restoring divide state machine.
//
// A division occupies W+1 cycles: the acceptance edge sign-normalizes the
// operands and loads the combined remainder/quotient shift register, then
// W iteration edges resolve one quotient bit each. The ready strobe rises
// on the edge after the last bit, carrying the sign-corrected quotient or
// remainder.
//
// The combined register is held as two machine words: rem accumulates the
// partial remainder (W+1 bits, the extra bit carried explicitly for W=64)
// and quo holds the remaining dividend bits shifting out the top while
// quotient bits shift in at the bottom.
type Divider struct {
	width   uint
	mask    uint64
	signBit uint64

	busy            bool
	ready           bool
	cyclesRemaining uint

	divisor uint64
	rem     uint64
	quo     uint64

	negQuotient  bool
	negRemainder bool
	isRem        bool
	result       uint64

	stats DividerStats
}

// NewDivider creates a divide state machine with the given operand width.
// Width 0 selects the default of 32; widths above 64 are capped at 64.
func NewDivider(width uint) *Divider {
	width = normalizeWidth(width)
	return &Divider{
		width:   width,
		mask:    widthMask(width),
		signBit: uint64(1) << (width - 1),
	}
}

// Tick advances the state machine by one clock edge and returns the output
// for the cycle that just ended. While busy (or while a ready strobe is
// pending) new divide requests are not accepted; the caller must hold the
// request until Busy drops.
func (u *Divider) Tick(req Request, ctrl Control) DivOutput {
	out := DivOutput{
		Ready: u.ready,
		Value: u.result,
		Busy:  u.busy || u.ready,
	}

	divClass := req.Valid && (ctrl.IsDiv || ctrl.IsRem)

	if u.ready {
		// Strobe self-clears; the unit is idle again next cycle.
		u.ready = false
		if divClass {
			u.stats.Rejected++
		}
		return out
	}

	if u.busy {
		u.step()
		u.cyclesRemaining--
		if u.cyclesRemaining == 0 {
			u.finalize()
		}
		if divClass {
			u.stats.Rejected++
		}
		return out
	}

	if divClass {
		u.setup(req, ctrl)
	}

	return out
}

// setup latches a new division: absolute values for signed operands, the
// result signs, and the iteration counter.
func (u *Divider) setup(req Request, ctrl Control) {
	a := req.OperandA & u.mask
	b := req.OperandB & u.mask

	aNeg := !ctrl.Unsigned && a&u.signBit != 0
	bNeg := !ctrl.Unsigned && b&u.signBit != 0

	// Wrapping negation: |MIN| comes back as the MIN bit pattern, whose
	// unsigned value is exactly the magnitude the loop needs. This is
	// what makes MIN / -1 wrap to MIN without a special case here.
	dividend := a
	if aNeg {
		dividend = u.negate(a)
	}
	u.divisor = b
	if bNeg {
		u.divisor = u.negate(b)
	}

	u.rem = 0
	u.quo = dividend

	// The quotient flips sign only when the operand signs differ and the
	// divisor is nonzero; a zero divisor must produce all-ones as-is.
	u.negQuotient = !ctrl.Unsigned && aNeg != bNeg && b != 0
	// The remainder sign follows the dividend.
	u.negRemainder = !ctrl.Unsigned && aNeg

	u.isRem = ctrl.IsRem
	u.cyclesRemaining = u.width
	u.busy = true

	u.stats.Accepted++
	if b == 0 {
		u.stats.ZeroDivisors++
	}
}

// step performs one restoring shift/subtract iteration: shift the combined
// register left one bit, then subtract the divisor from the partial
// remainder if it fits, recording the quotient bit.
func (u *Divider) step() {
	top := (u.quo >> (u.width - 1)) & 1
	carry := u.rem >> 63

	u.rem = u.rem<<1 | top
	u.quo = u.quo << 1 & u.mask

	// carry covers the W=64 case where the shifted remainder exceeds the
	// machine word: the true value is then always >= divisor and the
	// wrapping subtraction yields the correct remainder.
	if carry == 1 || u.rem >= u.divisor {
		u.rem -= u.divisor
		u.quo |= 1
	}
}

// finalize applies the latched result signs and raises the ready strobe.
func (u *Divider) finalize() {
	q := u.quo
	r := u.rem & u.mask

	if u.negQuotient {
		q = u.negate(q)
	}
	if u.negRemainder {
		r = u.negate(r)
	}

	if u.isRem {
		u.result = r
	} else {
		u.result = q
	}

	u.ready = true
	u.busy = false
	u.stats.Completed++
}

// negate computes the W-bit two's-complement negation, wrapping on MIN.
func (u *Divider) negate(v uint64) uint64 {
	return (^v + 1) & u.mask
}

// Busy reports whether the divider cannot accept a request this cycle.
func (u *Divider) Busy() bool {
	return u.busy || u.ready
}

// Stats returns the divider statistics.
func (u *Divider) Stats() DividerStats {
	return u.stats
}

// Reset forces the state machine back to idle, abandoning any in-flight
// division.
func (u *Divider) Reset() {
	u.busy = false
	u.ready = false
	u.cyclesRemaining = 0
	u.divisor = 0
	u.rem = 0
	u.quo = 0
	u.negQuotient = false
	u.negRemainder = false
	u.isRem = false
	u.result = 0
}
