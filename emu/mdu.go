// Package emu provides the functional reference model for the multiply/divide unit.
package emu

import (
	"math/bits"

	"github.com/sarchlab/mdusim/insts"
)

// DefaultWidth is the operand width used when none is specified.
const DefaultWidth = 32

// MaxWidth is the largest supported operand width.
const MaxWidth = 64

// MDU implements the architectural multiply/divide semantics at a fixed
// operand width. Results are computed immediately; the timing model in
// timing/mdu reproduces the same values cycle by cycle.
//
// All operands and results are W-bit two's-complement values carried in the
// low W bits of a uint64.
type MDU struct {
	width   uint
	mask    uint64
	signBit uint64
}

// NewMDU creates a functional multiply/divide model with the given operand
// width. Width 0 selects DefaultWidth; widths above MaxWidth are capped.
func NewMDU(width uint) *MDU {
	if width == 0 {
		width = DefaultWidth
	}
	if width > MaxWidth {
		width = MaxWidth
	}

	mask := ^uint64(0)
	if width < 64 {
		mask = (uint64(1) << width) - 1
	}

	return &MDU{
		width:   width,
		mask:    mask,
		signBit: uint64(1) << (width - 1),
	}
}

// Width returns the operand width in bits.
func (m *MDU) Width() uint {
	return m.width
}

// Mask returns the W-bit operand mask.
func (m *MDU) Mask() uint64 {
	return m.mask
}

// MinSigned returns the minimum representable W-bit signed value
// (as its W-bit two's-complement pattern).
func (m *MDU) MinSigned() uint64 {
	return m.signBit
}

// SignExtend interprets the low W bits of v as a signed value and widens
// it to 64 bits.
func (m *MDU) SignExtend(v uint64) int64 {
	v &= m.mask
	if v&m.signBit != 0 {
		v |= ^m.mask
	}
	return int64(v)
}

// Execute computes the result for an operation. Unknown ops return 0.
func (m *MDU) Execute(op insts.Op, a, b uint64) uint64 {
	switch op {
	case insts.OpMUL:
		return m.Mul(a, b)
	case insts.OpMULH:
		return m.Mulh(a, b)
	case insts.OpMULHSU:
		return m.Mulhsu(a, b)
	case insts.OpMULHU:
		return m.Mulhu(a, b)
	case insts.OpDIV:
		return m.Div(a, b)
	case insts.OpDIVU:
		return m.Divu(a, b)
	case insts.OpREM:
		return m.Rem(a, b)
	case insts.OpREMU:
		return m.Remu(a, b)
	default:
		return 0
	}
}

// Mul returns the low W bits of a * b. The low word is the same for all
// sign interpretations.
func (m *MDU) Mul(a, b uint64) uint64 {
	return (a & m.mask) * (b & m.mask) & m.mask
}

// Mulh returns the high W bits of the signed x signed product.
func (m *MDU) Mulh(a, b uint64) uint64 {
	sa := m.SignExtend(a)
	sb := m.SignExtend(b)

	hi, lo := bits.Mul64(uint64(sa), uint64(sb))
	// Convert the unsigned 128-bit product to the signed product.
	if sa < 0 {
		hi -= uint64(sb)
	}
	if sb < 0 {
		hi -= uint64(sa)
	}

	return m.highWord(hi, lo)
}

// Mulhsu returns the high W bits of the signed x unsigned product.
func (m *MDU) Mulhsu(a, b uint64) uint64 {
	sa := m.SignExtend(a)
	ub := b & m.mask

	hi, lo := bits.Mul64(uint64(sa), ub)
	if sa < 0 {
		hi -= ub
	}

	return m.highWord(hi, lo)
}

// Mulhu returns the high W bits of the unsigned x unsigned product.
func (m *MDU) Mulhu(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a&m.mask, b&m.mask)
	return m.highWord(hi, lo)
}

// highWord extracts bits [2W-1:W] from a 128-bit product.
func (m *MDU) highWord(hi, lo uint64) uint64 {
	if m.width == 64 {
		return hi
	}
	return (lo>>m.width | hi<<(64-m.width)) & m.mask
}

// Div returns the signed quotient of a / b, truncated toward zero.
// Division by zero yields all ones (-1); MIN / -1 yields MIN.
func (m *MDU) Div(a, b uint64) uint64 {
	n := m.SignExtend(a)
	d := m.SignExtend(b)

	if d == 0 {
		return m.mask
	}
	if n == m.SignExtend(m.signBit) && d == -1 {
		// Signed overflow: the quotient wraps back to MIN.
		return a & m.mask
	}

	return uint64(n/d) & m.mask
}

// Divu returns the unsigned quotient of a / b.
// Division by zero yields the all-ones value.
func (m *MDU) Divu(a, b uint64) uint64 {
	a &= m.mask
	b &= m.mask

	if b == 0 {
		return m.mask
	}

	return a / b
}

// Rem returns the signed remainder of a / b; its sign follows the dividend.
// Division by zero yields the dividend; MIN % -1 yields 0.
func (m *MDU) Rem(a, b uint64) uint64 {
	n := m.SignExtend(a)
	d := m.SignExtend(b)

	if d == 0 {
		return a & m.mask
	}
	if n == m.SignExtend(m.signBit) && d == -1 {
		return 0
	}

	return uint64(n%d) & m.mask
}

// Remu returns the unsigned remainder of a / b.
// Division by zero yields the dividend.
func (m *MDU) Remu(a, b uint64) uint64 {
	a &= m.mask
	b &= m.mask

	if b == 0 {
		return a
	}

	return a % b
}
