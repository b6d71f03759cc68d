package emu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdusim/emu"
	"github.com/sarchlab/mdusim/insts"
)

var _ = Describe("MDU functional model", func() {
	var m *emu.MDU

	BeforeEach(func() {
		m = emu.NewMDU(32)
	})

	neg := func(v uint64) uint64 {
		return (^v + 1) & 0xFFFFFFFF
	}

	Describe("Construction", func() {
		It("should default the width", func() {
			Expect(emu.NewMDU(0).Width()).To(Equal(uint(32)))
		})

		It("should cap the width", func() {
			Expect(emu.NewMDU(100).Width()).To(Equal(uint(64)))
		})

		It("should expose the operand mask and MIN pattern", func() {
			Expect(m.Mask()).To(Equal(uint64(0xFFFFFFFF)))
			Expect(m.MinSigned()).To(Equal(uint64(0x80000000)))
		})
	})

	Describe("SignExtend", func() {
		It("should widen negative patterns", func() {
			Expect(m.SignExtend(0xFFFFFFFF)).To(Equal(int64(-1)))
			Expect(m.SignExtend(0x80000000)).To(Equal(int64(-2147483648)))
		})

		It("should leave positive patterns alone", func() {
			Expect(m.SignExtend(0x7FFFFFFF)).To(Equal(int64(2147483647)))
			Expect(m.SignExtend(0)).To(Equal(int64(0)))
		})
	})

	Describe("Multiply", func() {
		It("should compute low words modulo 2^W", func() {
			Expect(m.Mul(7, 6)).To(Equal(uint64(42)))
			Expect(m.Mul(0x10000, 0x10000)).To(Equal(uint64(0)))
			Expect(m.Mul(neg(7), 3)).To(Equal(neg(21)))
		})

		It("should compute mulh against known values", func() {
			Expect(m.Mulh(0xFFFFFFFF, 0xFFFFFFFF)).To(Equal(uint64(0)))
			Expect(m.Mulh(0x80000000, 0x80000000)).To(Equal(uint64(0x40000000)))
			Expect(m.Mulh(0x7FFFFFFF, 0x7FFFFFFF)).To(Equal(uint64(0x3FFFFFFF)))
		})

		It("should compute mulhu against known values", func() {
			Expect(m.Mulhu(0xFFFFFFFF, 0xFFFFFFFF)).To(Equal(uint64(0xFFFFFFFE)))
			Expect(m.Mulhu(0x80000000, 2)).To(Equal(uint64(1)))
		})

		It("should compute mulhsu against known values", func() {
			Expect(m.Mulhsu(0xFFFFFFFF, 0xFFFFFFFF)).To(Equal(uint64(0xFFFFFFFF)))
			Expect(m.Mulhsu(3, 0xFFFFFFFB)).To(Equal(uint64(2)))
			Expect(m.Mulhsu(0x80000000, 0xFFFFFFFF)).To(Equal(uint64(0x80000000)))
		})

		It("should agree with 64-bit reference products at width 32", func() {
			values := []uint64{0, 1, 5, 0x7FFFFFFF, 0x80000000, 0xFFFFFFFF, 0xABCD1234}
			for _, a := range values {
				for _, b := range values {
					sa := m.SignExtend(a)
					sb := m.SignExtend(b)

					full := sa * sb
					Expect(m.Mul(a, b)).To(Equal(uint64(full) & 0xFFFFFFFF))
					Expect(m.Mulh(a, b)).To(Equal(uint64(full>>32) & 0xFFFFFFFF))

					ufull := (a & 0xFFFFFFFF) * (b & 0xFFFFFFFF)
					Expect(m.Mulhu(a, b)).To(Equal(ufull >> 32))

					sufull := sa * int64(b&0xFFFFFFFF)
					Expect(m.Mulhsu(a, b)).To(Equal(uint64(sufull>>32) & 0xFFFFFFFF))
				}
			}
		})
	})

	Describe("Divide and remainder", func() {
		It("should truncate signed quotients toward zero", func() {
			Expect(m.Div(7, 2)).To(Equal(uint64(3)))
			Expect(m.Div(neg(7), 2)).To(Equal(neg(3)))
			Expect(m.Div(7, neg(2))).To(Equal(neg(3)))
			Expect(m.Div(neg(7), neg(2))).To(Equal(uint64(3)))
		})

		It("should give remainders the dividend sign", func() {
			Expect(m.Rem(7, 2)).To(Equal(uint64(1)))
			Expect(m.Rem(neg(7), 2)).To(Equal(neg(1)))
			Expect(m.Rem(7, neg(2))).To(Equal(uint64(1)))
			Expect(m.Rem(neg(7), neg(2))).To(Equal(neg(1)))
		})

		It("should divide unsigned", func() {
			Expect(m.Divu(0xFFFFFFFF, 2)).To(Equal(uint64(0x7FFFFFFF)))
			Expect(m.Remu(0xFFFFFFFF, 2)).To(Equal(uint64(1)))
		})

		It("should define division by zero", func() {
			Expect(m.Div(42, 0)).To(Equal(uint64(0xFFFFFFFF)))
			Expect(m.Divu(42, 0)).To(Equal(uint64(0xFFFFFFFF)))
			Expect(m.Rem(neg(42), 0)).To(Equal(neg(42)))
			Expect(m.Remu(42, 0)).To(Equal(uint64(42)))
		})

		It("should define signed overflow", func() {
			Expect(m.Div(0x80000000, 0xFFFFFFFF)).To(Equal(uint64(0x80000000)))
			Expect(m.Rem(0x80000000, 0xFFFFFFFF)).To(Equal(uint64(0)))
		})

		It("should define the width-64 edge cases", func() {
			wide := emu.NewMDU(64)
			min := uint64(1) << 63

			Expect(wide.Div(min, ^uint64(0))).To(Equal(min))
			Expect(wide.Rem(min, ^uint64(0))).To(Equal(uint64(0)))
			Expect(wide.Div(5, 0)).To(Equal(^uint64(0)))
			Expect(wide.Remu(min, 0)).To(Equal(min))
		})
	})

	Describe("Execute", func() {
		It("should dispatch all eight operations", func() {
			Expect(m.Execute(insts.OpMUL, 6, 7)).To(Equal(uint64(42)))
			Expect(m.Execute(insts.OpMULH, 0x80000000, 0x80000000)).
				To(Equal(uint64(0x40000000)))
			Expect(m.Execute(insts.OpMULHSU, 3, 0xFFFFFFFB)).To(Equal(uint64(2)))
			Expect(m.Execute(insts.OpMULHU, 0xFFFFFFFF, 0xFFFFFFFF)).
				To(Equal(uint64(0xFFFFFFFE)))
			Expect(m.Execute(insts.OpDIV, neg(7), 2)).To(Equal(neg(3)))
			Expect(m.Execute(insts.OpDIVU, 9, 2)).To(Equal(uint64(4)))
			Expect(m.Execute(insts.OpREM, neg(7), 2)).To(Equal(neg(1)))
			Expect(m.Execute(insts.OpREMU, 9, 2)).To(Equal(uint64(1)))
		})

		It("should return 0 for unknown ops", func() {
			Expect(m.Execute(insts.OpUnknown, 1, 1)).To(Equal(uint64(0)))
		})
	})
})
