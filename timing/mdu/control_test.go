package mdu_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdusim/insts"
	"github.com/sarchlab/mdusim/timing/mdu"
)

var _ = Describe("DecodeControl", func() {
	It("should decode mul as low-word multiply", func() {
		ctrl := mdu.DecodeControl(insts.Funct3MUL)

		Expect(ctrl.IsMul).To(BeTrue())
		Expect(ctrl.IsMulHigh).To(BeFalse())
		Expect(ctrl.IsDiv).To(BeFalse())
		Expect(ctrl.IsRem).To(BeFalse())
		Expect(ctrl.ZeroExtendA).To(BeFalse())
		Expect(ctrl.ZeroExtendB).To(BeFalse())
	})

	It("should decode mulh as signed high-word multiply", func() {
		ctrl := mdu.DecodeControl(insts.Funct3MULH)

		Expect(ctrl.IsMul).To(BeTrue())
		Expect(ctrl.IsMulHigh).To(BeTrue())
		Expect(ctrl.ZeroExtendA).To(BeFalse())
		Expect(ctrl.ZeroExtendB).To(BeFalse())
	})

	It("should decode mulhsu as mixed-sign high-word multiply", func() {
		ctrl := mdu.DecodeControl(insts.Funct3MULHSU)

		Expect(ctrl.IsMul).To(BeTrue())
		Expect(ctrl.IsMulHigh).To(BeTrue())
		Expect(ctrl.ZeroExtendA).To(BeFalse())
		Expect(ctrl.ZeroExtendB).To(BeTrue())
	})

	It("should decode mulhu as unsigned high-word multiply", func() {
		ctrl := mdu.DecodeControl(insts.Funct3MULHU)

		Expect(ctrl.IsMul).To(BeTrue())
		Expect(ctrl.IsMulHigh).To(BeTrue())
		Expect(ctrl.ZeroExtendA).To(BeTrue())
		Expect(ctrl.ZeroExtendB).To(BeTrue())
	})

	It("should decode div as signed divide", func() {
		ctrl := mdu.DecodeControl(insts.Funct3DIV)

		Expect(ctrl.IsMul).To(BeFalse())
		Expect(ctrl.IsDiv).To(BeTrue())
		Expect(ctrl.IsRem).To(BeFalse())
		Expect(ctrl.Unsigned).To(BeFalse())
	})

	It("should decode divu as unsigned divide", func() {
		ctrl := mdu.DecodeControl(insts.Funct3DIVU)

		Expect(ctrl.IsDiv).To(BeTrue())
		Expect(ctrl.Unsigned).To(BeTrue())
	})

	It("should decode rem as signed remainder", func() {
		ctrl := mdu.DecodeControl(insts.Funct3REM)

		Expect(ctrl.IsRem).To(BeTrue())
		Expect(ctrl.IsDiv).To(BeFalse())
		Expect(ctrl.Unsigned).To(BeFalse())
	})

	It("should decode remu as unsigned remainder", func() {
		ctrl := mdu.DecodeControl(insts.Funct3REMU)

		Expect(ctrl.IsRem).To(BeTrue())
		Expect(ctrl.Unsigned).To(BeTrue())
	})

	It("should select exactly one operation class per encoding", func() {
		for f3 := uint8(0); f3 < 8; f3++ {
			ctrl := mdu.DecodeControl(f3)

			count := 0
			if ctrl.IsMul {
				count++
			}
			if ctrl.IsDiv {
				count++
			}
			if ctrl.IsRem {
				count++
			}
			Expect(count).To(Equal(1), "funct3 %03b", f3)
		}
	})
})
