package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/mdusim/insts"
	"github.com/sarchlab/mdusim/timing/latency"
)

var _ = Describe("Latency", func() {
	var (
		table   *latency.Table
		decoder *insts.Decoder
	)

	BeforeEach(func() {
		table = latency.NewTable()
		decoder = insts.NewDecoder()
	})

	Describe("Default Timing Values", func() {
		It("should default to the 32-bit unit", func() {
			config := table.Config()
			Expect(config.Width).To(Equal(uint(32)))
			Expect(config.MultiplyLatency).To(Equal(uint64(1)))
			Expect(config.DivideLatency).To(Equal(uint64(33)))
		})

		It("should derive divide latency from the width", func() {
			config := latency.ForWidth(8)
			Expect(config.DivideLatency).To(Equal(uint64(9)))

			config = latency.ForWidth(64)
			Expect(config.DivideLatency).To(Equal(uint64(65)))
		})
	})

	Describe("Instruction Latencies", func() {
		It("should report multiply latency for all multiply variants", func() {
			for _, op := range []insts.Op{
				insts.OpMUL, insts.OpMULH, insts.OpMULHSU, insts.OpMULHU,
			} {
				inst := decoder.Decode(insts.Encode(op, 1, 2, 3))
				Expect(table.GetLatency(inst)).To(Equal(uint64(1)), op.String())
				Expect(table.IsMultiplyOp(inst)).To(BeTrue(), op.String())
				Expect(table.IsDivideOp(inst)).To(BeFalse(), op.String())
			}
		})

		It("should report divide latency for all divide variants", func() {
			for _, op := range []insts.Op{
				insts.OpDIV, insts.OpDIVU, insts.OpREM, insts.OpREMU,
			} {
				inst := decoder.Decode(insts.Encode(op, 1, 2, 3))
				Expect(table.GetLatency(inst)).To(Equal(uint64(33)), op.String())
				Expect(table.IsDivideOp(inst)).To(BeTrue(), op.String())
				Expect(table.IsMultiplyOp(inst)).To(BeFalse(), op.String())
			}
		})

		It("should report 1 for nil and unknown instructions", func() {
			Expect(table.GetLatency(nil)).To(Equal(uint64(1)))
			Expect(table.GetLatency(&insts.Instruction{})).To(Equal(uint64(1)))
			Expect(table.IsMultiplyOp(nil)).To(BeFalse())
			Expect(table.IsDivideOp(nil)).To(BeFalse())
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom latencies", func() {
			config := &latency.TimingConfig{
				Width:           32,
				MultiplyLatency: 3,
				DivideLatency:   20,
			}
			custom := latency.NewTableWithConfig(config)

			mul := decoder.Decode(insts.Encode(insts.OpMUL, 1, 2, 3))
			div := decoder.Decode(insts.Encode(insts.OpDIV, 1, 2, 3))
			Expect(custom.GetLatency(mul)).To(Equal(uint64(3)))
			Expect(custom.GetLatency(div)).To(Equal(uint64(20)))
		})
	})

	Describe("Validation", func() {
		It("should accept the default configuration", func() {
			Expect(latency.DefaultTimingConfig().Validate()).To(Succeed())
		})

		It("should reject a zero width", func() {
			config := latency.DefaultTimingConfig()
			config.Width = 0
			Expect(config.Validate()).ToNot(Succeed())
		})

		It("should reject widths above 64", func() {
			config := latency.DefaultTimingConfig()
			config.Width = 65
			Expect(config.Validate()).ToNot(Succeed())
		})

		It("should reject zero latencies", func() {
			config := latency.DefaultTimingConfig()
			config.MultiplyLatency = 0
			Expect(config.Validate()).ToNot(Succeed())

			config = latency.DefaultTimingConfig()
			config.DivideLatency = 0
			Expect(config.Validate()).ToNot(Succeed())
		})
	})

	Describe("Persistence", func() {
		It("should round-trip through a JSON file", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "timing.json")

			config := latency.ForWidth(16)
			config.MultiplyLatency = 2
			Expect(config.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(loaded).To(Equal(config))
		})

		It("should fail on a missing file", func() {
			_, err := latency.LoadConfig("/nonexistent/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should fail on malformed JSON", func() {
			dir := GinkgoT().TempDir()
			path := filepath.Join(dir, "bad.json")
			Expect(os.WriteFile(path, []byte("{broken"), 0644)).To(Succeed())

			_, err := latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})

		It("should clone without aliasing", func() {
			config := latency.DefaultTimingConfig()
			clone := config.Clone()
			clone.DivideLatency = 99

			Expect(config.DivideLatency).To(Equal(uint64(33)))
		})
	})
})
