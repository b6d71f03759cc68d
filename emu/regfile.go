// Package emu provides the functional reference model for the multiply/divide unit.
package emu

// RegFile represents the RISC-V integer register file.
// It contains 32 general-purpose registers; x0 is hardwired to zero.
type RegFile struct {
	// X holds general-purpose registers x0-x31.
	// X[0] always reads as 0 and ignores writes.
	X [32]uint64

	// PC is the program counter.
	PC uint64
}

// ReadReg reads a register value. Register 0 returns 0 (x0).
// Registers >= 32 (invalid/sentinel operands) return 0.
func (r *RegFile) ReadReg(reg uint8) uint64 {
	if reg == 0 || reg >= 32 {
		return 0
	}
	return r.X[reg]
}

// WriteReg writes a value to a register. Writes to x0 and invalid
// registers are ignored.
func (r *RegFile) WriteReg(reg uint8, value uint64) {
	if reg == 0 || reg >= 32 {
		return
	}
	r.X[reg] = value
}

// ReadReg32 reads the lower 32 bits of a register.
func (r *RegFile) ReadReg32(reg uint8) uint32 {
	return uint32(r.ReadReg(reg))
}

// WriteReg32 writes to the lower 32 bits and zero-extends.
func (r *RegFile) WriteReg32(reg uint8, value uint32) {
	r.WriteReg(reg, uint64(value))
}
