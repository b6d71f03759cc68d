package insts

// RISC-V encoding constants for the M extension.
// All eight operations are R-type: funct7 | rs2 | rs1 | funct3 | rd | opcode.
const (
	// opcodeOP is the major opcode for register-register integer ops.
	opcodeOP uint32 = 0b0110011
	// funct7MulDiv marks the M-extension subset of the OP opcode space.
	funct7MulDiv uint32 = 0b0000001
)

// Decoder decodes RV32 machine code into M-extension instructions.
type Decoder struct{}

// NewDecoder creates a new instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RISC-V instruction word.
// Words outside the M-extension encoding space decode to OpUnknown.
func (d *Decoder) Decode(word uint32) *Instruction {
	inst := &Instruction{Op: OpUnknown}

	if !d.isMulDiv(word) {
		return inst
	}

	// R-type field extraction.
	rd := (word >> 7) & 0x1F      // bits [11:7]
	funct3 := (word >> 12) & 0x7  // bits [14:12]
	rs1 := (word >> 15) & 0x1F    // bits [19:15]
	rs2 := (word >> 20) & 0x1F    // bits [24:20]

	inst.Funct3 = uint8(funct3)
	inst.Rd = uint8(rd)
	inst.Rs1 = uint8(rs1)
	inst.Rs2 = uint8(rs2)
	inst.Op = OpFromFunct3(inst.Funct3)

	return inst
}

// isMulDiv checks for the M-extension encoding:
// bits [6:0] == 0110011 (OP) and bits [31:25] == 0000001 (MULDIV).
func (d *Decoder) isMulDiv(word uint32) bool {
	opcode := word & 0x7F
	funct7 := (word >> 25) & 0x7F
	return opcode == opcodeOP && funct7 == funct7MulDiv
}

// Encode assembles an M-extension instruction word from its fields.
// The inverse of Decode for valid operations; returns 0 for OpUnknown.
func Encode(op Op, rd, rs1, rs2 uint8) uint32 {
	if op == OpUnknown {
		return 0
	}

	word := funct7MulDiv << 25
	word |= uint32(rs2&0x1F) << 20
	word |= uint32(rs1&0x1F) << 15
	word |= uint32(op.Funct3()) << 12
	word |= uint32(rd&0x1F) << 7
	word |= opcodeOP

	return word
}
