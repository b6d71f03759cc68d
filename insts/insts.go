// Package insts provides RISC-V M-extension instruction definitions and decoding.
//
// This package implements decoding of RV32 machine code for the integer
// multiply/divide extension into structured instruction representations:
//   - MUL, MULH, MULHSU, MULHU (multiply, multiply-high variants)
//   - DIV, DIVU, REM, REMU (divide and remainder, signed and unsigned)
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x02C5D533) // divu a0, a1, a2
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Rs2: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Rs2)
package insts

// Op represents a multiply/divide opcode.
type Op uint16

// M-extension opcodes.
const (
	OpUnknown Op = iota
	OpMUL
	OpMULH
	OpMULHSU
	OpMULHU
	OpDIV
	OpDIVU
	OpREM
	OpREMU
)

// Funct3 encodings for the M extension. The three bits double as the
// operation-select input of the multiply/divide unit: bit 2 picks the
// divide class, bits 1:0 pick the sign/word variant.
const (
	Funct3MUL    uint8 = 0b000
	Funct3MULH   uint8 = 0b001
	Funct3MULHSU uint8 = 0b010
	Funct3MULHU  uint8 = 0b011
	Funct3DIV    uint8 = 0b100
	Funct3DIVU   uint8 = 0b101
	Funct3REM    uint8 = 0b110
	Funct3REMU   uint8 = 0b111
)

var opNames = map[Op]string{
	OpUnknown: "unknown",
	OpMUL:     "mul",
	OpMULH:    "mulh",
	OpMULHSU:  "mulhsu",
	OpMULHU:   "mulhu",
	OpDIV:     "div",
	OpDIVU:    "divu",
	OpREM:     "rem",
	OpREMU:    "remu",
}

// String returns the assembler mnemonic for the opcode.
func (o Op) String() string {
	if name, ok := opNames[o]; ok {
		return name
	}
	return "unknown"
}

// ParseOp maps an assembler mnemonic back to an opcode.
// Returns OpUnknown and false for unrecognized names.
func ParseOp(name string) (Op, bool) {
	for op, n := range opNames {
		if n == name && op != OpUnknown {
			return op, true
		}
	}
	return OpUnknown, false
}

// Funct3 returns the 3-bit operation-select encoding for the opcode.
func (o Op) Funct3() uint8 {
	switch o {
	case OpMUL:
		return Funct3MUL
	case OpMULH:
		return Funct3MULH
	case OpMULHSU:
		return Funct3MULHSU
	case OpMULHU:
		return Funct3MULHU
	case OpDIV:
		return Funct3DIV
	case OpDIVU:
		return Funct3DIVU
	case OpREM:
		return Funct3REM
	case OpREMU:
		return Funct3REMU
	default:
		return 0
	}
}

// OpFromFunct3 maps a 3-bit operation select back to an opcode.
func OpFromFunct3(funct3 uint8) Op {
	switch funct3 & 0b111 {
	case Funct3MUL:
		return OpMUL
	case Funct3MULH:
		return OpMULH
	case Funct3MULHSU:
		return OpMULHSU
	case Funct3MULHU:
		return OpMULHU
	case Funct3DIV:
		return OpDIV
	case Funct3DIVU:
		return OpDIVU
	case Funct3REM:
		return OpREM
	default:
		return OpREMU
	}
}

// IsDivide returns true for the divide/remainder class (funct3 bit 2 set).
func (o Op) IsDivide() bool {
	switch o {
	case OpDIV, OpDIVU, OpREM, OpREMU:
		return true
	default:
		return false
	}
}

// Instruction represents a decoded M-extension instruction.
type Instruction struct {
	Op     Op    // Operation code
	Funct3 uint8 // Raw 3-bit operation select

	Rd  uint8 // Destination register
	Rs1 uint8 // First source register (dividend / multiplicand)
	Rs2 uint8 // Second source register (divisor / multiplier)
}
