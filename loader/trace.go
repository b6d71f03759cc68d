// Package loader provides request-trace loading for the simulator.
//
// A trace is a small line-oriented program for the multiply/divide unit.
// Three line forms are supported, plus blank lines and # comments:
//
//	set x5 100          initialize a register
//	div x1, x2, x3      register-form operation (assembled to a word)
//	0x02C5D533          raw RV32 instruction word
//	divu 100 7          immediate-operand form, bypassing the register file
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/sarchlab/mdusim/insts"
)

// EntryKind discriminates the trace line forms.
type EntryKind uint8

const (
	// EntrySet initializes a register.
	EntrySet EntryKind = iota
	// EntryExec executes an instruction word against the register file.
	EntryExec
	// EntryImm executes an operation on literal operands.
	EntryImm
)

// Entry is one parsed trace line.
type Entry struct {
	// Kind selects which fields are meaningful.
	Kind EntryKind

	// Reg and Value describe an EntrySet line.
	Reg   uint8
	Value uint64

	// Word is the instruction word of an EntryExec line.
	Word uint32

	// Op, OperandA and OperandB describe an EntryImm line.
	Op       insts.Op
	OperandA uint64
	OperandB uint64

	// Line is the 1-based source line, for diagnostics.
	Line int
}

// Load reads and parses a trace file.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return entries, nil
}

// Parse reads a trace from a reader.
func Parse(r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++

		line := scanner.Text()
		if idx := strings.IndexByte(line, '#'); idx >= 0 {
			line = line[:idx]
		}

		fields := strings.FieldsFunc(line, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) == 0 {
			continue
		}

		entry, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		entry.Line = lineNo
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}

	return entries, nil
}

func parseLine(fields []string) (Entry, error) {
	keyword := strings.ToLower(fields[0])

	switch {
	case keyword == "set":
		return parseSet(fields)

	case keyword[0] >= '0' && keyword[0] <= '9':
		// A bare instruction word.
		if len(fields) != 1 {
			return Entry{}, fmt.Errorf("unexpected tokens after instruction word")
		}
		word, err := parseValue(fields[0])
		if err != nil || word > 0xFFFFFFFF {
			return Entry{}, fmt.Errorf("invalid instruction word %q", fields[0])
		}
		return Entry{Kind: EntryExec, Word: uint32(word)}, nil

	default:
		return parseOperation(keyword, fields)
	}
}

func parseSet(fields []string) (Entry, error) {
	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("set wants 'set xN VALUE', got %d tokens", len(fields))
	}

	reg, err := parseRegister(fields[1])
	if err != nil {
		return Entry{}, err
	}
	value, err := parseValue(fields[2])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid value %q: %w", fields[2], err)
	}

	return Entry{Kind: EntrySet, Reg: reg, Value: value}, nil
}

func parseOperation(keyword string, fields []string) (Entry, error) {
	op, ok := insts.ParseOp(keyword)
	if !ok {
		return Entry{}, fmt.Errorf("unknown operation %q", keyword)
	}

	// Register form assembles to an instruction word so the simulator
	// exercises the decoder exactly as it would on fetched code.
	if len(fields) > 1 && isRegister(strings.ToLower(fields[1])) {
		if len(fields) != 4 {
			return Entry{}, fmt.Errorf("%s wants 'rd, rs1, rs2'", keyword)
		}
		rd, err := parseRegister(fields[1])
		if err != nil {
			return Entry{}, err
		}
		rs1, err := parseRegister(fields[2])
		if err != nil {
			return Entry{}, err
		}
		rs2, err := parseRegister(fields[3])
		if err != nil {
			return Entry{}, err
		}
		return Entry{Kind: EntryExec, Word: insts.Encode(op, rd, rs1, rs2)}, nil
	}

	if len(fields) != 3 {
		return Entry{}, fmt.Errorf("%s wants two operands or three registers", keyword)
	}

	a, err := parseValue(fields[1])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid operand %q: %w", fields[1], err)
	}
	b, err := parseValue(fields[2])
	if err != nil {
		return Entry{}, fmt.Errorf("invalid operand %q: %w", fields[2], err)
	}

	return Entry{Kind: EntryImm, Op: op, OperandA: a, OperandB: b}, nil
}

func isRegister(tok string) bool {
	if len(tok) < 2 || tok[0] != 'x' {
		return false
	}
	_, err := strconv.ParseUint(tok[1:], 10, 8)
	return err == nil
}

func parseRegister(tok string) (uint8, error) {
	tok = strings.ToLower(tok)
	if len(tok) < 2 || tok[0] != 'x' {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	n, err := strconv.ParseUint(tok[1:], 10, 8)
	if err != nil || n > 31 {
		return 0, fmt.Errorf("invalid register %q", tok)
	}
	return uint8(n), nil
}

// parseValue accepts decimal, hex (0x...) and negative decimal values;
// negative values are stored as their two's-complement bit pattern.
func parseValue(tok string) (uint64, error) {
	if strings.HasPrefix(tok, "-") {
		v, err := strconv.ParseInt(tok, 0, 64)
		if err != nil {
			return 0, err
		}
		return uint64(v), nil
	}
	return strconv.ParseUint(tok, 0, 64)
}
