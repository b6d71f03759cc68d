// Package main provides the entry point for MDUSim.
// MDUSim is a cycle-accurate RISC-V M-extension multiply/divide unit
// simulator built on Akita.
//
// For the full CLI, use: go run ./cmd/mdusim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("MDUSim - RISC-V Multiply/Divide Unit Simulator")
	fmt.Println("Built on Akita simulation framework")
	fmt.Println("")
	fmt.Println("Usage: mdusim [options] <trace file>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -config    Path to timing configuration JSON file")
	fmt.Println("  -width     Operand width in bits (1-64)")
	fmt.Println("  -v         Verbose output")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mdusim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mdusim' instead.")
	}
}
