// Package main provides the entry point for mipsim.
// mipsim is a user-mode MIPS-I instruction-set simulator.
//
// For the full CLI, use: go run ./cmd/mipsim
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("mipsim - MIPS-I instruction-set simulator")
	fmt.Println("")
	fmt.Println("Usage: mipsim [options] <program.bin>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v         Verbose run summary")
	fmt.Println("  -trace     Trace each executed instruction")
	fmt.Println("  -max N     Stop after N instructions")
	fmt.Println("  -raw       Per-keystroke console input")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/mipsim' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/mipsim' instead.")
	}
}
