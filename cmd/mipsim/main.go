// Package main provides the entry point for mipsim.
// mipsim is a user-mode MIPS-I instruction-set simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/sarchlab/mipsim/emu"
	"github.com/sarchlab/mipsim/loader"
	"github.com/sarchlab/mipsim/tty"
)

var (
	verbose  = flag.Bool("v", false, "Verbose run summary on stderr")
	trace    = flag.Bool("trace", false, "Trace each executed instruction to stderr")
	maxInsts = flag.Uint64("max", 0, "Stop after this many instructions (0 = no limit)")
	rawMode  = flag.Bool("raw", false, "Deliver console input per keystroke instead of per line")
)

func main() {
	os.Exit(run())
}

func run() int {
	flag.Parse()

	// Invoked without a program image: exit successfully without doing work.
	if flag.NArg() < 1 {
		return 0
	}

	programPath := flag.Arg(0)

	image, err := loader.Load(programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	if *rawMode && term.IsTerminal(int(os.Stdin.Fd())) {
		restore, err := tty.MakeRaw(os.Stdin.Fd())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error configuring terminal: %v\n", err)
			return 1
		}
		defer restore()
	}

	var opts []emu.EmulatorOption
	if *trace {
		opts = append(opts, emu.WithTrace(os.Stderr))
	}
	if *maxInsts > 0 {
		opts = append(opts, emu.WithMaxInstructions(*maxInsts))
	}

	emulator := emu.NewEmulator(opts...)
	if err := emulator.LoadProgram(image); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		return 1
	}

	exitCode, runErr := emulator.Run()
	if exitCode < 0 {
		fmt.Fprintf(os.Stderr, "Emulation error: %v\n", runErr)
		return 1
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "\nProgram: %s\n", programPath)
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Trap: %v\n", runErr)
		}
		fmt.Fprintf(os.Stderr, "Exit code: %d\n", exitCode)
		fmt.Fprintf(os.Stderr, "Instructions executed: %d\n", emulator.InstructionCount())
	}

	return exitCode
}
