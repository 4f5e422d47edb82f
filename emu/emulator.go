// Package emu provides functional MIPS-I emulation.
//
// The emulator executes one instruction per Step: it validates and fetches
// PC, advances PC through the branch delay latch, decodes, dispatches, and
// finally checks for cooperative termination at PC 0. Traps are fatal and
// surface as StepResults carrying the corresponding process exit code.
package emu

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sarchlab/mipsim/insts"
)

// StepResult represents the result of executing a single instruction.
type StepResult struct {
	// Exited is true if the run ended, normally or by trap.
	Exited bool

	// ExitCode is the process exit status if Exited is true.
	ExitCode int

	// Err is the trap that ended the run, or an internal error. It is nil on
	// normal termination.
	Err error
}

// Emulator executes MIPS-I instructions functionally.
type Emulator struct {
	regFile *RegFile
	mem     *AddressSpace
	decoder *insts.Decoder

	// Execution units
	alu        *ALU
	lsu        *LoadStoreUnit
	branchUnit *BranchUnit

	// text is the instruction block; the loader writes it with forced access.
	text *Block

	// Fetch is valid for pcMin <= PC and PC+4 <= pcMax.
	pcMin uint32
	pcMax uint32

	// I/O
	stdin  io.Reader
	stdout io.Writer
	trace  io.Writer

	// Execution state
	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithStdin sets a custom reader for the console input port.
func WithStdin(r io.Reader) EmulatorOption {
	return func(e *Emulator) {
		e.stdin = r
	}
}

// WithStdout sets a custom writer for the console output port.
func WithStdout(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.stdout = w
	}
}

// WithTrace enables per-instruction disassembly tracing to w.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// WithMaxInstructions sets the maximum number of instructions to execute.
// A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// NewEmulator creates a new MIPS-I emulator with the standard memory map
// installed and PC at the reset address.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{PC: TextBase},
		decoder: insts.NewDecoder(),
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		pcMin:   TextBase,
		pcMax:   TextBase,
	}

	for _, opt := range opts {
		opt(e)
	}

	e.text = NewBlock(TextBase, TextSize, true, false)

	e.mem = NewAddressSpace()
	e.mem.Map(NewBlock(0x00000000, 4, true, true)) // termination sentinel
	e.mem.Map(e.text)
	e.mem.Map(NewBlock(DataBase, DataSize, false, false))
	e.mem.Map(NewConsole(e.stdin, e.stdout))

	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.mem)
	e.branchUnit = NewBranchUnit(e.regFile)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's address space.
func (e *Emulator) Memory() *AddressSpace {
	return e.mem
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram places a raw big-endian instruction image at the reset address
// and bounds fetch to the loaded bytes. A trailing partial word is padded
// with zero bytes.
func (e *Emulator) LoadProgram(image []byte) error {
	if rem := len(image) % 4; rem != 0 {
		padded := make([]byte, len(image)+4-rem)
		copy(padded, image)
		image = padded
	}

	for i := 0; i < len(image); i += 4 {
		word := uint32(image[i])<<24 | uint32(image[i+1])<<16 |
			uint32(image[i+2])<<8 | uint32(image[i+3])
		if err := e.text.Write(uint32(i), word, true); err != nil {
			return fmt.Errorf("program image exceeds instruction memory: %w", err)
		}
	}

	e.regFile.PC = TextBase
	e.pcMin = TextBase
	e.pcMax = TextBase + uint32(len(image))
	return nil
}

// Step executes a single instruction.
func (e *Emulator) Step() StepResult {
	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		return StepResult{
			Err: fmt.Errorf("max instructions reached"),
		}
	}

	// 1. Validate PC: word-aligned and inside the loaded image.
	pc := e.regFile.PC
	if pc%4 != 0 || pc < e.pcMin || pc+4 > e.pcMax {
		return trapResult(&Trap{Kind: TrapMemory, Addr: pc, Detail: "PC outside program"})
	}

	// 2. Fetch.
	word, err := e.mem.Read(pc, false)
	if err != nil {
		return trapResult(err)
	}

	// 3. Advance PC, consuming a pending branch target. The instruction at
	// pc keeps executing below: it is the delay slot of any taken branch.
	if e.regFile.Branching {
		e.regFile.PC = e.regFile.NextPC
		e.regFile.Branching = false
	} else {
		e.regFile.PC = pc + 4
	}

	// 4. Decode.
	inst := e.decoder.Decode(word)
	if e.trace != nil {
		_, _ = fmt.Fprintf(e.trace, "0x%08X: %v\n", pc, inst)
	}

	// 5. Dispatch.
	if err := e.execute(inst); err != nil {
		return trapResult(err)
	}

	e.instructionCount++

	// 6. Cooperative termination: a return through a zero link register
	// lands the next PC on the sentinel at address 0.
	if e.regFile.PC == 0 {
		return StepResult{
			Exited:   true,
			ExitCode: int(e.regFile.ReadReg(2) & 0xFF),
		}
	}

	return StepResult{}
}

// Run executes instructions until the program exits or traps. It returns the
// process exit code; the error is non-nil when a trap or internal failure
// ended the run.
func (e *Emulator) Run() (int, error) {
	for {
		result := e.Step()
		if result.Exited {
			return result.ExitCode, result.Err
		}
		if result.Err != nil {
			return -1, result.Err
		}
	}
}

// trapResult converts a trap into a terminal StepResult.
func trapResult(err error) StepResult {
	var t *Trap
	if errors.As(err, &t) {
		return StepResult{
			Exited:   true,
			ExitCode: t.Kind.ExitCode(),
			Err:      t,
		}
	}
	return StepResult{Err: err}
}

// reserved builds the trap for an encoding with a non-zero field where the
// instruction requires zero.
func reserved(inst *insts.Instruction) error {
	return &Trap{
		Kind:   TrapInvalid,
		Detail: fmt.Sprintf("reserved field set in %v (0x%08X)", inst.Op, inst.Raw),
	}
}

// execute dispatches a decoded instruction.
func (e *Emulator) execute(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpSLL:
		e.alu.SLL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRL:
		e.alu.SRL(inst.Rd, inst.Rt, inst.Shamt)
	case insts.OpSRA:
		e.alu.SRA(inst.Rd, inst.Rt, inst.Shamt)

	case insts.OpSLLV:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SLLV(inst.Rd, inst.Rt, inst.Rs)
	case insts.OpSRLV:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SRLV(inst.Rd, inst.Rt, inst.Rs)
	case insts.OpSRAV:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SRAV(inst.Rd, inst.Rt, inst.Rs)

	case insts.OpJR:
		e.branchUnit.Jump(e.regFile.ReadReg(inst.Rs))
	case insts.OpJALR:
		if inst.Shamt != 0 || inst.Rt != 0 {
			return reserved(inst)
		}
		e.branchUnit.Jump(e.regFile.ReadReg(inst.Rs))
		e.branchUnit.Link(inst.Rd)

	case insts.OpMFHI:
		if inst.Shamt != 0 || inst.Rt != 0 {
			return reserved(inst)
		}
		e.alu.MFHI(inst.Rd)
	case insts.OpMTHI:
		if inst.Shamt != 0 || inst.Rt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.MTHI(inst.Rs)
	case insts.OpMFLO:
		if inst.Shamt != 0 || inst.Rt != 0 {
			return reserved(inst)
		}
		e.alu.MFLO(inst.Rd)
	case insts.OpMTLO:
		if inst.Shamt != 0 || inst.Rt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.MTLO(inst.Rs)

	case insts.OpMULT:
		if inst.Shamt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.MULT(inst.Rs, inst.Rt)
	case insts.OpMULTU:
		if inst.Shamt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.MULTU(inst.Rs, inst.Rt)
	case insts.OpDIV:
		if inst.Shamt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.DIV(inst.Rs, inst.Rt)
	case insts.OpDIVU:
		if inst.Shamt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.alu.DIVU(inst.Rs, inst.Rt)

	case insts.OpADD:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		return e.alu.ADD(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpADDU:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.ADDU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUB:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		return e.alu.SUB(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSUBU:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SUBU(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpAND:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.AND(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpOR:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.OR(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpXOR:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.XOR(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLT:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SLT(inst.Rd, inst.Rs, inst.Rt)
	case insts.OpSLTU:
		if inst.Shamt != 0 {
			return reserved(inst)
		}
		e.alu.SLTU(inst.Rd, inst.Rs, inst.Rt)

	case insts.OpBLTZ:
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) < 0, inst.SImm)
	case insts.OpBGEZ:
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) >= 0, inst.SImm)
	case insts.OpBLTZAL:
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) < 0, inst.SImm)
		e.branchUnit.Link(LinkReg)
	case insts.OpBGEZAL:
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) >= 0, inst.SImm)
		e.branchUnit.Link(LinkReg)

	case insts.OpJ:
		e.branchUnit.RegionJump(inst.Target)
	case insts.OpJAL:
		if inst.Shamt != 0 || inst.Rt != 0 || inst.Rd != 0 {
			return reserved(inst)
		}
		e.branchUnit.RegionJump(inst.Target)
		e.branchUnit.Link(LinkReg)

	case insts.OpBEQ:
		e.branchUnit.BranchIf(e.regFile.ReadReg(inst.Rs) == e.regFile.ReadReg(inst.Rt), inst.SImm)
	case insts.OpBNE:
		e.branchUnit.BranchIf(e.regFile.ReadReg(inst.Rs) != e.regFile.ReadReg(inst.Rt), inst.SImm)
	case insts.OpBLEZ:
		if inst.Rt != 0 {
			return reserved(inst)
		}
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) <= 0, inst.SImm)
	case insts.OpBGTZ:
		if inst.Rt != 0 {
			return reserved(inst)
		}
		e.branchUnit.BranchIf(int32(e.regFile.ReadReg(inst.Rs)) > 0, inst.SImm)

	case insts.OpADDI:
		return e.alu.ADDI(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpADDIU:
		e.alu.ADDIU(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpSLTI:
		e.alu.SLTI(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpSLTIU:
		e.alu.SLTIU(inst.Rt, inst.Rs, inst.SImm)
	case insts.OpANDI:
		e.alu.ANDI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpORI:
		e.alu.ORI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpXORI:
		e.alu.XORI(inst.Rt, inst.Rs, inst.Imm)
	case insts.OpLUI:
		if inst.Rs != 0 {
			return reserved(inst)
		}
		e.alu.LUI(inst.Rt, inst.Imm)

	case insts.OpLB:
		return e.lsu.LB(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLBU:
		return e.lsu.LBU(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLH:
		return e.lsu.LH(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLHU:
		return e.lsu.LHU(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLW:
		return e.lsu.LW(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLWL:
		return e.lsu.LWL(inst.Rt, e.effectiveAddr(inst))
	case insts.OpLWR:
		return e.lsu.LWR(inst.Rt, e.effectiveAddr(inst))
	case insts.OpSB:
		return e.lsu.SB(inst.Rt, e.effectiveAddr(inst))
	case insts.OpSH:
		return e.lsu.SH(inst.Rt, e.effectiveAddr(inst))
	case insts.OpSW:
		return e.lsu.SW(inst.Rt, e.effectiveAddr(inst))

	default:
		return &Trap{
			Kind:   TrapInvalid,
			Detail: fmt.Sprintf("unrecognized instruction 0x%08X", inst.Raw),
		}
	}

	return nil
}

// effectiveAddr computes base-plus-displacement addressing: rs + simm.
func (e *Emulator) effectiveAddr(inst *insts.Instruction) uint32 {
	return e.regFile.ReadReg(inst.Rs) + uint32(inst.SImm)
}
