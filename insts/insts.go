// Package insts provides MIPS-I instruction definitions and decoding.
package insts

import "fmt"

// Op represents a MIPS-I opcode.
type Op uint16

// MIPS-I integer opcodes.
const (
	OpUnknown Op = iota

	// SPECIAL (primary opcode 0x00, dispatched on funct)
	OpSLL
	OpSRL
	OpSRA
	OpSLLV
	OpSRLV
	OpSRAV
	OpJR
	OpJALR
	OpMFHI
	OpMTHI
	OpMFLO
	OpMTLO
	OpMULT
	OpMULTU
	OpDIV
	OpDIVU
	OpADD
	OpADDU
	OpSUB
	OpSUBU
	OpAND
	OpOR
	OpXOR
	OpSLT
	OpSLTU

	// REGIMM (primary opcode 0x01, dispatched on rt)
	OpBLTZ
	OpBGEZ
	OpBLTZAL
	OpBGEZAL

	// Jumps and branches
	OpJ
	OpJAL
	OpBEQ
	OpBNE
	OpBLEZ
	OpBGTZ

	// ALU immediate
	OpADDI
	OpADDIU
	OpSLTI
	OpSLTIU
	OpANDI
	OpORI
	OpXORI
	OpLUI

	// Loads and stores
	OpLB
	OpLH
	OpLWL
	OpLW
	OpLBU
	OpLHU
	OpLWR
	OpSB
	OpSH
	OpSW
)

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // register form, dispatched on funct
	FormatRegimm         // conditional branch, condition in rt
	FormatI              // 16-bit immediate form
	FormatJ              // 26-bit region jump
)

// Instruction represents a decoded MIPS-I instruction.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Encoding format

	// Register and field operands
	Rs    uint8 // bits [25:21]
	Rt    uint8 // bits [20:16]
	Rd    uint8 // bits [15:11]
	Shamt uint8 // bits [10:6]
	Funct uint8 // bits [5:0]

	// Immediate operands
	Imm    uint16 // bits [15:0], raw
	SImm   int32  // Imm sign-extended to 32 bits
	Target uint32 // bits [25:0], region jump target

	// Raw is the undecoded instruction word.
	Raw uint32
}

var opNames = map[Op]string{
	OpSLL: "sll", OpSRL: "srl", OpSRA: "sra",
	OpSLLV: "sllv", OpSRLV: "srlv", OpSRAV: "srav",
	OpJR: "jr", OpJALR: "jalr",
	OpMFHI: "mfhi", OpMTHI: "mthi", OpMFLO: "mflo", OpMTLO: "mtlo",
	OpMULT: "mult", OpMULTU: "multu", OpDIV: "div", OpDIVU: "divu",
	OpADD: "add", OpADDU: "addu", OpSUB: "sub", OpSUBU: "subu",
	OpAND: "and", OpOR: "or", OpXOR: "xor",
	OpSLT: "slt", OpSLTU: "sltu",
	OpBLTZ: "bltz", OpBGEZ: "bgez", OpBLTZAL: "bltzal", OpBGEZAL: "bgezal",
	OpJ: "j", OpJAL: "jal",
	OpBEQ: "beq", OpBNE: "bne", OpBLEZ: "blez", OpBGTZ: "bgtz",
	OpADDI: "addi", OpADDIU: "addiu", OpSLTI: "slti", OpSLTIU: "sltiu",
	OpANDI: "andi", OpORI: "ori", OpXORI: "xori", OpLUI: "lui",
	OpLB: "lb", OpLH: "lh", OpLWL: "lwl", OpLW: "lw",
	OpLBU: "lbu", OpLHU: "lhu", OpLWR: "lwr",
	OpSB: "sb", OpSH: "sh", OpSW: "sw",
}

// Mnemonic returns the assembly mnemonic for the opcode.
func (op Op) Mnemonic() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return "unknown"
}

func (op Op) String() string {
	return op.Mnemonic()
}

// String renders the instruction in assembly-like form for tracing.
func (i *Instruction) String() string {
	switch i.Op {
	case OpSLL, OpSRL, OpSRA:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rd, i.Rt, i.Shamt)
	case OpSLLV, OpSRLV, OpSRAV:
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Op, i.Rd, i.Rt, i.Rs)
	case OpJR, OpMTHI, OpMTLO:
		return fmt.Sprintf("%s $%d", i.Op, i.Rs)
	case OpJALR:
		return fmt.Sprintf("%s $%d, $%d", i.Op, i.Rd, i.Rs)
	case OpMFHI, OpMFLO:
		return fmt.Sprintf("%s $%d", i.Op, i.Rd)
	case OpMULT, OpMULTU, OpDIV, OpDIVU:
		return fmt.Sprintf("%s $%d, $%d", i.Op, i.Rs, i.Rt)
	case OpADD, OpADDU, OpSUB, OpSUBU, OpAND, OpOR, OpXOR, OpSLT, OpSLTU:
		return fmt.Sprintf("%s $%d, $%d, $%d", i.Op, i.Rd, i.Rs, i.Rt)
	case OpBLTZ, OpBGEZ, OpBLTZAL, OpBGEZAL, OpBLEZ, OpBGTZ:
		return fmt.Sprintf("%s $%d, %d", i.Op, i.Rs, i.SImm)
	case OpJ, OpJAL:
		return fmt.Sprintf("%s 0x%07X", i.Op, i.Target<<2)
	case OpBEQ, OpBNE:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rs, i.Rt, i.SImm)
	case OpADDI, OpADDIU, OpSLTI:
		return fmt.Sprintf("%s $%d, $%d, %d", i.Op, i.Rt, i.Rs, i.SImm)
	case OpSLTIU, OpANDI, OpORI, OpXORI:
		return fmt.Sprintf("%s $%d, $%d, 0x%X", i.Op, i.Rt, i.Rs, i.Imm)
	case OpLUI:
		return fmt.Sprintf("%s $%d, 0x%X", i.Op, i.Rt, i.Imm)
	case OpLB, OpLH, OpLWL, OpLW, OpLBU, OpLHU, OpLWR, OpSB, OpSH, OpSW:
		return fmt.Sprintf("%s $%d, %d($%d)", i.Op, i.Rt, i.SImm, i.Rs)
	default:
		return fmt.Sprintf(".word 0x%08X", i.Raw)
	}
}
