// Package insts provides MIPS-I instruction definitions and decoding.
//
// This package implements decoding of big-endian MIPS-I machine words into
// structured instruction representations. It covers the integer subset:
//   - ALU register and immediate forms: ADD, ADDU, SUB, SUBU, AND, OR, XOR,
//     SLT, SLTU and the shift family
//   - HI/LO multiply and divide: MULT, MULTU, DIV, DIVU, MFHI, MFLO, MTHI, MTLO
//   - Control transfer: J, JAL, JR, JALR, BEQ, BNE, BLEZ, BGTZ and the
//     REGIMM branches BLTZ, BGEZ, BLTZAL, BGEZAL
//   - Loads and stores, including the unaligned LWL/LWR pair
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst := decoder.Decode(0x34420042) // ORI $2, $2, 0x42
//	fmt.Printf("Op: %v, Rs: %d, Rt: %d, Imm: 0x%X\n", inst.Op, inst.Rs, inst.Rt, inst.Imm)
package insts
