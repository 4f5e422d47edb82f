// Package emu provides functional MIPS-I emulation.
package emu

// Standard memory map, installed at boot:
//
//	0x00000000  4 bytes      termination sentinel (read-only and write-only)
//	0x10000000  16 MiB       instruction memory (read-only)
//	0x20000000  64 MiB       data memory
//	0x30000000  8 bytes      memory-mapped console
const (
	// TextBase is the base of instruction memory and the reset PC.
	TextBase uint32 = 0x10000000
	// TextSize is the length of instruction memory in bytes.
	TextSize uint32 = 0x01000000

	// DataBase is the base of data memory.
	DataBase uint32 = 0x20000000
	// DataSize is the length of data memory in bytes.
	DataSize uint32 = 0x04000000

	// ConsoleBase is the base of the memory-mapped console device.
	ConsoleBase uint32 = 0x30000000
	// StdinPort reads one byte from standard input.
	StdinPort uint32 = 0x30000000
	// StdoutPort writes its low byte to standard output.
	StdoutPort uint32 = 0x30000004
)
