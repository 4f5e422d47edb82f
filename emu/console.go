// Package emu provides functional MIPS-I emulation.
package emu

import (
	"bufio"
	"io"
)

// EOFWord is the value the input port yields at end of input, matching the
// widened return value of C's getchar.
const EOFWord uint32 = 0xFFFFFFFF

// Console is the memory-mapped byte-stream character device. It occupies
// eight bytes: a read port at offset 0 delivering one byte of input per read,
// and a write port at offset 4 emitting the low byte of the stored word.
// All other accesses through the device are memory traps, and port accesses
// ignore the force flag.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// NewConsole creates a console reading from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Start returns the device's global base address.
func (c *Console) Start() uint32 {
	return ConsoleBase
}

// Size returns the device's length in bytes.
func (c *Console) Size() uint32 {
	return 8
}

// Read serves the input port: one byte of input zero-extended to a word, or
// EOFWord once the input is exhausted.
func (c *Console) Read(local uint32, force bool) (uint32, error) {
	if local != StdinPort-ConsoleBase {
		return 0, &Trap{
			Kind:   TrapMemory,
			Addr:   ConsoleBase + local,
			Detail: "read from console port that is not readable",
		}
	}
	b, err := c.in.ReadByte()
	if err != nil {
		return EOFWord, nil
	}
	return uint32(b), nil
}

// Write serves the output port: the low byte of value goes to the output
// stream. Output errors are discarded, as with putchar.
func (c *Console) Write(local, value uint32, force bool) error {
	if local != StdoutPort-ConsoleBase {
		return &Trap{
			Kind:   TrapMemory,
			Addr:   ConsoleBase + local,
			Detail: "write to console port that is not writeable",
		}
	}
	_, _ = c.out.Write([]byte{byte(value)})
	return nil
}
