// Package loader provides raw binary image loading for the simulator.
//
// A program image is a bare sequence of 4-byte big-endian instruction words
// with no header. The loader reads the file to EOF and pads a trailing
// partial word with zero bytes so the image always ends on a word boundary.
package loader

import (
	"fmt"
	"io"
	"os"
)

// Load reads the program image at path.
func Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open program image: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read reads a program image from r until EOF, zero-padding a trailing
// partial word. An empty image is legal; the first fetch then traps.
func Read(r io.Reader) ([]byte, error) {
	image, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read program image: %w", err)
	}

	if rem := len(image) % 4; rem != 0 {
		image = append(image, make([]byte, 4-rem)...)
	}

	return image, nil
}
