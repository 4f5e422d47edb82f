// Package tty configures the controlling terminal for the memory-mapped
// console. In raw mode the input port delivers single keystrokes instead of
// waiting for a full line, and typed characters are not echoed.
package tty

import (
	"fmt"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
)

// MakeRaw switches the terminal on fd into non-canonical, no-echo mode and
// returns a function restoring the previous configuration. Callers should
// defer the restore so the terminal is sane again after the run.
func MakeRaw(fd uintptr) (restore func(), err error) {
	var saved unix.Termios
	if err := termios.Tcgetattr(fd, &saved); err != nil {
		return nil, fmt.Errorf("failed to read terminal attributes: %w", err)
	}

	raw := saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := termios.Tcsetattr(fd, termios.TCSANOW, &raw); err != nil {
		return nil, fmt.Errorf("failed to set raw mode: %w", err)
	}

	return func() {
		_ = termios.Tcsetattr(fd, termios.TCSANOW, &saved)
	}, nil
}
