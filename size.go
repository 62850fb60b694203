package terminal

import (
	"os"

	"github.com/xyproto/env/v2"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// termSize returns the dimensions of the terminal behind f, column-major.
// The kernel answer for f wins, then a terminal on stdout, then the COLS,
// COLUMNS and LINES environment variables.
func termSize(f *os.File) (cols, rows int) {
	if f != nil {
		if ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ); err == nil && ws.Col > 0 && ws.Row > 0 {
			return int(ws.Col), int(ws.Row)
		}
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if width, height, err := term.GetSize(fd); err == nil {
			return width, height
		}
	}

	// Fallback to environment variables
	cols = 79
	if c := env.Int("COLS", 0); c > 0 {
		cols = c
	} else if c := env.Int("COLUMNS", 0); c > 0 {
		cols = c
	}
	return cols, env.Int("LINES", 25)
}
