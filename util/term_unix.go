//go:build unix

package util

import (
	"os"

	"golang.org/x/sys/unix"
)

// TermSize queries the controlling terminal's geometry. When stdout is
// not a terminal (pipelines report zero columns) or the ioctl fails,
// the fallback size is returned.
func TermSize() (cols, rows int) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return fallbackCols, fallbackRows
	}
	return int(ws.Col), int(ws.Row)
}
