//go:build !unix

package util

// TermSize returns the fallback terminal geometry on platforms without
// the winsize ioctl.
func TermSize() (cols, rows int) {
	return fallbackCols, fallbackRows
}
