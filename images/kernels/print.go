package kernels

import (
	"fmt"
	"io"

	"gonum.org/v1/gonum/mat"
)

// Fprint draws m inside a box-drawing border, cells right-aligned to a
// uniform width with two significant digits. When the widest line would
// exceed termWidth columns it prints a placeholder instead, so piping
// through a narrow terminal stays readable.
func Fprint(w io.Writer, m *mat.Dense, termWidth int) {
	rows, cols := m.Dims()

	cellW := 0
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if n := len(fmt.Sprintf("%.2g", m.At(i, j))); n > cellW {
				cellW = n
			}
		}
	}
	// One pad column either side of each cell, plus the border pair.
	lineW := cols*(cellW+2) + 2
	if lineW-2 > termWidth {
		fmt.Fprintln(w, "Matrix too big to display")
		return
	}

	fmt.Fprintf(w, "┌%*s┐\n", lineW-2, "")
	for i := 0; i < rows; i++ {
		fmt.Fprint(w, "│")
		for j := 0; j < cols; j++ {
			fmt.Fprintf(w, " %*s ", cellW, fmt.Sprintf("%.2g", m.At(i, j)))
		}
		fmt.Fprintln(w, "│")
	}
	fmt.Fprintf(w, "└%*s┘\n", lineW-2, "")
}
