// Package kernels builds the square convolution weight matrices used by
// the filter engine: Gaussian and box-average kernels, the fixed Sobel
// gradient tables, and custom matrices parsed from text.
//
// A note on orientation: kernels are stored so that the matrix row axis
// carries the horizontal sample offset and the column axis the vertical
// one - transposed relative to image axes. The convolution evaluator
// indexes them the same way, so symmetric kernels are unaffected and
// asymmetric custom kernels keep their historical output.
package kernels

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Gaussian returns a size x size Gaussian kernel for the given sigma.
// Cell (j, i) holds exp(-((i-mid)^2+(j-mid)^2)/(2s^2)) / (2*pi*s^2)
// with mid = size/2, then the whole matrix is divided by its sum so the
// weights total exactly 1 within rounding. The renormalization guards
// against sigma/size combinations whose truncated window integrates
// away from 1.
//
// size must be odd and >= 1; the CLI validates this before calling.
func Gaussian(size int, sigma float64) *mat.Dense {
	out := mat.NewDense(size, size, nil)
	mid := size / 2
	sum := 0.0
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			v := gauss(i-mid, j-mid, sigma)
			out.Set(j, i, v)
			sum += v
		}
	}
	out.Scale(1/sum, out)
	return out
}

// gauss is the 2-D Gaussian density at integer offset (x, y).
func gauss(x, y int, sigma float64) float64 {
	sigma2 := sigma * sigma
	frac := 1 / (2 * math.Pi * sigma2)
	return frac * math.Exp(-float64(x*x+y*y)/(2*sigma2))
}

// Average returns a size x size flat box kernel: every cell 1/size^2.
func Average(size int) *mat.Dense {
	out := mat.NewDense(size, size, nil)
	v := 1 / float64(size*size)
	for i := 0; i < size; i++ {
		for j := 0; j < size; j++ {
			out.Set(i, j, v)
		}
	}
	return out
}
