package kernels

import "gonum.org/v1/gonum/mat"

// The three Sobel variants, by increasing smoothing: the classic
// 1/2/1 operator, the 3/10/3 Scharr-style weights, and the 47/162/47
// optimized weights.
var (
	sobelX = [3][9]float64{
		{
			1, 0, -1,
			2, 0, -2,
			1, 0, -1,
		},
		{
			3, 0, -3,
			10, 0, -10,
			3, 0, -3,
		},
		{
			47, 0, -47,
			162, 0, -162,
			47, 0, -47,
		},
	}
	sobelY = [3][9]float64{
		{
			1, 2, 1,
			0, 0, 0,
			-1, -2, -1,
		},
		{
			3, 10, 3,
			0, 0, 0,
			-3, -10, -3,
		},
		{
			47, 162, 47,
			0, 0, 0,
			-47, -162, -47,
		},
	}

	sobelXMats, sobelYMats [3]*mat.Dense
)

func init() {
	for t := 0; t < 3; t++ {
		sobelXMats[t] = mat.NewDense(3, 3, sobelX[t][:])
		sobelYMats[t] = mat.NewDense(3, 3, sobelY[t][:])
	}
}

// SobelX returns the fixed 3x3 horizontal-gradient kernel for the given
// type (0-2). The returned matrix is shared and must not be mutated.
func SobelX(typ int) *mat.Dense {
	return sobelXMats[typ]
}

// SobelY returns the fixed 3x3 vertical-gradient kernel for the given
// type (0-2). The returned matrix is shared and must not be mutated.
func SobelY(typ int) *mat.Dense {
	return sobelYMats[typ]
}
