// Package filter applies 2-D convolution-style filters to interleaved
// raster buffers: Gaussian and box-average smoothing, Sobel gradient
// magnitude, custom kernels, and intensity thresholding, with optional
// row-parallel execution.
package filter

import (
	"math"
	"sync"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/nvr-ai/go-filter/images"
	"github.com/nvr-ai/go-filter/images/kernels"
)

// Options configures one filter run.
type Options struct {
	// Size is the kernel side length for Gauss/Avg. Must be odd, >= 1.
	Size int
	// Sigma is the Gaussian standard deviation.
	Sigma float64
	// SobelType selects the Sobel kernel family (0-2).
	SobelType int
	// ThresholdLo and ThresholdHi clip every output sample: at or below
	// Lo snaps to 0, at or above Hi snaps to 255. The zero band (0, 0)
	// snaps every sample; callers wanting plain range clamping set the
	// full (0, 255) band.
	ThresholdLo uint8
	ThresholdHi uint8
	// Matrix is the parsed custom kernel; required for Custom.
	Matrix *mat.Dense
	// Parallel distributes rows across goroutines.
	Parallel bool
}

// Apply runs the selected algorithm over every pixel and channel of img
// and returns a freshly allocated buffer of the same shape. The input
// buffer is never written.
//
// Each output sample depends only on the read-only input and the
// immutable kernel, so rows are distributed across goroutines with
// nothing but a final join: write regions are disjoint per sample.
func Apply(img *images.Image, alg Algorithm, opt Options) (*images.Image, error) {
	var kern *mat.Dense
	switch alg {
	case Gauss:
		if opt.Size < 1 || opt.Size%2 == 0 {
			return nil, errors.Errorf("matrix size has to be odd, got %d", opt.Size)
		}
		kern = kernels.Gaussian(opt.Size, opt.Sigma)
	case Avg:
		if opt.Size < 1 || opt.Size%2 == 0 {
			return nil, errors.Errorf("matrix size has to be odd, got %d", opt.Size)
		}
		kern = kernels.Average(opt.Size)
	case Custom:
		if opt.Matrix == nil {
			return nil, errors.New("custom algorithm requires a matrix")
		}
		kern = opt.Matrix
	case Sobel:
		if opt.SobelType < 0 || opt.SobelType > 2 {
			return nil, errors.Errorf("sobel filter type has to be between 0 and 2 inclusive, got %d", opt.SobelType)
		}
	case None:
	default:
		return nil, errors.Errorf("unknown algorithm %d", alg)
	}

	out := images.New(img.Width, img.Height, img.Channels)
	stride := img.Width * img.Channels

	rowTask := func(y int) {
		for x := 0; x < stride; x += img.Channels {
			for ch := 0; ch < img.Channels; ch++ {
				var v float64
				switch alg {
				case Gauss, Avg, Custom:
					v = convolve(kern, img, x, y, ch)
				case Sobel:
					gx := convolve(kernels.SobelX(opt.SobelType), img, x, y, ch)
					gy := convolve(kernels.SobelY(opt.SobelType), img, x, y, ch)
					v = math.Sqrt(gx*gx + gy*gy)
				case None:
					v = float64(img.Pix[y*stride+x+ch])
				}
				out.Pix[y*stride+x+ch] = clip(v, opt.ThresholdLo, opt.ThresholdHi)
			}
		}
	}

	if !opt.Parallel || img.Height < 4 {
		for y := 0; y < img.Height; y++ {
			rowTask(y)
		}
		return out, nil
	}

	// Contiguous row chunks keep cache locality and bound the number of
	// goroutines.
	chunk := chooseChunk(img.Height)
	var wg sync.WaitGroup
	for start := 0; start < img.Height; start += chunk {
		end := start + chunk
		if end > img.Height {
			end = img.Height
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			for y := s; y < e; y++ {
				rowTask(y)
			}
		}(start, end)
	}
	wg.Wait()
	return out, nil
}

// chooseChunk picks a row chunk size that balances scheduling overhead
// against parallelism for typical image heights.
func chooseChunk(n int) int {
	switch {
	case n >= 2048:
		return 128
	case n >= 512:
		return 64
	default:
		return 32
	}
}
