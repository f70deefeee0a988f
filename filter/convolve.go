package filter

import (
	"github.com/nvr-ai/go-filter/images"
	"gonum.org/v1/gonum/mat"
)

// reflect maps a possibly out-of-range coordinate c into [0, top) by
// mirroring at the edges: overshoot past the last index folds back from
// the far edge, negative coordinates fold back from the near edge. This
// is reflection, not wraparound or zero padding, so the filter window
// never invents hard edges at the image border.
func reflect(c, top int) int {
	top--
	if top < c {
		return top - (c - top)
	}
	if c < 0 {
		return -c
	}
	return c
}

// convolve computes one output sample as the windowed sum of image
// samples times kernel weights. x is the pixel's flat column base
// (pixel index times channel count), matching the driver's iteration.
//
// The kernel's row axis carries the horizontal offset i and its column
// axis the vertical offset j - transposed relative to the image's own
// axes. Symmetric kernels cannot tell; asymmetric custom kernels depend
// on this orientation for stable output, so it must not be "fixed".
func convolve(kern *mat.Dense, img *images.Image, x, y, ch int) float64 {
	size, _ := kern.Dims()
	half := size / 2
	stride := img.Width * img.Channels
	sum := 0.0
	for i := -half; i <= half; i++ {
		for j := -half; j <= half; j++ {
			yc := reflect(y+j, img.Height)
			xc := reflect(x+i*img.Channels+ch, stride)
			sum += float64(img.Pix[yc*stride+xc]) * kern.At(i+half, j+half)
		}
	}
	return sum
}

// clip hard-clips a computed sample against the threshold band: at or
// below lo snaps to 0, at or above hi snaps to 255, anything between
// passes through and is narrowed by truncation. The default (0, 255)
// band therefore doubles as the float-to-byte range clamp.
func clip(x float64, lo, hi uint8) uint8 {
	if x <= float64(lo) {
		return 0
	}
	if x >= float64(hi) {
		return 255
	}
	return uint8(x)
}
