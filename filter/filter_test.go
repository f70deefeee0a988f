package filter

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/nvr-ai/go-filter/images"
)

// uniformImage builds a constant-valued test raster.
func uniformImage(w, h, channels int, v uint8) *images.Image {
	img := images.New(w, h, channels)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// randomImage builds a deterministic pseudo-random raster.
func randomImage(w, h, channels int, seed int64) *images.Image {
	rng := rand.New(rand.NewSource(seed))
	img := images.New(w, h, channels)
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	return img
}

// TestApplyNoneIsIdentity checks the none algorithm with the full
// band reproduces the input byte for byte, without aliasing it.
func TestApplyNoneIsIdentity(t *testing.T) {
	img := randomImage(13, 7, 3, 1)
	out, err := Apply(img, None, Options{ThresholdHi: 255})
	require.NoError(t, err)
	assert.Equal(t, img.Pix, out.Pix, "none must reproduce the buffer byte-for-byte")
	require.NotSame(t, &img.Pix[0], &out.Pix[0], "output must be a fresh buffer")
}

// TestApplyAvgConstantField checks the end-to-end scenario: a flat 4x4
// field averaged with a 3x3 box stays flat, edges included, because
// reflection only ever resamples the same constant.
func TestApplyAvgConstantField(t *testing.T) {
	img := uniformImage(4, 4, 1, 100)
	out, err := Apply(img, Avg, Options{Size: 3, ThresholdHi: 255})
	require.NoError(t, err)
	for i, v := range out.Pix {
		require.Equal(t, uint8(100), v, "sample %d", i)
	}
}

// TestApplySobelFlatField checks zero gradient on a uniform image for
// all three kernel types.
func TestApplySobelFlatField(t *testing.T) {
	for typ := 0; typ < 3; typ++ {
		img := uniformImage(6, 5, 2, 100)
		out, err := Apply(img, Sobel, Options{SobelType: typ, ThresholdHi: 255})
		require.NoError(t, err)
		for i, v := range out.Pix {
			require.Equal(t, uint8(0), v, "type %d sample %d", typ, i)
		}
	}
}

// TestApplyGaussSmoothsImpulse checks energy spreads off a single bright
// pixel symmetrically.
func TestApplyGaussSmoothsImpulse(t *testing.T) {
	img := images.New(5, 5, 1)
	img.Pix[2*5+2] = 255
	out, err := Apply(img, Gauss, Options{Size: 3, Sigma: 1.4, ThresholdHi: 255})
	require.NoError(t, err)
	center := out.At(2, 2, 0)
	assert.Greater(t, center, uint8(0), "center keeps most energy")
	assert.Greater(t, center, out.At(1, 2, 0))
	assert.Equal(t, out.At(1, 2, 0), out.At(3, 2, 0), "left/right neighbors match")
	assert.Equal(t, out.At(2, 1, 0), out.At(2, 3, 0), "up/down neighbors match")
	assert.Equal(t, uint8(0), out.At(0, 0, 0), "corners beyond the window stay dark")
}

// TestApplyCustomMatchesAvg checks a hand-built flat custom kernel and
// the built-in average agree exactly.
func TestApplyCustomMatchesAvg(t *testing.T) {
	img := randomImage(9, 6, 3, 7)
	flat := mat.NewDense(3, 3, nil)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			flat.Set(i, j, 1.0/9)
		}
	}
	gotCustom, err := Apply(img, Custom, Options{Matrix: flat, ThresholdHi: 255})
	require.NoError(t, err)
	gotAvg, err := Apply(img, Avg, Options{Size: 3, ThresholdHi: 255})
	require.NoError(t, err)
	assert.Equal(t, gotAvg.Pix, gotCustom.Pix)
}

// TestApplyParallelMatchesSerial checks determinism: chunked row
// goroutines and the serial loop produce identical buffers.
func TestApplyParallelMatchesSerial(t *testing.T) {
	img := randomImage(31, 600, 4, 42)
	for _, alg := range []Algorithm{Gauss, Sobel, Avg, None} {
		serial, err := Apply(img, alg, Options{Size: 5, Sigma: 1.4, ThresholdHi: 255, Parallel: false})
		require.NoError(t, err)
		parallel, err := Apply(img, alg, Options{Size: 5, Sigma: 1.4, ThresholdHi: 255, Parallel: true})
		require.NoError(t, err)
		assert.Equal(t, serial.Pix, parallel.Pix, "algorithm %s", alg)
	}
}

// TestApplyThresholdBand checks the clip runs after the filter: a flat
// mid-gray field under none with a tight band snaps everywhere.
func TestApplyThresholdBand(t *testing.T) {
	img := uniformImage(4, 3, 1, 100)

	out, err := Apply(img, None, Options{ThresholdLo: 100, ThresholdHi: 255})
	require.NoError(t, err)
	assert.Equal(t, uint8(0), out.Pix[0], "at-lo sample snaps to 0")

	out, err = Apply(img, None, Options{ThresholdLo: 0, ThresholdHi: 100})
	require.NoError(t, err)
	assert.Equal(t, uint8(255), out.Pix[0], "at-hi sample snaps to 255")

	out, err = Apply(img, None, Options{ThresholdLo: 10, ThresholdHi: 200})
	require.NoError(t, err)
	assert.Equal(t, uint8(100), out.Pix[0], "in-band sample passes through")
}

// TestApplyZeroBandSnaps checks an explicit (0, 0) band is honored
// rather than widened: zero samples floor and everything else
// saturates, since the lower bound is tested first.
func TestApplyZeroBandSnaps(t *testing.T) {
	img := images.New(3, 1, 1)
	img.Pix[0], img.Pix[1], img.Pix[2] = 0, 100, 255
	out, err := Apply(img, None, Options{ThresholdLo: 0, ThresholdHi: 0})
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 255, 255}, out.Pix)
}

func TestApplyInputUntouched(t *testing.T) {
	img := randomImage(8, 8, 1, 3)
	before := append([]uint8(nil), img.Pix...)
	_, err := Apply(img, Gauss, Options{Size: 5, Sigma: 1.4, ThresholdHi: 255, Parallel: true})
	require.NoError(t, err)
	assert.Equal(t, before, img.Pix, "input buffer is read-only for the run")
}

func TestApplyConfigurationErrors(t *testing.T) {
	img := uniformImage(4, 4, 1, 0)

	_, err := Apply(img, Gauss, Options{Size: 4, Sigma: 1.4})
	assert.Error(t, err, "even kernel size is rejected")

	_, err = Apply(img, Avg, Options{Size: 0})
	assert.Error(t, err, "zero kernel size is rejected")

	_, err = Apply(img, Custom, Options{})
	assert.Error(t, err, "custom without a matrix is rejected")

	_, err = Apply(img, Sobel, Options{SobelType: 3})
	assert.Error(t, err, "out-of-range sobel type is rejected")

	_, err = Apply(img, Algorithm(99), Options{})
	assert.Error(t, err, "unknown algorithm is rejected")
}

func TestParseAlgorithm(t *testing.T) {
	for name, want := range map[string]Algorithm{
		"gauss": Gauss, "SOBEL": Sobel, "Avg": Avg, "custom": Custom, "none": None,
	} {
		got, err := ParseAlgorithm(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := ParseAlgorithm("median")
	assert.Error(t, err)
}
