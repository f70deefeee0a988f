package images

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Decode reads one image of the given format from r and converts it into
// an interleaved sample buffer.
//
// Arguments:
//   - r: The encoded byte stream.
//   - f: The codec to use.
//   - desiredChannels: Channel count of the returned buffer (1-4), or 0 to
//     keep the channel count native to the decoded color model.
//
// Returns:
// - The decoded image, already converted to the desired channel count.
// - An error if decoding fails or the format is unknown.
func Decode(r io.Reader, f Format, desiredChannels int) (*Image, error) {
	var (
		decoded image.Image
		err     error
	)
	switch f {
	case FormatJPEG:
		decoded, err = jpeg.Decode(r)
	case FormatPNG:
		decoded, err = png.Decode(r)
	case FormatBMP:
		decoded, err = bmp.Decode(r)
	case FormatTGA:
		decoded, err = tga.Decode(r)
	default:
		return nil, errors.Errorf("cannot decode unknown image format %q", f)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decoding %s stream", f)
	}

	channels := desiredChannels
	if channels == 0 {
		channels = nativeChannels(decoded)
	}
	return fromStdImage(decoded, channels), nil
}

// nativeChannels reports the channel count implied by the decoded color
// model: 1 for grayscale, 3 for models without alpha, 4 otherwise.
func nativeChannels(m image.Image) int {
	switch m.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.YCbCr, *image.CMYK:
		return 3
	default:
		return 4
	}
}

// fromStdImage flattens a stdlib image into an interleaved buffer with
// the requested channel count. Gray values use the 77/150/29 integer
// luma weights; missing alpha is synthesized opaque.
func fromStdImage(m image.Image, channels int) *Image {
	b := m.Bounds()
	out := New(b.Dx(), b.Dy(), channels)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(m.At(x, y)).(color.NRGBA)
			switch channels {
			case 1:
				out.Pix[i] = luma(c.R, c.G, c.B)
			case 2:
				out.Pix[i] = luma(c.R, c.G, c.B)
				out.Pix[i+1] = c.A
			case 3:
				out.Pix[i] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
			case 4:
				out.Pix[i] = c.R
				out.Pix[i+1] = c.G
				out.Pix[i+2] = c.B
				out.Pix[i+3] = c.A
			}
			i += channels
		}
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return uint8((int(r)*77 + int(g)*150 + int(b)*29) >> 8)
}
