package images

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/ftrvxmtrx/tga"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Encode writes img to w in the given format. JPEG is written at
// quality 100 to match the tool's lossless-as-possible contract.
// An unhandled format here is a programmer error, not user input, and
// panics.
func Encode(w io.Writer, img *Image, f Format) error {
	m := toStdImage(img)
	var err error
	switch f {
	case FormatJPEG:
		err = jpeg.Encode(w, m, &jpeg.Options{Quality: 100})
	case FormatPNG:
		err = png.Encode(w, m)
	case FormatBMP:
		err = bmp.Encode(w, m)
	case FormatTGA:
		err = tga.Encode(w, m)
	default:
		panic(fmt.Sprintf("impossible state: unhandled image format %q when writing", f))
	}
	if err != nil {
		return errors.Wrapf(err, "encoding %s stream", f)
	}
	return nil
}

// toStdImage wraps the interleaved buffer in a stdlib image type.
// 1-channel buffers alias Pix directly as Gray; 4-channel buffers alias
// it as NRGBA. 2- and 3-channel buffers expand into NRGBA since no
// stdlib codec consumes them natively.
func toStdImage(img *Image) image.Image {
	rect := image.Rect(0, 0, img.Width, img.Height)
	switch img.Channels {
	case 1:
		return &image.Gray{Pix: img.Pix, Stride: img.Width, Rect: rect}
	case 2:
		out := image.NewNRGBA(rect)
		for i, o := 0, 0; i < len(img.Pix); i, o = i+2, o+4 {
			v, a := img.Pix[i], img.Pix[i+1]
			out.Pix[o+0] = v
			out.Pix[o+1] = v
			out.Pix[o+2] = v
			out.Pix[o+3] = a
		}
		return out
	case 3:
		out := image.NewNRGBA(rect)
		for i, o := 0, 0; i < len(img.Pix); i, o = i+3, o+4 {
			out.Pix[o+0] = img.Pix[i+0]
			out.Pix[o+1] = img.Pix[i+1]
			out.Pix[o+2] = img.Pix[i+2]
			out.Pix[o+3] = 0xff
		}
		return out
	case 4:
		return &image.NRGBA{Pix: img.Pix, Stride: img.Width * 4, Rect: rect}
	}
	panic(fmt.Sprintf("impossible state: image with %d channels", img.Channels))
}
