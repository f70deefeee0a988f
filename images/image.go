// Package images - raster buffer model, codecs and format detection.
package images

// Image represents a decoded raster as channel-interleaved 8-bit samples
// in row-major order. The sample for (x, y, ch) lives at
// Pix[y*Width*Channels + x*Channels + ch].
type Image struct {
	// Width of the raster in pixels.
	Width int
	// Height of the raster in pixels.
	Height int
	// Channels per pixel, 1-4 (1=gray, 2=gray+alpha, 3=RGB, 4=RGBA).
	Channels int
	// Pix holds Width*Height*Channels samples.
	Pix []uint8
}

// New allocates a zeroed image of the given shape.
func New(width, height, channels int) *Image {
	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Pix:      make([]uint8, width*height*channels),
	}
}

// Clone returns a deep copy sharing no storage with the receiver.
func (img *Image) Clone() *Image {
	out := New(img.Width, img.Height, img.Channels)
	copy(out.Pix, img.Pix)
	return out
}

// Stride is the number of samples per row.
func (img *Image) Stride() int {
	return img.Width * img.Channels
}

// At returns the sample at pixel (x, y), channel ch.
func (img *Image) At(x, y, ch int) uint8 {
	return img.Pix[y*img.Width*img.Channels+x*img.Channels+ch]
}
