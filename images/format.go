package images

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Format identifies a supported raster file format.
type Format string

// Format constants.
const (
	// FormatInvalid means the format could not be determined.
	FormatInvalid Format = ""
	// FormatJPEG is the JPEG image format.
	FormatJPEG Format = "jpeg"
	// FormatPNG is the PNG image format.
	FormatPNG Format = "png"
	// FormatBMP is the Windows bitmap format.
	FormatBMP Format = "bmp"
	// FormatTGA is the Truevision TGA format. TGA files carry no magic
	// signature, so this format is only reachable via filename extension.
	FormatTGA Format = "tga"
)

// Magic signatures for sniffable formats. BMP is decided on its first
// two bytes alone, JPEG and PNG need four.
var (
	bmpMagic = []byte{0x42, 0x4d}
	jpgMagic = []byte{0xff, 0xd8, 0xff, 0xe0}
	pngMagic = []byte{0x89, 0x50, 0x4e, 0x47}
)

// FormatFromExtension maps a filename to a Format by extension.
// The second return is false when the extension is not recognized.
func FormatFromExtension(name string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg":
		return FormatJPEG, true
	case ".png":
		return FormatPNG, true
	case ".bmp":
		return FormatBMP, true
	case ".tga":
		return FormatTGA, true
	}
	return FormatInvalid, false
}

// SniffFormat determines the format from the first bytes of a stream.
// peek must hold at least four bytes. TGA cannot be sniffed.
func SniffFormat(peek []byte) (Format, error) {
	if len(peek) < 4 {
		return FormatInvalid, errors.New("need at least 4 bytes to sniff image format")
	}
	if peek[0] == bmpMagic[0] && peek[1] == bmpMagic[1] {
		return FormatBMP, nil
	}
	if string(peek[:4]) == string(jpgMagic) {
		return FormatJPEG, nil
	}
	if string(peek[:4]) == string(pngMagic) {
		return FormatPNG, nil
	}
	return FormatInvalid, errors.New("could not determine input file type from magic, please use the -.extension syntax to specify")
}
