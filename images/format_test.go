package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromExtension(t *testing.T) {
	cases := []struct {
		name string
		want Format
		ok   bool
	}{
		{"photo.jpg", FormatJPEG, true},
		{"photo.JPEG", FormatJPEG, true},
		{"icon.png", FormatPNG, true},
		{"scan.bmp", FormatBMP, true},
		{"sprite.tga", FormatTGA, true},
		{"-.png", FormatPNG, true}, // forced format on a standard stream
		{"archive.webp", FormatInvalid, false},
		{"noextension", FormatInvalid, false},
		{"-", FormatInvalid, false},
	}
	for _, tc := range cases {
		got, ok := FormatFromExtension(tc.name)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}
}

func TestSniffFormat(t *testing.T) {
	cases := []struct {
		name string
		peek []byte
		want Format
	}{
		{"bmp", []byte{0x42, 0x4d, 0x00, 0x00}, FormatBMP},
		{"jpeg", []byte{0xff, 0xd8, 0xff, 0xe0}, FormatJPEG},
		{"png", []byte{0x89, 0x50, 0x4e, 0x47}, FormatPNG},
	}
	for _, tc := range cases {
		got, err := SniffFormat(tc.peek)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, got, tc.name)
	}

	// BMP is decided on its first two bytes even when the rest differs
	// from any other signature.
	got, err := SniffFormat([]byte{0x42, 0x4d, 0xff, 0xd8})
	require.NoError(t, err)
	assert.Equal(t, FormatBMP, got)

	_, err = SniffFormat([]byte{0x00, 0x01, 0x02, 0x03})
	assert.Error(t, err, "unknown magic is a configuration error")

	_, err = SniffFormat([]byte{0x89, 0x50})
	assert.Error(t, err, "short peeks cannot be sniffed")

	// TGA has no signature: a real TGA header must not be recognized.
	_, err = SniffFormat([]byte{0x00, 0x00, 0x02, 0x00})
	assert.Error(t, err)
}
