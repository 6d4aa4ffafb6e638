package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func grayTestImage() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, 4, 4))
	img.SetGray(2, 2, color.Gray{Y: 77})
	return img
}

func TestFormatForPath(t *testing.T) {
	cases := map[string]ImageFormat{
		"photo.jpg":     FormatJPEG,
		"photo.JPEG":    FormatJPEG,
		"dir/photo.png": FormatPNG,
		"photo.webp":    FormatWebP,
		"photo.bmp":     FormatBMP,
	}
	for path, want := range cases {
		got, ok := FormatForPath(path)
		require.True(t, ok, path)
		assert.Equal(t, want, got, path)
	}

	for _, path := range []string{"notes.txt", "photo", "archive.tar.gz", "photo.gif"} {
		_, ok := FormatForPath(path)
		assert.False(t, ok, path)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	assert.Error(t, err)
}

func TestEncodeDecodePNGRoundTrip(t *testing.T) {
	buf, err := NewPixelBuffer(6, 4, 3)
	require.NoError(t, err)
	for i := range buf.Samples {
		buf.Samples[i] = uint8((i * 7) % 256)
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")
	require.NoError(t, Encode(path, buf, 100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, buf.Width, back.Width)
	assert.Equal(t, buf.Height, back.Height)
	// PNG is lossless; color samples must survive exactly.
	for y := 0; y < buf.Height; y++ {
		for x := 0; x < buf.Width; x++ {
			for c := 0; c < 3; c++ {
				assert.Equal(t,
					buf.Samples[buf.Offset(x, y, c)],
					back.Samples[back.Offset(x, y, c)],
					"pixel (%d,%d) channel %d", x, y, c)
			}
		}
	}
}

func TestEncodeDecodeBMPRoundTrip(t *testing.T) {
	buf, err := NewPixelBuffer(3, 3, 3)
	require.NoError(t, err)
	buf.Samples[buf.Offset(1, 1, 0)] = 250

	dir := t.TempDir()
	path := filepath.Join(dir, "out.bmp")
	require.NoError(t, Encode(path, buf, 100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(250), back.Samples[back.Offset(1, 1, 0)])
}

func TestEncodeJPEGProducesDecodableFile(t *testing.T) {
	buf, err := NewPixelBuffer(16, 16, 3)
	require.NoError(t, err)
	for i := range buf.Samples {
		buf.Samples[i] = 128
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "out.jpg")
	require.NoError(t, Encode(path, buf, 100))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	back, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 16, back.Width)
	assert.Equal(t, 16, back.Height)
}

func TestEncodeRejectsUnknownExtension(t *testing.T) {
	buf, err := NewPixelBuffer(2, 2, 3)
	require.NoError(t, err)
	assert.Error(t, Encode(filepath.Join(t.TempDir(), "out.tiff"), buf, 100))
}

func TestDecodeGrayPNGKeepsSingleChannel(t *testing.T) {
	img := grayTestImage()
	var raw bytes.Buffer
	require.NoError(t, png.Encode(&raw, img))

	buf, err := Decode(raw.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 1, buf.Channels)
}
