package images

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"
	"os"

	"github.com/chai2010/webp"
	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
)

// Decode decodes raw image bytes into a PixelBuffer.
//
// Arguments:
// - data: The raw file bytes (JPEG, PNG, WebP or BMP).
//
// Returns:
// - *PixelBuffer: The decoded pixels.
// - error: A decode error; callers treat this as skip-the-image, not fatal.
func Decode(data []byte) (*PixelBuffer, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		// The stdlib registry does not know WebP; try it explicitly.
		var werr error
		img, werr = webp.Decode(bytes.NewReader(data))
		if werr != nil {
			return nil, errors.Wrap(err, "image decoding failed")
		}
	}
	return FromImage(img)
}

// Encode writes the buffer to path, choosing the encoder from the file
// extension. quality applies to JPEG and WebP only.
func Encode(path string, buf *PixelBuffer, quality int) error {
	format, ok := FormatForPath(path)
	if !ok {
		return errors.Errorf("unsupported output extension for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s", path)
	}
	defer f.Close()

	img := buf.ToImage()
	switch format {
	case FormatJPEG:
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: quality})
	case FormatPNG:
		err = png.Encode(f, img)
	case FormatWebP:
		err = webp.Encode(f, img, &webp.Options{Quality: float32(quality)})
	case FormatBMP:
		err = bmp.Encode(f, img)
	}
	return errors.Wrapf(err, "failed to encode %s", path)
}
