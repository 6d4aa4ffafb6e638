// Package images - pixel buffer representation and codecs for the batch
// filtering engine.
package images

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
)

// ErrUnsupportedChannels is returned when a buffer is requested or decoded
// with a channel count other than 1, 3 or 4.
var ErrUnsupportedChannels = errors.New("unsupported channel count: must be 1, 3 or 4")

// PixelBuffer represents one decoded image as a flat, row-major slice of
// 8-bit samples.
type PixelBuffer struct {
	// Width of the image in pixels.
	Width int
	// Height of the image in pixels.
	Height int
	// Channels per pixel: 1 (gray), 3 (RGB) or 4 (RGBA).
	Channels int
	// Samples holds exactly Width*Height*Channels values.
	Samples []uint8
}

// NewPixelBuffer allocates a zeroed buffer for the given dimensions.
//
// Arguments:
// - width: Image width in pixels, must be > 0.
// - height: Image height in pixels, must be > 0.
// - channels: Samples per pixel, one of 1, 3 or 4.
//
// Returns:
// - *PixelBuffer: The allocated buffer.
// - error: ErrUnsupportedChannels or a dimension error.
func NewPixelBuffer(width, height, channels int) (*PixelBuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("invalid dimensions %dx%d", width, height)
	}
	if channels != 1 && channels != 3 && channels != 4 {
		return nil, errors.Wrapf(ErrUnsupportedChannels, "got %d", channels)
	}
	return &PixelBuffer{
		Width:    width,
		Height:   height,
		Channels: channels,
		Samples:  make([]uint8, width*height*channels),
	}, nil
}

// Offset returns the index of channel c of pixel (x, y). This is the only
// place the (y*width+x)*channels+c layout is spelled out; all filter code
// indexes through it or through Row.
func (b *PixelBuffer) Offset(x, y, c int) int {
	return (y*b.Width+x)*b.Channels + c
}

// Row returns the sample slice backing row y.
func (b *PixelBuffer) Row(y int) []uint8 {
	start := y * b.Width * b.Channels
	return b.Samples[start : start+b.Width*b.Channels]
}

// Clone returns a deep copy of the buffer.
func (b *PixelBuffer) Clone() *PixelBuffer {
	out := &PixelBuffer{
		Width:    b.Width,
		Height:   b.Height,
		Channels: b.Channels,
		Samples:  make([]uint8, len(b.Samples)),
	}
	copy(out.Samples, b.Samples)
	return out
}

// CopyFrom overwrites this buffer's geometry and samples with src's,
// reusing the sample slice when it is large enough. This is what lets the
// double-buffer pair survive across images without reallocation.
func (b *PixelBuffer) CopyFrom(src *PixelBuffer) {
	b.Width = src.Width
	b.Height = src.Height
	b.Channels = src.Channels
	if cap(b.Samples) < len(src.Samples) {
		b.Samples = make([]uint8, len(src.Samples))
	}
	b.Samples = b.Samples[:len(src.Samples)]
	copy(b.Samples, src.Samples)
}

// Reshape resizes the buffer's geometry for the next image, reusing the
// sample slice when possible. Contents after Reshape are unspecified.
func (b *PixelBuffer) Reshape(width, height, channels int) {
	n := width * height * channels
	b.Width = width
	b.Height = height
	b.Channels = channels
	if cap(b.Samples) < n {
		b.Samples = make([]uint8, n)
	}
	b.Samples = b.Samples[:n]
}

// FromImage converts a decoded standard-library image into a PixelBuffer.
// Gray images produce 1 channel, images carrying alpha produce 4, and
// everything else (including JPEG's YCbCr) produces 3.
func FromImage(img image.Image) (*PixelBuffer, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch src := img.(type) {
	case *image.Gray:
		buf, err := NewPixelBuffer(w, h, 1)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w]
			copy(buf.Row(y), row)
		}
		return buf, nil

	case *image.NRGBA:
		buf, err := NewPixelBuffer(w, h, 4)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+w*4]
			copy(buf.Row(y), row)
		}
		return buf, nil

	case *image.RGBA:
		buf, err := NewPixelBuffer(w, h, 4)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.NRGBAModel.Convert(src.RGBAAt(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				i := buf.Offset(x, y, 0)
				buf.Samples[i] = c.R
				buf.Samples[i+1] = c.G
				buf.Samples[i+2] = c.B
				buf.Samples[i+3] = c.A
			}
		}
		return buf, nil

	default:
		buf, err := NewPixelBuffer(w, h, 3)
		if err != nil {
			return nil, err
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
				i := buf.Offset(x, y, 0)
				buf.Samples[i] = uint8(r >> 8)
				buf.Samples[i+1] = uint8(g >> 8)
				buf.Samples[i+2] = uint8(bl >> 8)
			}
		}
		return buf, nil
	}
}

// ToImage converts the buffer back into a standard-library image suitable
// for the encoders.
func (b *PixelBuffer) ToImage() image.Image {
	switch b.Channels {
	case 1:
		img := image.NewGray(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width], b.Row(y))
		}
		return img
	case 4:
		img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			copy(img.Pix[y*img.Stride:y*img.Stride+b.Width*4], b.Row(y))
		}
		return img
	default:
		img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
		for y := 0; y < b.Height; y++ {
			for x := 0; x < b.Width; x++ {
				i := b.Offset(x, y, 0)
				o := y*img.Stride + x*4
				img.Pix[o] = b.Samples[i]
				img.Pix[o+1] = b.Samples[i+1]
				img.Pix[o+2] = b.Samples[i+2]
				img.Pix[o+3] = 0xff
			}
		}
		return img
	}
}
