package images

import (
	"github.com/nfnt/resize"
)

// CapDimensions downscales the buffer so neither dimension exceeds maxDim,
// preserving aspect ratio. maxDim <= 0 disables capping. Buffers already
// within bounds are returned unchanged.
func CapDimensions(buf *PixelBuffer, maxDim int) (*PixelBuffer, error) {
	if maxDim <= 0 || (buf.Width <= maxDim && buf.Height <= maxDim) {
		return buf, nil
	}

	w, h := uint(0), uint(0)
	if buf.Width >= buf.Height {
		w = uint(maxDim)
	} else {
		h = uint(maxDim)
	}
	resized := resize.Resize(w, h, buf.ToImage(), resize.Lanczos3)

	out, err := FromImage(resized)
	if err != nil {
		return nil, err
	}
	// Resampling always goes through NRGBA; collapse back to the source
	// channel count so the filter stages see consistent geometry.
	if out.Channels != buf.Channels {
		out = out.convertChannels(buf.Channels)
	}
	return out, nil
}

// convertChannels returns a copy of the buffer with the requested channel
// count. Gray targets use BT.601 luminance; expanded targets replicate the
// gray value and set alpha opaque.
func (b *PixelBuffer) convertChannels(channels int) *PixelBuffer {
	if channels == b.Channels {
		return b
	}
	out, _ := NewPixelBuffer(b.Width, b.Height, channels)
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			r, g, bl, a := b.rgbaAt(x, y)
			i := out.Offset(x, y, 0)
			switch channels {
			case 1:
				out.Samples[i] = uint8(0.299*float32(r) + 0.587*float32(g) + 0.114*float32(bl) + 0.5)
			case 3:
				out.Samples[i] = r
				out.Samples[i+1] = g
				out.Samples[i+2] = bl
			case 4:
				out.Samples[i] = r
				out.Samples[i+1] = g
				out.Samples[i+2] = bl
				out.Samples[i+3] = a
			}
		}
	}
	return out
}

func (b *PixelBuffer) rgbaAt(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y, 0)
	switch b.Channels {
	case 1:
		v := b.Samples[i]
		return v, v, v, 0xff
	case 3:
		return b.Samples[i], b.Samples[i+1], b.Samples[i+2], 0xff
	default:
		return b.Samples[i], b.Samples[i+1], b.Samples[i+2], b.Samples[i+3]
	}
}
