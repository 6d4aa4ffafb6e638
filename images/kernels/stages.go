package kernels

import (
	"github.com/chewxy/math32"
	"github.com/pixelbench/go-filters/images"
)

// Grayscale converts color pixels to their luminance, writing the gray
// value to R, G and B. Alpha is passed through unchanged. Single-channel
// buffers are copied through, since their sample already is the luminance.
type Grayscale struct {
	// Weights are the R, G, B luminance weights. The engine default is the
	// BT.601 convention (0.299, 0.587, 0.114).
	Weights [3]float32
}

func (s *Grayscale) Name() string { return "grayscale" }
func (s *Grayscale) Tag() string  { return "gray" }

func (s *Grayscale) Apply(in, out *images.PixelBuffer, startRow, endRow int) {
	if in.Channels < 3 {
		for y := startRow; y < endRow; y++ {
			copy(out.Row(y), in.Row(y))
		}
		return
	}
	for y := startRow; y < endRow; y++ {
		for x := 0; x < in.Width; x++ {
			i := in.Offset(x, y, 0)
			gray := clampU8(
				s.Weights[0]*float32(in.Samples[i]) +
					s.Weights[1]*float32(in.Samples[i+1]) +
					s.Weights[2]*float32(in.Samples[i+2]))
			out.Samples[i] = gray
			out.Samples[i+1] = gray
			out.Samples[i+2] = gray
			if in.Channels == 4 {
				out.Samples[i+3] = in.Samples[i+3]
			}
		}
	}
}

// Convolve applies a single 3x3 kernel per color channel. Alpha is passed
// through; border pixels are copied through unchanged.
type Convolve struct {
	name   string
	tag    string
	kernel Kernel
}

// NewBlur returns the Gaussian blur stage.
func NewBlur() *Convolve {
	return &Convolve{name: "blur", tag: "blur", kernel: Gaussian3x3}
}

// NewSharpen returns the sharpening stage.
func NewSharpen() *Convolve {
	return &Convolve{name: "sharpen", tag: "sharp", kernel: Sharpen3x3}
}

func (s *Convolve) Name() string { return s.name }
func (s *Convolve) Tag() string  { return s.tag }

func (s *Convolve) Apply(in, out *images.PixelBuffer, startRow, endRow int) {
	w, h, ch := in.Width, in.Height, in.Channels
	colorCh := ch
	if colorCh > 3 {
		colorCh = 3
	}
	for y := startRow; y < endRow; y++ {
		for x := 0; x < w; x++ {
			idx := in.Offset(x, y, 0)
			if y == 0 || y == h-1 || x == 0 || x == w-1 {
				copyPixel(in, out, idx)
				continue
			}
			for c := 0; c < colorCh; c++ {
				var sum float32
				for ky := -1; ky <= 1; ky++ {
					rowIdx := in.Offset(x-1, y+ky, c)
					sum += float32(in.Samples[rowIdx]) * s.kernel[ky+1][0]
					sum += float32(in.Samples[rowIdx+ch]) * s.kernel[ky+1][1]
					sum += float32(in.Samples[rowIdx+2*ch]) * s.kernel[ky+1][2]
				}
				out.Samples[idx+c] = clampU8(sum)
			}
			if ch == 4 {
				out.Samples[idx+3] = in.Samples[idx+3]
			}
		}
	}
}

// Sobel computes the gradient magnitude sqrt(Gx^2+Gy^2) per color channel.
// Alpha is passed through; border pixels are copied through unchanged.
type Sobel struct{}

func (s *Sobel) Name() string { return "edge" }
func (s *Sobel) Tag() string  { return "edge" }

func (s *Sobel) Apply(in, out *images.PixelBuffer, startRow, endRow int) {
	w, h, ch := in.Width, in.Height, in.Channels
	colorCh := ch
	if colorCh > 3 {
		colorCh = 3
	}
	for y := startRow; y < endRow; y++ {
		for x := 0; x < w; x++ {
			idx := in.Offset(x, y, 0)
			if y == 0 || y == h-1 || x == 0 || x == w-1 {
				copyPixel(in, out, idx)
				continue
			}
			for c := 0; c < colorCh; c++ {
				var sumX, sumY float32
				for ky := -1; ky <= 1; ky++ {
					rowIdx := in.Offset(x-1, y+ky, c)
					for kx := 0; kx < 3; kx++ {
						v := float32(in.Samples[rowIdx+kx*ch])
						sumX += v * SobelX[ky+1][kx]
						sumY += v * SobelY[ky+1][kx]
					}
				}
				mag := math32.Sqrt(sumX*sumX + sumY*sumY)
				out.Samples[idx+c] = clampU8(mag)
			}
			if ch == 4 {
				out.Samples[idx+3] = in.Samples[idx+3]
			}
		}
	}
}

// Brightness adds a fixed bias to every color channel, clamping to [0, 255].
// Alpha is passed through unchanged.
type Brightness struct {
	// Delta is the bias added to each sample. The engine default is +50.
	Delta int
}

func (s *Brightness) Name() string { return "brightness" }
func (s *Brightness) Tag() string  { return "bright" }

func (s *Brightness) Apply(in, out *images.PixelBuffer, startRow, endRow int) {
	ch := in.Channels
	for y := startRow; y < endRow; y++ {
		for x := 0; x < in.Width; x++ {
			idx := in.Offset(x, y, 0)
			for c := 0; c < ch; c++ {
				if c == 3 {
					out.Samples[idx+c] = in.Samples[idx+c]
					continue
				}
				v := int(in.Samples[idx+c]) + s.Delta
				if v < 0 {
					v = 0
				} else if v > 255 {
					v = 255
				}
				out.Samples[idx+c] = uint8(v)
			}
		}
	}
}
