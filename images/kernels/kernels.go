// Package kernels defines the five filter stages of the batch pipeline and
// the 3x3 convolution matrices behind them.
//
// Every stage is a pure transform over an assigned row range. Convolution
// stages read a one-pixel halo around their range but never write outside
// it, which is what lets the schedulers run disjoint ranges without locks.
package kernels

import (
	"github.com/pixelbench/go-filters/images"
)

// Kernel is a 3x3 convolution matrix. Weights are fixed at construction and
// never mutated.
type Kernel [3][3]float32

// Gaussian3x3 is the normalized 3x3 Gaussian blur kernel.
var Gaussian3x3 = Kernel{
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
	{2.0 / 16, 4.0 / 16, 2.0 / 16},
	{1.0 / 16, 2.0 / 16, 1.0 / 16},
}

// Sharpen3x3 is the standard unsharp kernel.
var Sharpen3x3 = Kernel{
	{0, -1, 0},
	{-1, 5, -1},
	{0, -1, 0},
}

// SobelX is the horizontal Sobel gradient kernel.
var SobelX = Kernel{
	{-1, 0, 1},
	{-2, 0, 2},
	{-1, 0, 1},
}

// SobelY is the vertical Sobel gradient kernel.
var SobelY = Kernel{
	{-1, -2, -1},
	{0, 0, 0},
	{1, 2, 1},
}

// Stage is one filter applied over an assigned row range of an image.
//
// Apply must write every pixel of rows [startRow, endRow) to out and must
// not retain state between invocations. The input buffer must be complete
// before any worker calls Apply, because convolution stages read a one-row
// halo outside their assigned range.
type Stage interface {
	// Name is the human-readable filter name.
	Name() string
	// Tag is the output filename prefix used when intermediate stage
	// results are persisted (e.g. "gray" -> gray_photo.jpg).
	Tag() string
	// Apply transforms rows [startRow, endRow) of in into out.
	Apply(in, out *images.PixelBuffer, startRow, endRow int)
}

// clampU8 clamps a float32 sample into [0, 255] and truncates toward zero.
// Truncation, not rounding, is the engine's documented convention: the
// canonical grayscale vector (100,150,200) -> 140 only holds when the
// fractional part is dropped.
func clampU8(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// copyPixel passes one full pixel through unchanged. This is the border
// policy for all convolution-family stages: first/last rows and columns are
// not recomputed, they receive the input value verbatim.
func copyPixel(in, out *images.PixelBuffer, idx int) {
	copy(out.Samples[idx:idx+in.Channels], in.Samples[idx:idx+in.Channels])
}
