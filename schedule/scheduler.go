package schedule

import (
	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
)

// Scheduler drives one filter stage over every row of an image. Run returns
// only after every row in [0, in.Height) has been written to out; that
// return is the full barrier between pipeline stages.
//
// Workers within a run write disjoint row ranges and read at most a one-row
// halo outside them, so implementations need no locks beyond the final join.
type Scheduler interface {
	// Name identifies the strategy in logs and benchmark output.
	Name() string
	// Run applies stage to all rows of in, writing out, using the given
	// worker count.
	Run(stage kernels.Stage, in, out *images.PixelBuffer, workers int) error
}

// stageTask binds a stage to one row span and buffer pair. Spawned workers
// receive the full task value instead of a variadic argument list.
type stageTask struct {
	stage kernels.Stage
	in    *images.PixelBuffer
	out   *images.PixelBuffer
	span  Span
}

func (t stageTask) run() {
	t.stage.Apply(t.in, t.out, t.span.Start, t.span.End)
}
