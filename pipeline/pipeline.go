// Package pipeline chains the five filter stages over a reusable
// double-buffer pair.
package pipeline

import (
	"github.com/pkg/errors"

	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
	"github.com/pixelbench/go-filters/profiler"
	"github.com/pixelbench/go-filters/schedule"
)

// Config holds the filter constants for a run. All values have documented
// defaults matching the reference behavior of the engine.
type Config struct {
	// LuminanceWeights are the grayscale R, G, B weights (BT.601 default).
	LuminanceWeights [3]float32
	// BrightnessDelta is the bias applied by the brightness stage.
	BrightnessDelta int
	// JPEGQuality is used when encoding JPEG and WebP outputs.
	JPEGQuality int
	// SaveStages persists every intermediate stage output with its tag
	// prefix instead of only the final buffer.
	SaveStages bool
}

// DefaultConfig returns the reference filter constants.
func DefaultConfig() Config {
	return Config{
		LuminanceWeights: [3]float32{0.299, 0.587, 0.114},
		BrightnessDelta:  50,
		JPEGQuality:      100,
		SaveStages:       true,
	}
}

// StageFunc observes one completed stage result. The buffer is only valid
// until the next stage runs; observers that need the pixels longer must
// copy them.
type StageFunc func(stage kernels.Stage, result *images.PixelBuffer) error

// Pipeline applies the fixed stage order
// grayscale -> blur -> edge -> sharpen -> brightness,
// ping-ponging between two buffers so no stage writes in place. The buffer
// pair is allocated once and reused for every image in the run.
type Pipeline struct {
	stages  []kernels.Stage
	sched   schedule.Scheduler
	workers int
	prof    *profiler.StageProfiler
	bufA    *images.PixelBuffer
	bufB    *images.PixelBuffer
}

// New builds a pipeline bound to one scheduling strategy and worker count.
func New(cfg Config, sched schedule.Scheduler, workers int) (*Pipeline, error) {
	if workers <= 0 {
		return nil, errors.Wrapf(schedule.ErrInvalidWorkerCount, "got %d", workers)
	}
	return &Pipeline{
		stages: []kernels.Stage{
			&kernels.Grayscale{Weights: cfg.LuminanceWeights},
			kernels.NewBlur(),
			&kernels.Sobel{},
			kernels.NewSharpen(),
			&kernels.Brightness{Delta: cfg.BrightnessDelta},
		},
		sched:   sched,
		workers: workers,
		bufA:    &images.PixelBuffer{},
		bufB:    &images.PixelBuffer{},
	}, nil
}

// Stages returns the stage order.
func (p *Pipeline) Stages() []kernels.Stage { return p.stages }

// Scheduler returns the bound strategy.
func (p *Pipeline) Scheduler() schedule.Scheduler { return p.sched }

// SetProfiler attaches a profiler that will time every stage barrier.
func (p *Pipeline) SetProfiler(prof *profiler.StageProfiler) { p.prof = prof }

// Process runs every stage over src and returns the buffer holding the
// final result. src is read by the first stage only and never written.
//
// The returned buffer is one of the pipeline's internal pair; it is valid
// until the next Process call. each, when non-nil, is invoked after every
// stage barrier with that stage's output.
func (p *Pipeline) Process(src *images.PixelBuffer, each StageFunc) (*images.PixelBuffer, error) {
	if src.Channels != 1 && src.Channels != 3 && src.Channels != 4 {
		return nil, errors.Wrapf(images.ErrUnsupportedChannels, "got %d", src.Channels)
	}
	if len(src.Samples) != src.Width*src.Height*src.Channels {
		return nil, errors.Errorf("sample count %d does not match %dx%dx%d",
			len(src.Samples), src.Width, src.Height, src.Channels)
	}

	p.bufA.Reshape(src.Width, src.Height, src.Channels)
	p.bufB.Reshape(src.Width, src.Height, src.Channels)

	in, out := src, p.bufA
	for _, stage := range p.stages {
		var done func()
		if p.prof != nil {
			done = p.prof.StartOperation(stage.Name())
		}
		err := p.sched.Run(stage, in, out, p.workers)
		if done != nil {
			done()
		}
		if err != nil {
			return nil, errors.Wrapf(err, "stage %s", stage.Name())
		}
		if each != nil {
			if err := each(stage, out); err != nil {
				return nil, err
			}
		}
		if in == src {
			in, out = out, p.bufB
		} else {
			in, out = out, in
		}
	}
	return in, nil
}
