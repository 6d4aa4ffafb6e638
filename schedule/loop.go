package schedule

import (
	"sync"

	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
)

// LoopScheduler treats the row space as a flat iteration space split into
// fixed-size chunks dealt round-robin to a bounded set of workers. The
// interleaved static assignment gives finer-grained balance than one big
// span per worker while staying deterministic: chunk j always runs on
// worker j mod workers.
type LoopScheduler struct {
	// ChunkRows is the number of rows per dispatch unit. Zero picks a size
	// from the image height.
	ChunkRows int
}

func (LoopScheduler) Name() string { return "loop" }

func (s LoopScheduler) Run(stage kernels.Stage, in, out *images.PixelBuffer, workers int) error {
	// Validate through the partitioner so both strategies reject the same
	// configurations.
	if _, err := Plan(in.Height, workers); err != nil {
		return err
	}
	height := in.Height
	if workers > height {
		workers = height
	}

	chunk := s.ChunkRows
	if chunk <= 0 {
		chunk = chunkRowsFor(height)
	}
	stride := workers * chunk

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for start := worker * chunk; start < height; start += stride {
				end := start + chunk
				if end > height {
					end = height
				}
				stageTask{stage: stage, in: in, out: out, span: Span{Start: start, End: end}}.run()
			}
		}(i)
	}
	wg.Wait()
	return nil
}

// chunkRowsFor balances dispatch overhead against load balance. Larger
// images get bigger chunks to preserve cache locality.
func chunkRowsFor(height int) int {
	switch {
	case height >= 2048:
		return 128
	case height >= 512:
		return 64
	default:
		return 32
	}
}
