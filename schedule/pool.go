package schedule

import (
	"sync"

	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
)

// ThreadPoolScheduler builds an explicit PartitionPlan and spawns one
// goroutine per span. The WaitGroup join is the only synchronization point:
// spans never overlap, and halo rows are read-only.
type ThreadPoolScheduler struct{}

func (ThreadPoolScheduler) Name() string { return "pool" }

func (ThreadPoolScheduler) Run(stage kernels.Stage, in, out *images.PixelBuffer, workers int) error {
	plan, err := Plan(in.Height, workers)
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	for _, span := range plan {
		task := stageTask{stage: stage, in: in, out: out, span: span}
		wg.Add(1)
		go func() {
			defer wg.Done()
			task.run()
		}()
	}
	wg.Wait()
	return nil
}
