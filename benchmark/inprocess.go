package benchmark

import (
	"os"
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/pipeline"
	"github.com/pixelbench/go-filters/schedule"
	"github.com/pixelbench/go-filters/util"
)

// InProcessArgs configures an in-process strategy comparison.
type InProcessArgs struct {
	// InputDir is the image corpus directory.
	InputDir string
	// ThreadCounts defaults to 1, 2, 4, 8 when empty.
	ThreadCounts []int
	// Config supplies the filter constants.
	Config pipeline.Config
}

// RunInProcess measures both scheduling strategies inside this process,
// without encode/decode or process-spawn overhead, and with memory
// allocation deltas that the subprocess harness cannot observe. The corpus
// is decoded once up front so every measured run sees identical inputs.
func RunInProcess(args InProcessArgs) ([]PerformanceMetrics, error) {
	threadCounts := args.ThreadCounts
	if len(threadCounts) == 0 {
		threadCounts = DefaultThreadCounts
	}

	files, err := util.ListDirectoryImageFiles(args.InputDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list corpus")
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no images in %s", args.InputDir)
	}

	corpus := make([]*images.PixelBuffer, 0, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file.Path)
		if err != nil {
			continue
		}
		buf, err := images.Decode(data)
		if err != nil {
			continue
		}
		corpus = append(corpus, buf)
	}
	if len(corpus) == 0 {
		return nil, errors.Errorf("no decodable images in %s", args.InputDir)
	}

	schedulers := []schedule.Scheduler{
		schedule.LoopScheduler{},
		schedule.ThreadPoolScheduler{},
	}

	var results []PerformanceMetrics
	for _, sched := range schedulers {
		for _, threads := range threadCounts {
			metrics, err := measure(args.Config, sched, threads, corpus)
			if err != nil {
				return nil, err
			}
			results = append(results, *metrics)
		}
	}
	return results, nil
}

func measure(cfg pipeline.Config, sched schedule.Scheduler, threads int, corpus []*images.PixelBuffer) (*PerformanceMetrics, error) {
	pipe, err := pipeline.New(cfg, sched, threads)
	if err != nil {
		return nil, err
	}

	// Warm the double buffers so allocation of the pair is not attributed
	// to the measured loop.
	if _, err := pipe.Process(corpus[0], nil); err != nil {
		return nil, err
	}

	var startMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&startMem)

	start := time.Now()
	for _, buf := range corpus {
		if _, err := pipe.Process(buf, nil); err != nil {
			return nil, err
		}
	}
	elapsed := time.Since(start)

	var endMem runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&endMem)

	return &PerformanceMetrics{
		Strategy:        sched.Name(),
		Threads:         threads,
		Timestamp:       time.Now(),
		TotalDuration:   elapsed,
		ImagesProcessed: len(corpus),
		ImagesPerSecond: float64(len(corpus)) / elapsed.Seconds(),
		MemoryStats: MemoryMetrics{
			AllocBytes:      endMem.Alloc,
			TotalAllocBytes: endMem.TotalAlloc - startMem.TotalAlloc,
			SysBytes:        endMem.Sys,
			NumGC:           endMem.NumGC - startMem.NumGC,
			HeapAllocBytes:  endMem.HeapAlloc,
			HeapSysBytes:    endMem.HeapSys,
		},
		NumCPU: runtime.NumCPU(),
	}, nil
}
