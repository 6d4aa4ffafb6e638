// Command filterbench compares the two scheduling strategies across worker
// counts. It runs each strategy binary per thread count, scrapes the metric
// markers from stdout, and prints the final comparison table. The -inprocess
// flag adds an allocation-aware comparison run inside this process.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pixelbench/go-filters/benchmark"
	"github.com/pixelbench/go-filters/logging"
	"github.com/pixelbench/go-filters/pipeline"
)

func main() {
	var (
		imagesDir   = flag.String("images", "images", "Input images directory")
		outputDir   = flag.String("output", "output", "Output directory for filtered images")
		loopBin     = flag.String("loop-bin", "", "Path to a prebuilt loopfilter binary")
		poolBin     = flag.String("pool-bin", "", "Path to a prebuilt poolfilter binary")
		build       = flag.Bool("build", false, "Build the strategy binaries before running")
		moduleDir   = flag.String("module", ".", "Module root, used with -build")
		binDir      = flag.String("bin", "bin", "Directory for built binaries, used with -build")
		inprocess   = flag.Bool("inprocess", false, "Also run the in-process comparison")
		resultsFile = flag.String("results", "", "Optional path for JSON results")
		timeout     = flag.Duration("timeout", 30*time.Minute, "Per-run timeout")
		logLevel    = flag.String("log-level", "info", "Diagnostic log level")
	)
	flag.Parse()

	logger := logging.New(*logLevel)
	defer logger.Sync()

	ctx := context.Background()

	if *build {
		if err := os.MkdirAll(*binDir, 0o755); err != nil {
			log.Fatalf("Failed to create bin directory: %v", err)
		}
		loop, pool, err := benchmark.BuildBinaries(ctx, *moduleDir, *binDir)
		if err != nil {
			log.Fatalf("Failed to build strategy binaries: %v", err)
		}
		*loopBin, *poolBin = loop, pool
	}
	if *loopBin == "" || *poolBin == "" {
		log.Fatal("Strategy binaries are required (-loop-bin and -pool-bin, or -build)")
	}

	suite := benchmark.NewSuite(benchmark.NewSuiteArgs{
		LoopBinary: *loopBin,
		PoolBinary: *poolBin,
		InputDir:   *imagesDir,
		OutputDir:  *outputDir,
		Timeout:    *timeout,
		Log:        logger,
	})

	summaries, err := suite.Run(ctx)
	if err != nil {
		log.Fatalf("Benchmark failed: %v", err)
	}

	var inprocessResults []benchmark.PerformanceMetrics
	if *inprocess {
		inprocessResults, err = benchmark.RunInProcess(benchmark.InProcessArgs{
			InputDir: *imagesDir,
			Config:   pipeline.DefaultConfig(),
		})
		if err != nil {
			log.Fatalf("In-process benchmark failed: %v", err)
		}
		fmt.Println("\nIn-process comparison (no codec or process overhead):")
		for _, m := range inprocessResults {
			fmt.Printf("  %-4s workers=%-2d  %8.2f images/s  alloc=%d bytes  gc=%d\n",
				m.Strategy, m.Threads, m.ImagesPerSecond,
				m.MemoryStats.TotalAllocBytes, m.MemoryStats.NumGC)
		}
	}

	if *resultsFile != "" {
		report := struct {
			Summaries []benchmark.Summary            `json:"summaries"`
			Runs      []benchmark.RunStats           `json:"runs"`
			InProcess []benchmark.PerformanceMetrics `json:"in_process,omitempty"`
			Timestamp time.Time                      `json:"timestamp"`
		}{
			Summaries: summaries,
			Runs:      suite.Results(),
			InProcess: inprocessResults,
			Timestamp: time.Now(),
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			log.Fatalf("Failed to marshal results: %v", err)
		}
		if err := os.WriteFile(*resultsFile, data, 0o644); err != nil {
			log.Fatalf("Failed to write results: %v", err)
		}
		fmt.Printf("\nResults written to %s\n", *resultsFile)
	}
}
