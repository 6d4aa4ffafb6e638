package benchmark

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultThreadCounts are the worker counts benchmarked by default.
var DefaultThreadCounts = []int{1, 2, 4, 8}

// Strategy names one compiled filter binary under comparison.
type Strategy struct {
	// Name is the scheduler name the binary embeds ("loop" or "pool").
	Name string
	// BinaryPath is the path to the compiled binary.
	BinaryPath string
}

// Suite runs both strategy binaries across a set of worker counts and
// renders the final comparison table from their scraped stdout.
type Suite struct {
	strategies   []Strategy
	threadCounts []int
	inputDir     string
	outputDir    string
	timeout      time.Duration
	log          *zap.Logger
	out          io.Writer

	mu      sync.Mutex
	results []RunStats
}

// NewSuiteArgs represents the arguments for creating a new benchmark suite.
type NewSuiteArgs struct {
	// LoopBinary is the path to the loop-scheduler binary.
	LoopBinary string
	// PoolBinary is the path to the pool-scheduler binary.
	PoolBinary string
	// ThreadCounts defaults to 1, 2, 4, 8 when empty.
	ThreadCounts []int
	// InputDir is passed to the binaries as FILTERS_INPUT_DIR.
	InputDir string
	// OutputDir is passed to the binaries as FILTERS_OUTPUT_DIR.
	OutputDir string
	// Timeout bounds each individual run; zero means 30 minutes.
	Timeout time.Duration
	// Log receives diagnostics.
	Log *zap.Logger
	// Output receives the progress lines and the summary table; defaults
	// to stdout.
	Output io.Writer
}

// NewSuite creates a new benchmark suite.
func NewSuite(args NewSuiteArgs) *Suite {
	threadCounts := args.ThreadCounts
	if len(threadCounts) == 0 {
		threadCounts = DefaultThreadCounts
	}
	timeout := args.Timeout
	if timeout == 0 {
		timeout = 30 * time.Minute
	}
	out := args.Output
	if out == nil {
		out = os.Stdout
	}
	log := args.Log
	if log == nil {
		log = zap.NewNop()
	}
	return &Suite{
		strategies: []Strategy{
			{Name: "loop", BinaryPath: args.LoopBinary},
			{Name: "pool", BinaryPath: args.PoolBinary},
		},
		threadCounts: threadCounts,
		inputDir:     args.InputDir,
		outputDir:    args.OutputDir,
		timeout:      timeout,
		log:          log,
		out:          out,
	}
}

// Results returns every per-run stat collected so far.
func (s *Suite) Results() []RunStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]RunStats, len(s.results))
	copy(out, s.results)
	return out
}

// Run executes both strategies at every configured thread count and writes
// the final summary table. Individual run failures are recorded as
// incomplete rows, not fatal errors, so one bad configuration does not
// discard the rest of the comparison.
func (s *Suite) Run(ctx context.Context) ([]Summary, error) {
	fmt.Fprintln(s.out, "===========================================")
	fmt.Fprintln(s.out, "   PARALLEL EXECUTION BENCHMARK")
	fmt.Fprintln(s.out, "===========================================")

	summaries := make([]Summary, 0, len(s.threadCounts))
	for _, threads := range s.threadCounts {
		fmt.Fprintf(s.out, "\n>>>> RUNNING WITH %d WORKER(S) <<<<\n", threads)

		summary := Summary{Threads: threads}
		for _, strategy := range s.strategies {
			stats := s.runOnce(ctx, strategy, threads)
			s.mu.Lock()
			s.results = append(s.results, stats)
			s.mu.Unlock()

			fmt.Fprintf(s.out, "%s scheduler:\n", strategy.Name)
			if stats.Completed {
				fmt.Fprintf(s.out, "  - Images Processed: %d\n", stats.ImagesProcessed)
				fmt.Fprintf(s.out, "  - Total Time      : %.4f seconds\n", stats.TotalSeconds)
			} else {
				fmt.Fprintln(s.out, "  - FAILED")
			}

			switch strategy.Name {
			case "loop":
				summary.LoopTime = stats.TotalSeconds
			case "pool":
				summary.PoolTime = stats.TotalSeconds
			}
		}
		summaries = append(summaries, summary)

		if err := ctx.Err(); err != nil {
			return summaries, errors.Wrap(err, "benchmark interrupted")
		}
	}

	s.renderSummary(summaries)
	return summaries, nil
}

// runOnce executes one binary at one thread count and scrapes its stdout.
func (s *Suite) runOnce(ctx context.Context, strategy Strategy, threads int) RunStats {
	stats := RunStats{Strategy: strategy.Name, Threads: threads}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, strategy.BinaryPath, strconv.Itoa(threads))
	cmd.Env = append(os.Environ(),
		"FILTERS_INPUT_DIR="+s.inputDir,
		"FILTERS_OUTPUT_DIR="+s.outputDir,
	)

	output, err := cmd.Output()
	if err != nil {
		s.log.Warn("strategy run failed",
			zap.String("strategy", strategy.Name),
			zap.Int("threads", threads),
			zap.Error(err))
		return stats
	}

	count, seconds, err := ParseRunOutput(string(output))
	if err != nil {
		s.log.Warn("failed to scrape run output",
			zap.String("strategy", strategy.Name),
			zap.Int("threads", threads),
			zap.Error(err))
		return stats
	}

	stats.ImagesProcessed = count
	stats.TotalSeconds = seconds
	stats.Completed = true
	return stats
}

func (s *Suite) renderSummary(summaries []Summary) {
	fmt.Fprintln(s.out, "\n\n===========================================")
	fmt.Fprintln(s.out, "          FINAL PERFORMANCE SUMMARY")
	fmt.Fprintln(s.out, "===========================================")
	fmt.Fprintln(s.out, "+----------+-----------------+-----------------+")
	fmt.Fprintln(s.out, "| Threads  | Loop Time       | Pool Time       |")
	fmt.Fprintln(s.out, "+----------+-----------------+-----------------+")
	for _, row := range summaries {
		fmt.Fprintf(s.out, "| %-8d | %-15.4f | %-15.4f |\n", row.Threads, row.LoopTime, row.PoolTime)
	}
	fmt.Fprintln(s.out, "+----------+-----------------+-----------------+")
}
