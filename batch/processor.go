// Package batch runs the filter pipeline over every image in a directory
// and reports the aggregate metrics the benchmark harness scrapes.
package batch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pixelbench/go-filters/config"
	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
	"github.com/pixelbench/go-filters/pipeline"
	"github.com/pixelbench/go-filters/profiler"
	"github.com/pixelbench/go-filters/schedule"
	"github.com/pixelbench/go-filters/util"
)

// Configuration-level errors. These abort the run before any image is
// touched; per-image errors are recovered locally.
var (
	// ErrInputDirMissing means the configured input directory does not
	// exist or is not a directory.
	ErrInputDirMissing = errors.New("input directory missing")
	// ErrOutputDirCreate means the output directory could not be created.
	ErrOutputDirCreate = errors.New("failed to create output directory")
)

// Markers are the literal stdout prefixes the external benchmark harness
// substring-matches. They must not change.
const (
	MarkerProcessed = "Images Processed:"
	MarkerTotalTime = "TOTAL TIME:"
)

// Result aggregates a completed run.
type Result struct {
	Processed int
	Failed    int
	Elapsed   time.Duration
}

// Processor applies the pipeline to a directory of images.
type Processor struct {
	cfg  *config.Config
	pipe *pipeline.Pipeline
	prof *profiler.StageProfiler
	log  *zap.Logger

	// stdout receives the banner, progress and marker lines. Tests swap it
	// for a buffer; the harness contract lives on this writer.
	stdout io.Writer
}

// New builds a processor bound to one scheduling strategy.
func New(cfg *config.Config, sched schedule.Scheduler, log *zap.Logger) (*Processor, error) {
	pipe, err := pipeline.New(cfg.Pipeline(), sched, cfg.Workers)
	if err != nil {
		return nil, err
	}
	prof := profiler.NewStageProfiler()
	pipe.SetProfiler(prof)
	return &Processor{
		cfg:    cfg,
		pipe:   pipe,
		prof:   prof,
		log:    log,
		stdout: os.Stdout,
	}, nil
}

// SetOutput redirects the processor's stdout stream.
func (p *Processor) SetOutput(w io.Writer) { p.stdout = w }

// Profiler exposes the per-operation timing breakdown of the last run.
func (p *Processor) Profiler() *profiler.StageProfiler { return p.prof }

// Run processes every image in the input directory.
//
// Per-image failures are logged, counted and skipped; only configuration
// errors (missing input dir, uncreatable output dir) return an error.
func (p *Processor) Run() (*Result, error) {
	info, err := os.Stat(p.cfg.InputDir)
	if err != nil || !info.IsDir() {
		return nil, errors.Wrap(ErrInputDirMissing, p.cfg.InputDir)
	}
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return nil, errors.Wrapf(ErrOutputDirCreate, "%s: %v", p.cfg.OutputDir, err)
	}

	files, err := util.ListDirectoryImageFiles(p.cfg.InputDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list input directory")
	}

	fmt.Fprintln(p.stdout, "===========================================")
	fmt.Fprintf(p.stdout, "   STARTING BATCH PROCESSOR (%d Workers)\n", p.cfg.Workers)
	fmt.Fprintf(p.stdout, "   [%s scheduler]\n", p.pipe.Scheduler().Name())
	fmt.Fprintln(p.stdout, "===========================================")

	result := &Result{}
	start := time.Now()

	for _, file := range files {
		fmt.Fprintf(p.stdout, "Processing: %s ... ", file.Name)
		if err := p.processOne(file); err != nil {
			fmt.Fprintln(p.stdout, "Failed!")
			p.log.Warn("image failed",
				zap.String("image", file.Name),
				zap.Error(err))
			result.Failed++
			continue
		}
		fmt.Fprintln(p.stdout, "Done.")
		result.Processed++
	}

	result.Elapsed = time.Since(start)

	fmt.Fprintln(p.stdout, "\n===========================================")
	fmt.Fprintln(p.stdout, "   COMPLETED!")
	fmt.Fprintf(p.stdout, "   %s %d\n", MarkerProcessed, result.Processed)
	fmt.Fprintf(p.stdout, "   Images Failed:    %d\n", result.Failed)
	fmt.Fprintf(p.stdout, "   Workers Used:     %d\n", p.cfg.Workers)
	fmt.Fprintf(p.stdout, "   %s       %f seconds\n", MarkerTotalTime, result.Elapsed.Seconds())
	fmt.Fprintln(p.stdout, "===========================================")

	for _, s := range p.prof.Stats() {
		p.log.Debug("operation timing",
			zap.String("operation", s.Name),
			zap.Int64("count", s.Count),
			zap.Duration("total", s.Total),
			zap.Duration("avg", s.Avg))
	}

	return result, nil
}

func (p *Processor) processOne(file util.ImageFile) error {
	stopDecode := p.prof.StartOperation("decode")
	data, err := os.ReadFile(file.Path)
	if err != nil {
		stopDecode()
		return errors.Wrap(err, "read failed")
	}
	src, err := images.Decode(data)
	stopDecode()
	if err != nil {
		return err
	}

	src, err = images.CapDimensions(src, p.cfg.MaxDimension)
	if err != nil {
		return err
	}

	var each pipeline.StageFunc
	if p.cfg.SaveStages {
		each = func(stage kernels.Stage, result *images.PixelBuffer) error {
			stopEncode := p.prof.StartOperation("encode")
			defer stopEncode()
			return images.Encode(p.outPath(stage.Tag(), file.Name), result, p.cfg.JPEGQuality)
		}
	}

	final, err := p.pipe.Process(src, each)
	if err != nil {
		return err
	}

	if !p.cfg.SaveStages {
		stopEncode := p.prof.StartOperation("encode")
		defer stopEncode()
		return images.Encode(p.outPath("filtered", file.Name), final, p.cfg.JPEGQuality)
	}
	return nil
}

func (p *Processor) outPath(tag, name string) string {
	return filepath.Join(p.cfg.OutputDir, tag+"_"+name)
}
