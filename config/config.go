// Package config loads run configuration from the environment.
package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"

	"github.com/pixelbench/go-filters/pipeline"
)

// Config holds every tunable of a batch run. Values come from FILTERS_*
// environment variables; the defaults reproduce the reference behavior.
type Config struct {
	// InputDir is the directory scanned for images.
	InputDir string `envconfig:"INPUT_DIR" default:"images"`
	// OutputDir receives the filtered outputs.
	OutputDir string `envconfig:"OUTPUT_DIR" default:"output"`
	// Workers is the worker count used by both scheduling strategies.
	// A positional CLI argument overrides it.
	Workers int `envconfig:"WORKERS" default:"4"`
	// BrightnessDelta is the bias added by the brightness stage.
	BrightnessDelta int `envconfig:"BRIGHTNESS_DELTA" default:"50"`
	// JPEGQuality applies to JPEG and WebP encoding.
	JPEGQuality int `envconfig:"JPEG_QUALITY" default:"100"`
	// MaxDimension caps input width/height before filtering; 0 disables.
	MaxDimension int `envconfig:"MAX_DIMENSION" default:"0"`
	// SaveStages writes every intermediate stage output, not only the
	// final one.
	SaveStages bool `envconfig:"SAVE_STAGES" default:"true"`
	// LogLevel is the zap level for diagnostic logging on stderr.
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("FILTERS", &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to load config")
	}
	return &cfg, nil
}

// Pipeline derives the filter constants for pipeline construction.
func (c *Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		LuminanceWeights: [3]float32{0.299, 0.587, 0.114},
		BrightnessDelta:  c.BrightnessDelta,
		JPEGQuality:      c.JPEGQuality,
		SaveStages:       c.SaveStages,
	}
}
