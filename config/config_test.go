package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "images", cfg.InputDir)
	assert.Equal(t, "output", cfg.OutputDir)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 50, cfg.BrightnessDelta)
	assert.Equal(t, 100, cfg.JPEGQuality)
	assert.Equal(t, 0, cfg.MaxDimension)
	assert.True(t, cfg.SaveStages)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("FILTERS_INPUT_DIR", "/data/in")
	t.Setenv("FILTERS_WORKERS", "8")
	t.Setenv("FILTERS_SAVE_STAGES", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, 8, cfg.Workers)
	assert.False(t, cfg.SaveStages)
}

func TestPipelineConfigDerivation(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	pc := cfg.Pipeline()
	assert.Equal(t, [3]float32{0.299, 0.587, 0.114}, pc.LuminanceWeights)
	assert.Equal(t, 50, pc.BrightnessDelta)
	assert.Equal(t, 100, pc.JPEGQuality)
	assert.True(t, pc.SaveStages)
}
