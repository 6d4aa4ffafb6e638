package profiler

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageProfilerAccumulates(t *testing.T) {
	p := NewStageProfiler()
	p.recordOperationTime("blur", 10*time.Millisecond)
	p.recordOperationTime("blur", 30*time.Millisecond)
	p.recordOperationTime("decode", 5*time.Millisecond)

	stats := p.Stats()
	require.Len(t, stats, 2)
	// Sorted by total descending.
	assert.Equal(t, "blur", stats[0].Name)
	assert.Equal(t, int64(2), stats[0].Count)
	assert.Equal(t, 40*time.Millisecond, stats[0].Total)
	assert.Equal(t, 10*time.Millisecond, stats[0].Min)
	assert.Equal(t, 30*time.Millisecond, stats[0].Max)
	assert.Equal(t, 20*time.Millisecond, stats[0].Avg)
}

func TestStartOperationRecordsOnCompletion(t *testing.T) {
	p := NewStageProfiler()
	done := p.StartOperation("encode")
	done()

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1), stats[0].Count)
}

func TestStageProfilerConcurrentUse(t *testing.T) {
	p := NewStageProfiler()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				p.recordOperationTime("stage", time.Microsecond)
			}
		}()
	}
	wg.Wait()

	stats := p.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, int64(1600), stats[0].Count)
}

func TestReportWritesOneLinePerOperation(t *testing.T) {
	p := NewStageProfiler()
	p.recordOperationTime("grayscale", time.Millisecond)
	p.recordOperationTime("sharpen", time.Millisecond)

	var buf bytes.Buffer
	p.Report(&buf)
	assert.Contains(t, buf.String(), "grayscale")
	assert.Contains(t, buf.String(), "sharpen")
}
