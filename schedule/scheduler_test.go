package schedule

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pixelbench/go-filters/images"
	"github.com/pixelbench/go-filters/images/kernels"
)

// rowRecorder counts how many times each row gets written.
type rowRecorder struct {
	mu     sync.Mutex
	counts []int
}

func (r *rowRecorder) Name() string { return "recorder" }
func (r *rowRecorder) Tag() string  { return "rec" }

func (r *rowRecorder) Apply(in, out *images.PixelBuffer, startRow, endRow int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for y := startRow; y < endRow; y++ {
		r.counts[y]++
	}
}

func testBuffers(t *testing.T, w, h, ch int) (*images.PixelBuffer, *images.PixelBuffer) {
	t.Helper()
	in, err := images.NewPixelBuffer(w, h, ch)
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	for i := range in.Samples {
		in.Samples[i] = uint8(rng.Intn(256))
	}
	out, err := images.NewPixelBuffer(w, h, ch)
	require.NoError(t, err)
	return in, out
}

func TestSchedulersWriteEveryRowExactlyOnce(t *testing.T) {
	schedulers := []Scheduler{LoopScheduler{}, ThreadPoolScheduler{}}
	heights := []int{1, 3, 17, 100, 257}
	workerCounts := []int{1, 2, 4, 8}

	for _, sched := range schedulers {
		for _, height := range heights {
			for _, workers := range workerCounts {
				in, out := testBuffers(t, 4, height, 3)
				rec := &rowRecorder{counts: make([]int, height)}
				require.NoError(t, sched.Run(rec, in, out, workers))
				for y, n := range rec.counts {
					assert.Equal(t, 1, n,
						"%s scheduler, height=%d workers=%d: row %d written %d times",
						sched.Name(), height, workers, y, n)
				}
			}
		}
	}
}

func TestSchedulersRejectInvalidWorkerCount(t *testing.T) {
	in, out := testBuffers(t, 4, 10, 3)
	for _, sched := range []Scheduler{LoopScheduler{}, ThreadPoolScheduler{}} {
		err := sched.Run(&kernels.Sobel{}, in, out, 0)
		assert.Error(t, err, sched.Name())
	}
}

// Interior pixels must be byte-identical no matter how many workers split
// the rows; border pixels follow the copy-through rule, which is also
// worker-count independent. So full buffers must match exactly.
func TestSchedulerDeterminismAcrossWorkerCounts(t *testing.T) {
	stages := []kernels.Stage{
		&kernels.Grayscale{Weights: [3]float32{0.299, 0.587, 0.114}},
		kernels.NewBlur(),
		&kernels.Sobel{},
		kernels.NewSharpen(),
		&kernels.Brightness{Delta: 50},
	}

	for _, sched := range []Scheduler{LoopScheduler{}, ThreadPoolScheduler{}} {
		for _, stage := range stages {
			in, reference := testBuffers(t, 33, 61, 3)
			require.NoError(t, sched.Run(stage, in, reference, 1))

			for _, workers := range []int{2, 4, 8} {
				_, out := testBuffers(t, 33, 61, 3)
				require.NoError(t, sched.Run(stage, in, out, workers))
				assert.Equal(t, reference.Samples, out.Samples,
					"%s scheduler, stage %s, workers=%d", sched.Name(), stage.Name(), workers)
			}
		}
	}
}

func TestLoopSchedulerHonorsChunkSize(t *testing.T) {
	in, out := testBuffers(t, 4, 100, 3)
	rec := &rowRecorder{counts: make([]int, 100)}
	require.NoError(t, LoopScheduler{ChunkRows: 7}.Run(rec, in, out, 3))
	for y, n := range rec.counts {
		assert.Equal(t, 1, n, "row %d", y)
	}
}
