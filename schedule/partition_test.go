package schedule

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanCoversAllRowsExactlyOnce(t *testing.T) {
	cases := []struct {
		name    string
		height  int
		workers int
	}{
		{"even split", 100, 4},
		{"remainder to last", 103, 4},
		{"single worker", 57, 1},
		{"one row each", 8, 8},
		{"workers clamped to height", 3, 8},
		{"prime height", 1080, 7},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := Plan(tc.height, tc.workers)
			require.NoError(t, err)

			expected := tc.workers
			if expected > tc.height {
				expected = tc.height
			}
			assert.Len(t, plan, expected)

			// Ordered, contiguous, disjoint, covering [0, height).
			assert.Equal(t, 0, plan[0].Start)
			assert.Equal(t, tc.height, plan[len(plan)-1].End)
			total := 0
			for i, span := range plan {
				assert.Greater(t, span.Rows(), 0, "span %d empty", i)
				if i > 0 {
					assert.Equal(t, plan[i-1].End, span.Start, "gap before span %d", i)
				}
				total += span.Rows()
			}
			assert.Equal(t, tc.height, total)
		})
	}
}

func TestPlanRejectsInvalidWorkerCount(t *testing.T) {
	for _, workers := range []int{0, -1, -8} {
		_, err := Plan(100, workers)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidWorkerCount))
	}
}

func TestPlanRejectsInvalidHeight(t *testing.T) {
	_, err := Plan(0, 4)
	assert.Error(t, err)
}

func TestPlanLastSpanAbsorbsRemainder(t *testing.T) {
	plan, err := Plan(10, 3)
	require.NoError(t, err)
	require.Len(t, plan, 3)
	assert.Equal(t, Span{Start: 0, End: 3}, plan[0])
	assert.Equal(t, Span{Start: 3, End: 6}, plan[1])
	assert.Equal(t, Span{Start: 6, End: 10}, plan[2])
}
