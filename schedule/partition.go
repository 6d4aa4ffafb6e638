// Package schedule divides an image's row space across workers and drives
// filter stages to completion under two interchangeable strategies.
package schedule

import (
	"github.com/pkg/errors"
)

// ErrInvalidWorkerCount is returned when a run is configured with a
// non-positive worker count. This is a configuration error and fatal.
var ErrInvalidWorkerCount = errors.New("worker count must be positive")

// Span is one contiguous half-open row range [Start, End) assigned to a
// single worker.
type Span struct {
	Start int
	End   int
}

// Rows returns the number of rows in the span.
func (s Span) Rows() int { return s.End - s.Start }

// PartitionPlan is an ordered list of disjoint spans covering [0, height)
// exactly once.
type PartitionPlan []Span

// Plan splits height rows into near-equal contiguous spans, one per worker.
//
// Worker counts above height are clamped to height so no span is empty; the
// last span absorbs the integer-division remainder so no row is dropped.
//
// Arguments:
// - height: Total row count, must be > 0.
// - workers: Requested worker count, must be > 0.
//
// Returns:
// - PartitionPlan: The computed spans.
// - error: ErrInvalidWorkerCount or a height error.
func Plan(height, workers int) (PartitionPlan, error) {
	if workers <= 0 {
		return nil, errors.Wrapf(ErrInvalidWorkerCount, "got %d", workers)
	}
	if height <= 0 {
		return nil, errors.Errorf("invalid height %d", height)
	}
	if workers > height {
		workers = height
	}

	rowsPerWorker := height / workers
	plan := make(PartitionPlan, workers)
	for i := range plan {
		start := i * rowsPerWorker
		end := start + rowsPerWorker
		if i == workers-1 {
			end = height
		}
		plan[i] = Span{Start: start, End: end}
	}
	return plan, nil
}
