// Package profiler tracks wall-clock statistics for named operations.
//
// The batch processor uses it to attribute run time to decode, the five
// filter stages, and encode; the benchmark harness includes the breakdown
// in its reports.
package profiler

import (
	"fmt"
	"io"
	"sort"
	"sync"
	"time"
)

// TimeTracker accumulates timing statistics for one operation.
type TimeTracker struct {
	name      string
	totalTime time.Duration
	minTime   time.Duration
	maxTime   time.Duration
	count     int64
}

// StageProfiler records operation durations. It is safe for concurrent use.
type StageProfiler struct {
	mu             sync.Mutex
	operationTimes map[string]*TimeTracker
}

// NewStageProfiler creates an empty profiler.
func NewStageProfiler() *StageProfiler {
	return &StageProfiler{
		operationTimes: make(map[string]*TimeTracker),
	}
}

// StartOperation begins timing an operation.
//
// Arguments:
// - name: The name of the operation to track
//
// Returns:
// - A function to call when the operation completes
func (p *StageProfiler) StartOperation(name string) func() {
	start := time.Now()
	return func() {
		p.recordOperationTime(name, time.Since(start))
	}
}

func (p *StageProfiler) recordOperationTime(name string, duration time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tracker, exists := p.operationTimes[name]
	if !exists {
		tracker = &TimeTracker{name: name, minTime: duration, maxTime: duration}
		p.operationTimes[name] = tracker
	}

	tracker.totalTime += duration
	tracker.count++
	if duration < tracker.minTime {
		tracker.minTime = duration
	}
	if duration > tracker.maxTime {
		tracker.maxTime = duration
	}
}

// OperationStats is a snapshot of one operation's timing statistics.
type OperationStats struct {
	Name  string
	Count int64
	Total time.Duration
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Stats returns a snapshot of all tracked operations, sorted by total time
// descending.
func (p *StageProfiler) Stats() []OperationStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := make([]OperationStats, 0, len(p.operationTimes))
	for _, t := range p.operationTimes {
		s := OperationStats{
			Name:  t.name,
			Count: t.count,
			Total: t.totalTime,
			Min:   t.minTime,
			Max:   t.maxTime,
		}
		if t.count > 0 {
			s.Avg = t.totalTime / time.Duration(t.count)
		}
		stats = append(stats, s)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Total > stats[j].Total
	})
	return stats
}

// Report writes a human-readable timing breakdown.
func (p *StageProfiler) Report(w io.Writer) {
	for _, s := range p.Stats() {
		fmt.Fprintf(w, "  %-12s count=%-5d total=%-12s avg=%-12s min=%-12s max=%s\n",
			s.Name, s.Count, s.Total, s.Avg, s.Min, s.Max)
	}
}
