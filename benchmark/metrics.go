// Package benchmark - Functionality for comparing the two scheduling
// strategies across worker counts.
package benchmark

import "time"

// RunStats holds the values scraped from one strategy binary's stdout.
type RunStats struct {
	// Strategy is the scheduler name ("loop" or "pool").
	Strategy string `json:"strategy"`
	// Threads is the worker count the binary was invoked with.
	Threads int `json:"threads"`
	// ImagesProcessed is the count scraped from the Images Processed line.
	ImagesProcessed int `json:"images_processed"`
	// TotalSeconds is the wall time scraped from the TOTAL TIME line.
	TotalSeconds float64 `json:"total_seconds"`
	// Completed is false when the run failed or a marker was missing.
	Completed bool `json:"completed"`
}

// PerformanceMetrics captures one in-process pipeline measurement.
type PerformanceMetrics struct {
	Strategy        string        `json:"strategy"`
	Threads         int           `json:"threads"`
	Timestamp       time.Time     `json:"timestamp"`
	TotalDuration   time.Duration `json:"total_duration"`
	ImagesProcessed int           `json:"images_processed"`
	ImagesPerSecond float64       `json:"images_per_second"`
	MemoryStats     MemoryMetrics `json:"memory_stats"`
	NumCPU          int           `json:"num_cpu"`
}

// MemoryMetrics captures memory usage statistics
type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	NumGC           uint32 `json:"num_gc"`
	HeapAllocBytes  uint64 `json:"heap_alloc_bytes"`
	HeapSysBytes    uint64 `json:"heap_sys_bytes"`
}

// Summary is one row of the final comparison table.
type Summary struct {
	Threads  int     `json:"threads"`
	LoopTime float64 `json:"loop_time_seconds"`
	PoolTime float64 `json:"pool_time_seconds"`
}
