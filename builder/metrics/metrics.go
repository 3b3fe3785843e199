// Package metrics provides build performance tracking.
package metrics

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

// BuildMetrics tracks performance data during the build process. Counters are
// safe to update from the per-locale and highlight goroutines.
type BuildMetrics struct {
	// Timing
	StartTime time.Time
	EndTime   time.Time

	mu     sync.Mutex
	phases map[string]time.Duration

	// Counters
	postsProcessed atomic.Int64
	codeBlocks     atomic.Int64
	filesWritten   atomic.Int64
	cacheHits      atomic.Int64
	cacheMisses    atomic.Int64
}

// NewBuildMetrics creates a new metrics instance.
func NewBuildMetrics() *BuildMetrics {
	return &BuildMetrics{
		StartTime: time.Now(),
		phases:    make(map[string]time.Duration),
	}
}

// RecordEnd marks the end of the build.
func (m *BuildMetrics) RecordEnd() {
	m.EndTime = time.Now()
}

// TotalDuration returns the total build duration.
func (m *BuildMetrics) TotalDuration() time.Duration {
	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// AddPhase accumulates time spent in a named phase ("load", "highlight", "write").
func (m *BuildMetrics) AddPhase(name string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.phases[name] += d
}

// Track starts timing phase name; call the returned func when it ends.
func (m *BuildMetrics) Track(name string) func() {
	start := time.Now()
	return func() { m.AddPhase(name, time.Since(start)) }
}

// Phase returns the accumulated duration of a phase.
func (m *BuildMetrics) Phase(name string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phases[name]
}

func (m *BuildMetrics) IncrementPostsProcessed() { m.postsProcessed.Add(1) }
func (m *BuildMetrics) AddCodeBlocks(n int)       { m.codeBlocks.Add(int64(n)) }
func (m *BuildMetrics) IncrementFilesWritten()    { m.filesWritten.Add(1) }

// AddCacheStats records highlight cache hits and misses.
func (m *BuildMetrics) AddCacheStats(hits, misses int64) {
	m.cacheHits.Add(hits)
	m.cacheMisses.Add(misses)
}

func (m *BuildMetrics) PostsProcessed() int { return int(m.postsProcessed.Load()) }
func (m *BuildMetrics) CodeBlocks() int     { return int(m.codeBlocks.Load()) }
func (m *BuildMetrics) FilesWritten() int   { return int(m.filesWritten.Load()) }
func (m *BuildMetrics) CacheHits() int      { return int(m.cacheHits.Load()) }
func (m *BuildMetrics) CacheMisses() int    { return int(m.cacheMisses.Load()) }

// CacheHitRate returns the cache hit percentage.
func (m *BuildMetrics) CacheHitRate() float64 {
	hits, misses := m.cacheHits.Load(), m.cacheMisses.Load()
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// String returns a formatted summary of the build metrics (minimal single-line format).
func (m *BuildMetrics) String() string {
	hits, misses := m.cacheHits.Load(), m.cacheMisses.Load()
	return fmt.Sprintf("📊 Built %d posts, %d code blocks, %d files in %v (cache: %d/%d hits, %.0f%%)",
		m.PostsProcessed(),
		m.CodeBlocks(),
		m.FilesWritten(),
		m.TotalDuration().Round(time.Millisecond),
		hits,
		hits+misses,
		m.CacheHitRate(),
	)
}

// Print outputs the metrics to stdout.
func (m *BuildMetrics) Print() {
	fmt.Println(m.String())
}
