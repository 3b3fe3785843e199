package cache

import (
	"fmt"
	"time"
)

// GCConfig controls garbage collection behavior
type GCConfig struct {
	MaxAge time.Duration // drop entries not used for longer than this
	DryRun bool          // If true, only report what would be deleted
}

// DefaultGCConfig returns sensible defaults
func DefaultGCConfig() GCConfig {
	return GCConfig{MaxAge: 30 * 24 * time.Hour}
}

// GCResult contains statistics from a GC run
type GCResult struct {
	ScannedEntries int
	ExpiredEntries int
	OrphanedFiles  int
	DeletedBytes   int64
	Duration       time.Duration
}

// RunGC deletes entries unused for longer than cfg.MaxAge, and files the
// index does not know about. Without an index nothing is collected.
func (m *Manager) RunGC(cfg GCConfig) (*GCResult, error) {
	start := time.Now()
	result := &GCResult{}

	if err := m.Flush(); err != nil {
		return nil, err
	}
	if m.index == nil {
		return nil, fmt.Errorf("garbage collection needs the cache index")
	}

	entries, err := m.index.All()
	if err != nil {
		return nil, fmt.Errorf("failed to scan index: %w", err)
	}
	files, err := m.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to scan store: %w", err)
	}

	sizes := make(map[string]int64, len(files))
	for _, f := range files {
		sizes[f.Key] += f.Size
	}

	cutoff := m.now().Add(-cfg.MaxAge).UnixNano()
	indexed := make(map[string]bool, len(entries))
	var expired []string
	for _, e := range entries {
		result.ScannedEntries++
		indexed[e.Key] = true
		if e.LastUsed < cutoff {
			expired = append(expired, e.Key)
			result.DeletedBytes += sizes[e.Key]
		}
	}
	result.ExpiredEntries = len(expired)

	var orphans []string
	for key, size := range sizes {
		if !indexed[key] {
			orphans = append(orphans, key)
			result.DeletedBytes += size
		}
	}
	result.OrphanedFiles = len(orphans)

	if !cfg.DryRun {
		for _, key := range append(expired, orphans...) {
			_ = m.store.Delete(key)
		}
		if err := m.index.Delete(expired); err != nil {
			return nil, fmt.Errorf("failed to prune index: %w", err)
		}
		if err := m.index.SetLastGC(m.now()); err != nil {
			return nil, err
		}
	}

	result.Duration = time.Since(start)
	return result, nil
}

// Verify checks that the index and the store agree and returns a list of
// problems: indexed entries without a file, and files without an entry.
func (m *Manager) Verify() ([]string, error) {
	if err := m.Flush(); err != nil {
		return nil, err
	}
	if m.index == nil {
		return []string{"cache index unavailable"}, nil
	}

	entries, err := m.index.All()
	if err != nil {
		return nil, err
	}
	files, err := m.store.List()
	if err != nil {
		return nil, err
	}

	onDisk := make(map[string]bool, len(files))
	for _, f := range files {
		onDisk[f.Key] = true
	}

	var problems []string
	indexed := make(map[string]bool, len(entries))
	for _, e := range entries {
		indexed[e.Key] = true
		if !onDisk[e.Key] {
			problems = append(problems, fmt.Sprintf("entry %s (%s, %s): file missing", e.Key, e.Language, e.Theme))
		}
	}
	for _, f := range files {
		if !indexed[f.Key] {
			problems = append(problems, fmt.Sprintf("file %s: not indexed", f.Key))
		}
	}
	return problems, nil
}
