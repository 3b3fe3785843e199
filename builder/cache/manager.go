package cache

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
)

// Options configures Open
type Options struct {
	Compress bool
	Logger   *slog.Logger
}

// Manager is the highlight cache: files in a Store, usage in an Index.
// Index problems are logged and never fail a read or write; a Manager without
// an index still serves entries.
type Manager struct {
	store  *Store
	index  *Index
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending []EntryMeta
	touched map[string]int

	hits   atomic.Int64
	misses atomic.Int64
	writes atomic.Int64
}

var _ highlight.Cache = (*Manager)(nil)

// Open opens or creates a cache in dir on the OS filesystem
func Open(dir string, opts Options) (*Manager, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	store, err := NewStore(fs, dir, opts.Compress)
	if err != nil {
		return nil, fmt.Errorf("failed to create store: %w", err)
	}

	index, err := OpenIndex(filepath.Join(dir, IndexFile))
	if err != nil {
		logger.Warn("Cache index unavailable, continuing without it", "dir", dir, "error", err)
		index = nil
	}

	return NewManager(store, index, logger), nil
}

// NewManager composes a store and an optional index
func NewManager(store *Store, index *Index, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:   store,
		index:   index,
		logger:  logger,
		now:     time.Now,
		touched: make(map[string]int),
	}
}

// Get returns the cached HTML for key. Any read failure is a miss.
func (m *Manager) Get(key string) (string, bool) {
	data, err := m.store.Get(key)
	if err != nil {
		m.misses.Add(1)
		return "", false
	}
	m.hits.Add(1)

	m.mu.Lock()
	m.touched[key]++
	m.mu.Unlock()

	return string(data), true
}

// Put stores entry under key; the index is updated on the next Flush.
func (m *Manager) Put(key string, entry highlight.Entry) error {
	size, compressed, err := m.store.Put(key, []byte(entry.HTML))
	if err != nil {
		return err
	}
	m.writes.Add(1)

	m.mu.Lock()
	m.pending = append(m.pending, EntryMeta{
		Key:        key,
		Language:   entry.Language,
		Theme:      entry.Theme,
		Size:       size,
		Compressed: compressed,
	})
	m.mu.Unlock()
	return nil
}

// Flush writes buffered index updates
func (m *Manager) Flush() error {
	m.mu.Lock()
	pending, touched := m.pending, m.touched
	m.pending = nil
	m.touched = make(map[string]int)
	m.mu.Unlock()

	if m.index == nil {
		return nil
	}
	if err := m.index.Commit(pending, touched, m.now()); err != nil {
		m.logger.Warn("Failed to update cache index", "error", err)
		return err
	}
	return nil
}

// IncrementBuildCount flushes and bumps the persistent build counter
func (m *Manager) IncrementBuildCount() error {
	if err := m.Flush(); err != nil {
		return err
	}
	if m.index == nil {
		return nil
	}
	return m.index.IncrementBuildCount()
}

// Counters returns the hits and misses served by this manager so far.
func (m *Manager) Counters() (hits, misses int64) {
	return m.hits.Load(), m.misses.Load()
}

// Stats returns index and store statistics plus this process's counters
func (m *Manager) Stats() (*Stats, error) {
	if err := m.Flush(); err != nil {
		return nil, err
	}

	stats := &Stats{
		ByLanguage: make(map[string]int),
		Hits:       m.hits.Load(),
		Misses:     m.misses.Load(),
		Writes:     m.writes.Load(),
	}

	files, err := m.store.List()
	if err != nil {
		return nil, fmt.Errorf("failed to scan store: %w", err)
	}
	stats.StoreFiles = len(files)
	for _, f := range files {
		stats.StoreBytes += f.Size
	}

	if m.index == nil {
		return stats, nil
	}

	entries, err := m.index.All()
	if err != nil {
		return nil, err
	}
	stats.Entries = len(entries)
	for _, e := range entries {
		stats.ByLanguage[e.Language]++
		if e.Compressed {
			stats.Compressed++
		}
	}

	stats.BuildCount, stats.LastGC, stats.SchemaVersion, err = m.index.counters()
	return stats, err
}

// Clear removes every entry file and resets the index
func (m *Manager) Clear() error {
	m.mu.Lock()
	m.pending = nil
	m.touched = make(map[string]int)
	m.mu.Unlock()

	if err := m.store.Clear(); err != nil {
		return err
	}
	if m.index == nil {
		return nil
	}
	return m.index.Clear()
}

// Close flushes pending index updates and releases resources
func (m *Manager) Close() error {
	flushErr := m.Flush()
	_ = m.store.Close()
	if m.index != nil {
		if err := m.index.Close(); err != nil {
			return err
		}
	}
	return flushErr
}
