package watch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/run"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/utils"
)

// DebounceDuration is how long the watcher waits for a burst of events to
// settle before reporting the last one.
const DebounceDuration = 100 * time.Millisecond

// Event is a wrapper around fsnotify.Event
type Event struct {
	Name string
	Op   fsnotify.Op
}

// Watcher handles filesystem events and triggers builds
type Watcher struct {
	watcher  *fsnotify.Watcher
	Dirs     []string
	OnEvent  func(Event)
	Debounce time.Duration
	logger   *slog.Logger
}

// New creates a new watcher for the specified directories
func New(dirs []string, onEvent func(Event), logger *slog.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Watcher{
		watcher:  w,
		Dirs:     dirs,
		OnEvent:  onEvent,
		Debounce: DebounceDuration,
		logger:   logger,
	}, nil
}

// Start watches until ctx is cancelled or the underlying watcher closes.
func (w *Watcher) Start(ctx context.Context) {
	defer func() { _ = w.watcher.Close() }()

	// Add directories recursively
	for _, dir := range w.Dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				// Skip hidden directories like .git
				if base := filepath.Base(path); base != "." && strings.HasPrefix(base, ".") {
					return filepath.SkipDir
				}
				return w.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			w.logger.Error("Failed to watch directory", "dir", dir, "error", err)
		}
	}

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			// Ignore chmod and other meta events
			if event.Op&fsnotify.Chmod == fsnotify.Chmod {
				continue
			}

			// Handle new directories
			if event.Op&fsnotify.Create == fsnotify.Create {
				info, err := os.Stat(event.Name)
				if err == nil && info.IsDir() {
					_ = w.watcher.Add(event.Name)
				}
			}

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			ev := Event{Name: event.Name, Op: event.Op}
			timer = time.AfterFunc(w.Debounce, func() { w.OnEvent(ev) })
			mu.Unlock()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("Watcher error", "error", err)
		}
	}
}

// IsContentFile reports whether a change to path should trigger a rebuild.
func IsContentFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".mdx" || ext == ".md"
}

// Run builds once, then rebuilds whenever a content file changes until ctx
// is cancelled. Rebuilds never overlap.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	lock, err := utils.AcquireBuildLock(".")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	b := run.NewBuilder(cfg, logger)
	defer func() { _ = b.Close() }()

	var mu sync.Mutex
	rebuild := func(reason string) {
		mu.Lock()
		defer mu.Unlock()

		start := time.Now()
		fmt.Printf("🔨 Building (%s)...\n", reason)
		if err := b.Build(ctx); err != nil {
			// Keep watching: the next save usually fixes a broken file.
			fmt.Printf("❌ Build failed: %v\n", err)
			return
		}
		fmt.Printf("✅ Rebuilt in %v\n", time.Since(start).Round(time.Millisecond))
		b.Metrics().Print()
	}

	rebuild("initial")

	w, err := New([]string{cfg.ContentDir}, func(e Event) {
		if !IsContentFile(e.Name) {
			return
		}
		rebuild(filepath.Base(e.Name))
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}

	fmt.Printf("👀 Watching %s/ for changes (drafts: %v). Press Ctrl+C to stop.\n", cfg.ContentDir, cfg.IncludeDrafts)
	w.Start(ctx)
	return nil
}
