package run

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/utils"
)

// Run executes one full build. It holds the build lock for the working
// directory for the whole build.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	lock, err := utils.AcquireBuildLock(".")
	if err != nil {
		return err
	}
	defer func() { _ = lock.Release() }()

	fmt.Printf("🔨 Building site... (mode: %s) | Parallel Workers: %d\n", cfg.Mode, cfg.Workers)
	start := time.Now()

	b := NewBuilder(cfg, logger)
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("Failed to close highlight cache", "error", err)
		}
	}()

	if err := b.Build(ctx); err != nil {
		return err
	}

	fmt.Printf("✅ Build complete in %v → %s/\n", elapsed(start), cfg.OutputDir)
	b.Metrics().Print()
	return nil
}

func elapsed(start time.Time) time.Duration {
	return time.Since(start).Round(time.Millisecond)
}
