package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/cache"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/highlight"
)

// handleCacheCommand processes cache-related subcommands
func handleCacheCommand(args []string) error {
	if len(args) < 1 {
		printCacheUsage()
		return errors.New("missing cache subcommand")
	}

	subcommand := args[0]
	subArgs := args[1:]

	switch subcommand {
	case "stats":
		return cacheStats()
	case "gc":
		fs := flag.NewFlagSet("gc", flag.ContinueOnError)
		dryRun := fs.Bool("dry-run", false, "Show what would be deleted without deleting")
		fs.BoolVar(dryRun, "n", false, "Alias for -dry-run")
		days := fs.Int("days", 30, "Delete entries unused for this many days")
		if err := fs.Parse(subArgs); err != nil {
			return err
		}
		return cacheGC(*dryRun, time.Duration(*days)*24*time.Hour)
	case "verify":
		return cacheVerify()
	case "clear":
		return cacheClear()
	default:
		printCacheUsage()
		return fmt.Errorf("unknown cache subcommand: %s", subcommand)
	}
}

func printCacheUsage() {
	fmt.Println("Usage: lxndr cache <subcommand> [arguments]")
	fmt.Println("\nSubcommands:")
	fmt.Println("  stats          Show cache statistics")
	fmt.Println("  gc             Run garbage collection")
	fmt.Println("  verify         Check cache integrity")
	fmt.Println("  clear          Delete all cache data")
	fmt.Println("\nFlags for gc:")
	fmt.Println("  -dry-run, -n   Show what would be deleted without deleting")
	fmt.Println("  -days N        Age limit in days (default 30)")
}

func openCache() (*cache.Manager, error) {
	cfg := config.Load(nil)
	cm, err := cache.Open(cfg.CacheDir, cache.Options{Compress: cfg.Highlight.Compress})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	return cm, nil
}

func cacheStats() error {
	cm, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	stats, err := cm.Stats()
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	fmt.Println("📊 Highlight Cache Statistics")
	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Format Version:  %s\n", highlight.CacheFormatVersion)
	fmt.Printf("Schema Version:  %d\n", stats.SchemaVersion)
	fmt.Printf("Indexed Entries: %d\n", stats.Entries)
	fmt.Printf("Stored Files:    %d (%d compressed)\n", stats.StoreFiles, stats.Compressed)
	fmt.Printf("Store Size:      %.2f MB\n", float64(stats.StoreBytes)/(1024*1024))
	fmt.Printf("Build Count:     %d\n", stats.BuildCount)

	if stats.LastGC > 0 {
		fmt.Printf("Last GC:         %s\n", time.Unix(stats.LastGC, 0).Format(time.RFC3339))
	} else {
		fmt.Printf("Last GC:         never\n")
	}

	if len(stats.ByLanguage) > 0 {
		fmt.Println("\n🗂️  Entries by Language")
		fmt.Println("────────────────────────────────────────")
		langs := make([]string, 0, len(stats.ByLanguage))
		for lang := range stats.ByLanguage {
			langs = append(langs, lang)
		}
		sort.Strings(langs)
		for _, lang := range langs {
			fmt.Printf("  %-14s %d\n", lang, stats.ByLanguage[lang])
		}
	}
	return nil
}

func cacheGC(dryRun bool, maxAge time.Duration) error {
	cm, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	cfg := cache.DefaultGCConfig()
	cfg.DryRun = dryRun
	cfg.MaxAge = maxAge

	if dryRun {
		fmt.Println("🗑️  Running GC (dry run)...")
	} else {
		fmt.Println("🗑️  Running garbage collection...")
	}

	result, err := cm.RunGC(cfg)
	if err != nil {
		return fmt.Errorf("GC failed: %w", err)
	}

	fmt.Println("════════════════════════════════════════")
	fmt.Printf("Scanned:    %d entries\n", result.ScannedEntries)
	fmt.Printf("Expired:    %d entries\n", result.ExpiredEntries)
	fmt.Printf("Orphaned:   %d files\n", result.OrphanedFiles)
	fmt.Printf("Freed:      %.2f MB\n", float64(result.DeletedBytes)/(1024*1024))
	fmt.Printf("Duration:   %v\n", result.Duration)

	if dryRun {
		fmt.Println("\n(No changes made - dry run mode)")
	} else {
		fmt.Println("\n✅ GC complete")
	}
	return nil
}

func cacheVerify() error {
	cm, err := openCache()
	if err != nil {
		return err
	}
	defer func() { _ = cm.Close() }()

	fmt.Println("🔍 Verifying cache integrity...")

	problems, err := cm.Verify()
	if err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}

	if len(problems) == 0 {
		fmt.Println("✅ Cache is healthy - no issues found")
		return nil
	}
	fmt.Printf("⚠️  Found %d issues:\n", len(problems))
	for i, p := range problems {
		fmt.Printf("  %d. %s\n", i+1, p)
	}
	return nil
}

func cacheClear() error {
	cm, err := openCache()
	if err != nil {
		return err
	}

	fmt.Println("🗑️  Clearing all cache data...")

	if err := cm.Clear(); err != nil {
		_ = cm.Close()
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	if err := cm.Close(); err != nil {
		return err
	}

	fmt.Println("✅ Cache cleared")
	return nil
}
