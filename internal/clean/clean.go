package clean

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
)

// Run removes the output directory and, with -cache, the highlight cache.
func Run(args []string) error {
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	withCache := fs.Bool("cache", false, "Also remove the highlight cache")
	if err := fs.Parse(args); err != nil {
		return err
	}

	start := time.Now()
	cfg := config.Load(fs.Args())

	dirs := []string{cfg.OutputDir}
	if *withCache {
		dirs = append(dirs, cfg.CacheDir)
	}

	wg, err := Dirs(dirs...)
	if err != nil {
		return err
	}
	fmt.Printf("🧹 Clean initiated in %v (backgrounding deletion).\n", time.Since(start))
	wg.Wait()
	return nil
}

// Dirs moves every existing directory aside and deletes it in the background.
// The returned WaitGroup completes when all deletions have finished. Missing
// directories are skipped.
func Dirs(dirs ...string) (*sync.WaitGroup, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	var wg sync.WaitGroup
	for _, dir := range dirs {
		absPath := dir
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(cwd, dir)
		}
		if err := cleanDirAsync(absPath, &wg); err != nil {
			return &wg, err
		}
	}
	return &wg, nil
}

func cleanDirAsync(absPath string, wg *sync.WaitGroup) error {
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	}

	dir := filepath.Dir(absPath)
	base := filepath.Base(absPath)
	tempName := fmt.Sprintf("%s_deleting_%d", base, time.Now().UnixNano())
	tempPath := filepath.Join(dir, tempName)

	fmt.Printf("🧹 Moving '%s' to trash...\n", absPath)
	if err := os.Rename(absPath, tempPath); err != nil {
		fmt.Printf("⚠️ Rename failed (%v), deleting synchronously...\n", err)
		if err := os.RemoveAll(absPath); err != nil {
			return fmt.Errorf("failed to remove '%s': %w", absPath, err)
		}
		return nil
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = os.RemoveAll(tempPath)
	}()
	return nil
}
