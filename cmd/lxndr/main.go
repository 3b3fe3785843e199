package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/config"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/builder/run"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/internal/clean"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/internal/new"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/internal/version"
	"github.com/Serg-Ale/LXNDR-PORTIFOLIO/internal/watch"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := dispatch(ctx, os.Args[1], os.Args[2:])
	stop()

	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
}

func dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "build":
		cfg := config.Load(args)
		return run.Run(ctx, cfg, newLogger(cfg))
	case "watch":
		cfg := config.Load(args)
		cfg.SetDevMode(true)
		cfg.IncludeDrafts = true
		return watch.Run(ctx, cfg, newLogger(cfg))
	case "new":
		return new.Run(args)
	case "clean":
		return clean.Run(args)
	case "cache":
		return handleCacheCommand(args)
	case "version":
		version.Run()
		return nil
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func printUsage() {
	fmt.Println("Usage: lxndr <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  build          Build post indexes, feeds and sitemap")
	fmt.Println("  watch          Rebuild on content changes (development, drafts on)")
	fmt.Println("  new <title>    Create a new post")
	fmt.Println("  clean          Remove the output directory")
	fmt.Println("  cache <cmd>    Inspect or maintain the highlight cache")
	fmt.Println("  version        Show version information")
	fmt.Println("  help           Show this help message")
	fmt.Println("\nFlags for build and watch:")
	fmt.Println("  -dev           Development mode")
	fmt.Println("  -drafts        Include drafts (development mode only)")
	fmt.Println("  -content DIR   Content directory (default content)")
	fmt.Println("  -out DIR       Output directory (default public)")
	fmt.Println("  -cache DIR     Highlight cache directory")
	fmt.Println("  -baseurl URL   Site base URL")
	fmt.Println("  -workers N     Highlight workers")
	fmt.Println("  -v             Verbose logging")
	fmt.Println("\nFlags for new:")
	fmt.Println("  -locale LOC    en or pt-BR (default en)")
	fmt.Println("  -draft         Create the post under drafts")
	fmt.Println("\nFlags for clean:")
	fmt.Println("  -cache         Also remove the highlight cache")
}
