package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gdamore/tcell/v2"
	apppkg "github.com/kk-code-lab/tagdir/internal/app"
	"github.com/kk-code-lab/tagdir/internal/backend"
	"github.com/kk-code-lab/tagdir/internal/config"
	"github.com/kk-code-lab/tagdir/internal/logging"
	"go.uber.org/zap"
)

var version = "dev"

func printHelp() {
	fmt.Print(`tagdir - Terminal file browser filtered by hierarchical tags

USAGE:
    tagdir [OPTIONS] [PATH]

OPTIONS:
    -h, --help            Show this help message and exit
    -v, --version         Print the version and exit
        --print-tags      Print the tag tree and exit

ENVIRONMENT:
    TAGDIR_STORE          memory, sqlite (default) or postgres
    TAGDIR_DB_PATH        sqlite database file
    TAGDIR_DATABASE_URL   postgres connection string
    TAGDIR_LOG_FILE       log file; logging is off without it
    TAGDIR_SHOW_HIDDEN    list hidden entries (true/false)
`)
}

func main() {
	// Set UTF-8 as fallback encoding for maximum compatibility
	tcell.SetEncodingFallback(tcell.EncodingFallbackUTF8)

	printTags := false
	startPath := ""
	for _, arg := range os.Args[1:] {
		switch {
		case arg == "-h" || arg == "--help":
			printHelp()
			os.Exit(0)
		case arg == "-v" || arg == "--version":
			fmt.Println("tagdir", version)
			os.Exit(0)
		case arg == "--print-tags":
			printTags = true
		case strings.HasPrefix(arg, "-"):
			fmt.Fprintf(os.Stderr, "unknown option %s\n\n", arg)
			printHelp()
			os.Exit(2)
		default:
			startPath = arg
		}
	}

	if err := run(printTags, startPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(printTags bool, startPath string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if startPath != "" {
		cfg.StartPath = startPath
	}
	if cfg.StartPath != "" {
		if abs, err := filepath.Abs(cfg.StartPath); err == nil {
			cfg.StartPath = abs
		}
	}

	if err := logging.Init(logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		OutputPath: cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	}); err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logging.Sync() }()
	logger := logging.L()
	logger.Info("starting", zap.String("version", version), zap.String("store", cfg.Store))

	ctx := context.Background()
	store, err := backend.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	local := backend.NewLocal(store, backend.Options{
		SearchHidden: cfg.SearchHidden,
		SearchLimit:  cfg.SearchLimit,
		Logger:       logger,
	})

	if printTags {
		return printTagTree(ctx, os.Stdout, os.Stderr, local)
	}

	app, err := apppkg.NewApplication(local, apppkg.Options{
		RequestTimeout: cfg.RequestTimeout,
		ShowHidden:     cfg.ShowHidden,
		StartPath:      cfg.StartPath,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("initializing application: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	logging.S().Infow("session ended", "location", app.Location())
	return nil
}
