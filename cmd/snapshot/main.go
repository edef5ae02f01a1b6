package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pricebook/backend/internal/infrastructure/config"
	"github.com/pricebook/backend/internal/infrastructure/logger"
	"github.com/pricebook/backend/internal/infrastructure/storage"
	"go.uber.org/zap"
)

func main() {
	// Parse flags
	var (
		logLevel string
		format   string
		outPath  string
		force    bool
		confirm  bool
	)

	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.StringVar(&format, "format", "json", "Dump format: json, csv or xlsx")
	flag.StringVar(&outPath, "out", "", "Write the dump to this file instead of stdout")
	flag.BoolVar(&force, "force", false, "Overwrite an existing snapshot when seeding")
	flag.BoolVar(&confirm, "confirm", false, "Confirm a destructive reset")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	// Logs go to stderr so dumps on stdout stay clean.
	log, err := logger.New(&logger.Config{
		Level:      logLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: "2006-01-02 15:04:05",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open snapshot store", zap.Error(err))
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Error closing snapshot store", zap.Error(err))
		}
	}()

	log.Info("Snapshot CLI started",
		zap.String("command", command),
		zap.String("driver", cfg.Storage.Driver),
		zap.String("key", cfg.Storage.Key),
	)

	tool := &snapshotTool{store: store, key: cfg.Storage.Key, now: time.Now}

	switch command {
	case "dump":
		var w io.Writer = os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				log.Fatal("Failed to create output file", zap.Error(err))
			}
			defer f.Close()
			w = f
		}
		if err := tool.dump(ctx, w, format); err != nil {
			log.Fatal("Dump failed", zap.Error(err))
		}

	case "stats":
		if err := tool.stats(ctx, os.Stdout); err != nil {
			log.Fatal("Stats failed", zap.Error(err))
		}

	case "seed":
		n, err := tool.seed(ctx, force)
		if err != nil {
			log.Fatal("Seed failed", zap.Error(err))
		}
		log.Info("Starter catalog written", zap.Int("products", n))

	case "reset":
		if err := tool.reset(ctx, confirm); err != nil {
			log.Fatal("Reset failed", zap.Error(err))
		}
		log.Warn("Snapshot deleted, the server will reseed on next start")

	default:
		log.Error("Unknown command", zap.String("command", command))
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`Pricebook Snapshot Tool

Usage:
  snapshot [flags] <command>

Commands:
  dump                  Print the stored catalog
  stats                 Show item count, inventory value and average margin
  seed                  Write the starter catalog (refuses to overwrite without -force)
  reset                 Delete the stored catalog (requires -confirm)

Flags:
  -format string        Dump format: json, csv, xlsx (default: json)
  -out string           Dump to a file instead of stdout
  -force                Overwrite an existing snapshot when seeding
  -confirm              Confirm reset
  -log-level string     Log level: debug, info, warn, error (default: info)

The store is selected by the same configuration as the server
(PRICEBOOK_STORAGE_DRIVER, PRICEBOOK_STORAGE_KEY, PRICEBOOK_STORAGE_BOLT_PATH, ...).

Examples:
  # Export the catalog as a spreadsheet
  snapshot -format xlsx -out pricebook.xlsx dump

  # Start over from the starter catalog
  snapshot -confirm reset && snapshot seed`)
}
