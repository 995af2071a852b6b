package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mr1hm/go-hazard-tools/internal/config"
	"github.com/mr1hm/go-hazard-tools/internal/importer"
	"github.com/mr1hm/go-hazard-tools/internal/logging"
	"github.com/mr1hm/go-hazard-tools/internal/repository"
)

func main() {
	file := flag.String("file", "", "NDJSON file of hazard reports (defaults to stdin)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	in := os.Stdin
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			logging.Fatalf("Failed to open input file: %v", err)
		}
		defer f.Close()
		in = f
	}

	im := importer.New(db, cfg.Import.Workers, cfg.Import.BufferSize)
	summary, err := im.Run(context.Background(), in)
	if err != nil {
		logging.Fatalf("Import failed: %v", err)
	}

	slog.Info("import complete",
		"submitted", summary.Submitted,
		"added", summary.Added,
		"skipped", summary.Skipped,
		"malformed", summary.Malformed,
		"failed", summary.Failed,
	)
}
