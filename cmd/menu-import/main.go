// Command menu-import loads menu items from a gzip-compressed CSV file into
// the menu table, replacing existing items with the same name.
//
// Usage:
//
//	menu-import -source data/menu.csv.gz
//	menu-import -source s3://cafe-catalogue/menu.csv.gz
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cafe-pos/internal/catalog"
	"cafe-pos/internal/config"
	"cafe-pos/internal/database"
	"cafe-pos/internal/repository"
)

func main() {
	source := flag.String("source", "", "catalogue location: local path or s3://bucket/key")
	flag.Parse()

	if *source == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*source); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(location string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, pool, logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var s3Source catalog.Source
	if catalog.IsS3Location(location) {
		s3Source, err = catalog.NewS3Source(ctx, cfg.S3.Region, logger)
		if err != nil {
			return err
		}
	}

	importer := catalog.NewImporter(
		catalog.NewRoutingSource(s3Source, catalog.NewFileSource(logger)),
		repository.NewMenuRepository(pool, logger),
		logger,
	)

	result, err := importer.Import(ctx, location)
	if err != nil {
		return err
	}

	fmt.Printf("imported %d of %d menu items from %s\n", result.Imported, result.Rows, location)
	return nil
}
