//go:build ignore

// Connects with the application's configuration and reports the database
// name and applied migration version.
//
//	go run scripts/check_db.go
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"cafe-pos/internal/config"
	"cafe-pos/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.Database, config.NewLogger(cfg.Logger))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	var dbName string
	if err := pool.QueryRow(ctx, "SELECT current_database()").Scan(&dbName); err != nil {
		fmt.Fprintf(os.Stderr, "QueryRow failed: %v\n", err)
		os.Exit(1)
	}

	var version int64
	err = pool.QueryRow(ctx, "SELECT COALESCE(MAX(version_id), 0) FROM goose_db_version WHERE is_applied").Scan(&version)
	if err != nil {
		fmt.Println("No migrations applied yet")
	} else {
		fmt.Printf("Schema version: %d\n", version)
	}

	fmt.Printf("Successfully connected to database: %s\n", dbName)
}
