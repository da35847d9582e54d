package integration

import (
	"context"
	"testing"
	"time"

	"cafe-pos/internal/config"
	"cafe-pos/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a migrated test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
}

// SetupTestDB starts a PostgreSQL container, connects through the
// application's pool constructor and applies the migrations.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := postgresContainer.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	port, err := postgresContainer.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		Host:            host,
		Port:            port.Int(),
		User:            "testuser",
		Password:        "testpass",
		Database:        "testdb",
		MaxConnections:  20,
		MinConnections:  2,
		MaxConnLifetime: 5 * time.Minute,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
	}
}

// SeedMenu inserts the Latte and Croissant items used across the suites and
// returns their ids keyed by name.
func SeedMenu(t *testing.T, pool *pgxpool.Pool) map[string]int64 {
	t.Helper()

	ctx := context.Background()

	items := []struct {
		name     string
		price    int64
		stock    int
		category string
	}{
		{"Latte", 25000, 10, "coffee"},
		{"Croissant", 15000, 5, "pastry"},
	}

	ids := make(map[string]int64, len(items))
	for _, it := range items {
		var id int64
		err := pool.QueryRow(ctx,
			"INSERT INTO menu_items (name, price, stock, category) VALUES ($1, $2, $3, $4) RETURNING id",
			it.name, it.price, it.stock, it.category,
		).Scan(&id)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", it.name, err)
		}
		ids[it.name] = id
	}
	return ids
}

// CleanupDB removes all rows and resets identities.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"TRUNCATE transaction_items, transactions, menu_items, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to clean tables: %v", err)
	}
}

// StockOf returns the current stock of a menu item by name.
func StockOf(t *testing.T, pool *pgxpool.Pool, name string) int {
	t.Helper()

	var stock int
	if err := pool.QueryRow(context.Background(),
		"SELECT stock FROM menu_items WHERE name = $1", name).Scan(&stock); err != nil {
		t.Fatalf("failed to read stock of %s: %v", name, err)
	}
	return stock
}

// CountRows returns the number of rows in a table.
func CountRows(t *testing.T, pool *pgxpool.Pool, table string) int {
	t.Helper()

	var n int
	if err := pool.QueryRow(context.Background(), "SELECT COUNT(*) FROM "+table).Scan(&n); err != nil {
		t.Fatalf("failed to count %s: %v", table, err)
	}
	return n
}
