package repository

import (
	"context"

	"cafe-pos/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// DB is the subset of *pgxpool.Pool used by the repositories.
type DB interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user and returns its generated ID.
	// Returns model.ErrAlreadyExists if the username is taken.
	Create(ctx context.Context, user *model.User) (int64, error)

	// GetByUsername retrieves a user by username. Returns nil if not found.
	GetByUsername(ctx context.Context, username string) (*model.User, error)
}

// MenuRepository defines the interface for menu item data access operations.
type MenuRepository interface {
	// List retrieves menu items ordered by name, optionally restricted to a category.
	List(ctx context.Context, category string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)

	// Create inserts a menu item and returns its generated ID.
	Create(ctx context.Context, item *model.MenuItem) (int64, error)

	// Update replaces every field of a menu item.
	// Returns model.ErrNotFound if no row matched.
	Update(ctx context.Context, item *model.MenuItem) error

	// Delete removes a menu item. Returns model.ErrNotFound if no row matched.
	Delete(ctx context.Context, id int64) error

	// Upsert inserts a menu item or replaces the one with the same name.
	Upsert(ctx context.Context, item *model.MenuItem) error

	// DecrementStock lowers the stock of the item with the given name
	// within the provided transaction. Stock is allowed to go negative and
	// an unknown name is not an error.
	DecrementStock(ctx context.Context, tx pgx.Tx, name string, quantity int) error

	// ListLowStock retrieves items whose stock is at or below min_stock.
	ListLowStock(ctx context.Context) ([]model.LowStockItem, error)
}

// TransactionRepository defines the interface for sale data access operations.
type TransactionRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateTransaction inserts a sale header within the provided transaction
	// and returns its generated ID. Returns model.ErrAlreadyExists when the
	// idempotency key was already used.
	CreateTransaction(ctx context.Context, tx pgx.Tx, t *model.Transaction) (int64, error)

	// CreateItem inserts one line item within the provided transaction.
	CreateItem(ctx context.Context, tx pgx.Tx, item *model.TransactionItem) error

	// GetIDByIdempotencyKey returns the ID of the sale recorded with key,
	// or 0 if there is none.
	GetIDByIdempotencyKey(ctx context.Context, key uuid.UUID) (int64, error)

	// List retrieves sales newest first with a summary of their items.
	List(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionSummary, error)

	// GetByID retrieves a sale with its line items. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*model.TransactionDetail, error)
}

// ReportRepository defines the read-only aggregation queries over sales.
type ReportRepository interface {
	// Omset returns the revenue of the current day, month or year. Zero when empty.
	Omset(ctx context.Context, period model.Period) (decimal.Decimal, error)

	// SalesChart returns the revenue per day for the last days days, oldest first.
	SalesChart(ctx context.Context, days int) ([]model.SalesChartPoint, error)

	// TopProducts returns the best selling menu names of the current month.
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
}
