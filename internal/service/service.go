package service

import (
	"context"

	"cafe-pos/internal/auth"
	"cafe-pos/internal/model"
)

const (
	// SalesChartDays is the length of the revenue trend window.
	SalesChartDays = 7
	// TopProductsLimit is the number of best sellers reported.
	TopProductsLimit = 5
)

// AuthService defines operations for staff accounts and bearer tokens.
type AuthService interface {
	// Register creates a user and returns its ID. Role defaults to admin.
	Register(ctx context.Context, req *model.RegisterRequest) (int64, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// Authenticate validates a bearer token and returns its claims.
	Authenticate(token string) (*auth.Claims, error)
}

// MenuService defines operations for menu management.
type MenuService interface {
	// List retrieves menu items, optionally restricted to a category.
	List(ctx context.Context, category string) ([]model.MenuItem, error)

	// GetByID retrieves a single menu item. Returns nil if not found.
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)

	// Create validates and stores a new menu item, returning its ID.
	Create(ctx context.Context, input *model.MenuItemInput) (int64, error)

	// Update replaces every field of an existing menu item.
	Update(ctx context.Context, id int64, input *model.MenuItemInput) error

	// Delete removes a menu item.
	Delete(ctx context.Context, id int64) error
}

// SaleService defines operations for recording and reading sales.
type SaleService interface {
	// RecordSale atomically stores a sale header, its line items and the
	// matching stock decrements. Any failure yields model.ErrSaleFailed and
	// leaves no trace in the store.
	RecordSale(ctx context.Context, req *model.SaleRequest) (*model.SaleResult, error)

	// GetTransactions lists sales newest first, optionally within a date range.
	GetTransactions(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionSummary, error)

	// GetTransaction retrieves one sale with its items. Returns nil if not found.
	GetTransaction(ctx context.Context, id int64) (*model.TransactionDetail, error)
}

// ReportService defines the sales reports.
type ReportService interface {
	// Omset returns revenue for the current day, month and year.
	Omset(ctx context.Context) (*model.OmsetReport, error)

	// SalesChart returns daily revenue for the last SalesChartDays days.
	SalesChart(ctx context.Context) ([]model.SalesChartPoint, error)

	// TopProducts returns this month's TopProductsLimit best sellers.
	TopProducts(ctx context.Context) ([]model.TopProduct, error)

	// LowStock returns menu items at or below their restock threshold.
	LowStock(ctx context.Context) ([]model.LowStockItem, error)
}
