package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultLocation is recorded when a sale carries no location.
const DefaultLocation = "N/A"

// Transaction is the header record of one completed sale.
type Transaction struct {
	ID             int64           `json:"id"`
	Total          decimal.Decimal `json:"total"`
	PaymentMethod  string          `json:"payment_method"`
	DineType       string          `json:"dine_type"`
	Location       string          `json:"location"`
	IdempotencyKey *uuid.UUID      `json:"-"`
	CreatedAt      time.Time       `json:"created_at"`
}

// TransactionItem is one line of a sale. MenuItemID is nil when the
// cart entry did not reference a catalogue item.
type TransactionItem struct {
	ID            int64           `json:"id"`
	TransactionID int64           `json:"transaction_id"`
	MenuItemID    *int64          `json:"menu_item_id"`
	MenuName      string          `json:"menu_name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
}

// SaleRequest is the cart submitted at checkout.
type SaleRequest struct {
	Items    []SaleItemRequest `json:"items"`
	Total    *decimal.Decimal  `json:"total"`
	Method   string            `json:"method"`
	DineType string            `json:"dineType"`
	Location string            `json:"location,omitempty"`

	// IdempotencyKey is taken from the Idempotency-Key header, not the body.
	IdempotencyKey *uuid.UUID `json:"-"`
}

// SaleItemRequest is a single cart entry. Quantity defaults to 1.
type SaleItemRequest struct {
	ID       *int64          `json:"id,omitempty"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity,omitempty"`
}

// SaleResult is returned after a sale has been recorded.
type SaleResult struct {
	TransactionID int64 `json:"transactionId"`
	// Replayed is true when the idempotency key matched an earlier sale.
	Replayed bool `json:"-"`
}

// TransactionSummary is a transaction row with a human readable item list.
type TransactionSummary struct {
	Transaction
	ItemsSummary *string `json:"items_summary"`
}

// TransactionDetail is a transaction with its line items.
type TransactionDetail struct {
	Transaction
	Items []TransactionItem `json:"items"`
}

// TransactionFilter restricts a transaction listing to a date range (inclusive).
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}
