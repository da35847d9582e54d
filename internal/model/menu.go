package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultMinStock is the restock threshold applied when none is supplied.
const DefaultMinStock = 5

// MenuItem represents a sellable item on the cafe menu.
// Stock has no floor: concurrent overselling may drive it negative.
type MenuItem struct {
	ID          int64           `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Stock       int             `json:"stock" db:"stock"`
	MinStock    int             `json:"min_stock" db:"min_stock"`
	Category    string          `json:"category" db:"category"`
	Description string          `json:"description" db:"description"`
	Image       string          `json:"image" db:"image"`
	LastUpdated time.Time       `json:"last_updated" db:"last_updated"`
}

// MenuItemInput is the request payload for creating or replacing a menu item.
type MenuItemInput struct {
	Name        string           `json:"name"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	MinStock    *int             `json:"minStock,omitempty"`
	Category    string           `json:"category"`
	Description string           `json:"description,omitempty"`
	Image       string           `json:"image,omitempty"`
}

// LowStockItem is a menu item whose stock is at or below its restock threshold.
type LowStockItem struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	MinStock int    `json:"min_stock"`
	Category string `json:"category"`
}
