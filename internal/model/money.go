package model

import "github.com/shopspring/decimal"

func init() {
	// Amounts are rendered as JSON numbers, e.g. {"daily": 0}.
	decimal.MarshalJSONWithoutQuotes = true
}
