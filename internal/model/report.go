package model

import "github.com/shopspring/decimal"

// Period selects the calendar bucket of an omset query.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// OmsetReport holds revenue for the current day, month and year.
type OmsetReport struct {
	Daily   decimal.Decimal `json:"daily"`
	Monthly decimal.Decimal `json:"monthly"`
	Yearly  decimal.Decimal `json:"yearly"`
}

// SalesChartPoint is the revenue of a single day.
type SalesChartPoint struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
}

// TopProduct is a menu name with the quantity sold.
type TopProduct struct {
	MenuName  string `json:"menu_name"`
	TotalSold int64  `json:"total_sold"`
}
