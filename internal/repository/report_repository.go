package repository

import (
	"context"
	"fmt"

	"cafe-pos/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// periodFilters restricts transactions to the bucket containing the current date.
var periodFilters = map[model.Period]string{
	model.PeriodDay:   "created_at::date = CURRENT_DATE",
	model.PeriodMonth: "date_trunc('month', created_at) = date_trunc('month', CURRENT_DATE)",
	model.PeriodYear:  "date_trunc('year', created_at) = date_trunc('year', CURRENT_DATE)",
}

// reportRepository implements the ReportRepository interface using PostgreSQL.
type reportRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewReportRepository creates a new PostgreSQL-backed report repository.
func NewReportRepository(db DB, logger zerolog.Logger) ReportRepository {
	return &reportRepository{
		db:     db,
		logger: logger.With().Str("repository", "report").Logger(),
	}
}

func (r *reportRepository) Omset(ctx context.Context, period model.Period) (decimal.Decimal, error) {
	where, ok := periodFilters[period]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown period %q", period)
	}

	query := `SELECT COALESCE(SUM(total), 0) FROM transactions WHERE ` + where

	var total decimal.Decimal
	if err := r.db.QueryRow(ctx, query).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("period", string(period)).Msg("failed to query omset")
		return decimal.Zero, fmt.Errorf("failed to query %s omset: %w", period, err)
	}

	return total, nil
}

func (r *reportRepository) SalesChart(ctx context.Context, days int) ([]model.SalesChartPoint, error) {
	query := `
		SELECT to_char(created_at::date, 'YYYY-MM-DD') AS date, SUM(total) AS total
		FROM transactions
		WHERE created_at >= CURRENT_DATE - make_interval(days => $1)
		GROUP BY created_at::date
		ORDER BY created_at::date
	`

	rows, err := r.db.Query(ctx, query, days)
	if err != nil {
		r.logger.Error().Err(err).Int("days", days).Msg("failed to query sales chart")
		return nil, fmt.Errorf("failed to query sales chart: %w", err)
	}
	defer rows.Close()

	points := make([]model.SalesChartPoint, 0, days)
	for rows.Next() {
		var p model.SalesChartPoint
		if err := rows.Scan(&p.Date, &p.Total); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan sales chart row")
			return nil, fmt.Errorf("failed to scan sales chart point: %w", err)
		}
		points = append(points, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales chart: %w", err)
	}

	return points, nil
}

func (r *reportRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	query := `
		SELECT ti.menu_name, SUM(ti.quantity) AS total_sold
		FROM transaction_items ti
		JOIN transactions t ON t.id = ti.transaction_id
		WHERE date_trunc('month', t.created_at) = date_trunc('month', CURRENT_DATE)
		GROUP BY ti.menu_name
		ORDER BY total_sold DESC, ti.menu_name
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query top products")
		return nil, fmt.Errorf("failed to query top products: %w", err)
	}
	defer rows.Close()

	products := make([]model.TopProduct, 0, limit)
	for rows.Next() {
		var p model.TopProduct
		if err := rows.Scan(&p.MenuName, &p.TotalSold); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan top product row")
			return nil, fmt.Errorf("failed to scan top product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating top products: %w", err)
	}

	return products, nil
}
