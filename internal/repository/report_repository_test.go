package repository

import (
	"context"
	"testing"

	"cafe-pos/internal/model"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportRepository_Omset_UnknownPeriod(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewReportRepository(mock, zerolog.Nop())
	_, err = repo.Omset(context.Background(), model.Period("week"))

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportRepository_Postgres(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	repo := NewReportRepository(pool, zerolog.Nop())

	t.Run("Empty omset is zero", func(t *testing.T) {
		for _, p := range []model.Period{model.PeriodDay, model.PeriodMonth, model.PeriodYear} {
			total, err := repo.Omset(ctx, p)
			require.NoError(t, err)
			assert.True(t, total.IsZero(), "period %s", p)
		}
	})

	sales := NewTransactionRepository(pool, zerolog.Nop())
	recordTestSale(t, sales, 40000, nil,
		model.TransactionItem{MenuName: "Latte", Price: decimal.NewFromInt(25000), Quantity: 1},
		model.TransactionItem{MenuName: "Croissant", Price: decimal.NewFromInt(15000), Quantity: 1},
	)
	recordTestSale(t, sales, 50000, nil,
		model.TransactionItem{MenuName: "Latte", Price: decimal.NewFromInt(25000), Quantity: 2},
	)

	// A sale from last year counts towards none of the current buckets
	_, err := pool.Exec(ctx, `
		INSERT INTO transactions (total, payment_method, dine_type, created_at)
		VALUES (99999, 'cash', 'take-away', NOW() - INTERVAL '400 days')
	`)
	require.NoError(t, err)

	t.Run("Omset", func(t *testing.T) {
		daily, err := repo.Omset(ctx, model.PeriodDay)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(90000).Equal(daily), "daily = %s", daily)

		yearly, err := repo.Omset(ctx, model.PeriodYear)
		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(90000).Equal(yearly), "yearly = %s", yearly)
	})

	t.Run("Sales chart", func(t *testing.T) {
		points, err := repo.SalesChart(ctx, 7)
		require.NoError(t, err)
		require.Len(t, points, 1)
		assert.True(t, decimal.NewFromInt(90000).Equal(points[0].Total))

		var today string
		require.NoError(t, pool.QueryRow(ctx, `SELECT to_char(CURRENT_DATE, 'YYYY-MM-DD')`).Scan(&today))
		assert.Equal(t, today, points[0].Date)
	})

	t.Run("Top products", func(t *testing.T) {
		top, err := repo.TopProducts(ctx, 5)
		require.NoError(t, err)
		require.Len(t, top, 2)
		assert.Equal(t, model.TopProduct{MenuName: "Latte", TotalSold: 3}, top[0])
		assert.Equal(t, model.TopProduct{MenuName: "Croissant", TotalSold: 1}, top[1])
	})

}
