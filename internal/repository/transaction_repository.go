package repository

import (
	"context"
	"errors"
	"fmt"

	"cafe-pos/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// transactionRepository implements the TransactionRepository interface using PostgreSQL.
type transactionRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewTransactionRepository creates a new PostgreSQL-backed sale repository.
func NewTransactionRepository(db DB, logger zerolog.Logger) TransactionRepository {
	return &transactionRepository{
		db:     db,
		logger: logger.With().Str("repository", "transaction").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *transactionRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

func (r *transactionRepository) CreateTransaction(ctx context.Context, tx pgx.Tx, t *model.Transaction) (int64, error) {
	query := `
		INSERT INTO transactions (total, payment_method, dine_type, location, idempotency_key)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := tx.QueryRow(ctx, query, t.Total, t.PaymentMethod, t.DineType, t.Location, t.IdempotencyKey).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		err = mapError(err, "failed to create transaction")
		if errors.Is(err, model.ErrAlreadyExists) {
			r.logger.Warn().Msg("idempotency key already recorded")
		} else {
			r.logger.Error().Err(err).Msg("failed to create transaction")
		}
		return 0, err
	}

	r.logger.Debug().Int64("transaction_id", t.ID).Msg("transaction created")

	return t.ID, nil
}

func (r *transactionRepository) CreateItem(ctx context.Context, tx pgx.Tx, item *model.TransactionItem) error {
	query := `
		INSERT INTO transaction_items (transaction_id, menu_item_id, menu_name, price, quantity)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, item.TransactionID, item.MenuItemID, item.MenuName, item.Price, item.Quantity)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("transaction_id", item.TransactionID).
			Str("menu_name", item.MenuName).
			Msg("failed to create transaction item")
		return mapError(err, "failed to create transaction item")
	}

	return nil
}

func (r *transactionRepository) GetIDByIdempotencyKey(ctx context.Context, key uuid.UUID) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `SELECT id FROM transactions WHERE idempotency_key = $1`, key).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		r.logger.Error().Err(err).Str("idempotency_key", key.String()).Msg("failed to look up idempotency key")
		return 0, fmt.Errorf("failed to look up idempotency key: %w", err)
	}
	return id, nil
}

func (r *transactionRepository) List(ctx context.Context, filter model.TransactionFilter) ([]model.TransactionSummary, error) {
	builder := psql.Select(
		"t.id", "t.total", "t.payment_method", "t.dine_type", "t.location", "t.created_at",
		"string_agg(ti.menu_name || ' (' || ti.quantity || 'x)', ', ' ORDER BY ti.id) AS items_summary",
	).
		From("transactions t").
		LeftJoin("transaction_items ti ON ti.transaction_id = t.id").
		GroupBy("t.id").
		OrderBy("t.created_at DESC", "t.id DESC")

	if filter.StartDate != nil {
		builder = builder.Where(sq.GtOrEq{"t.created_at::date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		builder = builder.Where(sq.LtOrEq{"t.created_at::date": *filter.EndDate})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query transactions")
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	result := make([]model.TransactionSummary, 0)
	for rows.Next() {
		var s model.TransactionSummary
		err := rows.Scan(
			&s.ID,
			&s.Total,
			&s.PaymentMethod,
			&s.DineType,
			&s.Location,
			&s.CreatedAt,
			&s.ItemsSummary,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan transaction row")
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction rows")
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return result, nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id int64) (*model.TransactionDetail, error) {
	headerQuery := `
		SELECT id, total, payment_method, dine_type, location, created_at
		FROM transactions
		WHERE id = $1
	`

	var d model.TransactionDetail
	err := r.db.QueryRow(ctx, headerQuery, id).Scan(
		&d.ID,
		&d.Total,
		&d.PaymentMethod,
		&d.DineType,
		&d.Location,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("transaction_id", id).Msg("transaction not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("transaction_id", id).Msg("failed to query transaction")
		return nil, fmt.Errorf("failed to query transaction: %w", err)
	}

	itemsQuery := `
		SELECT id, transaction_id, menu_item_id, menu_name, price, quantity
		FROM transaction_items
		WHERE transaction_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("transaction_id", id).Msg("failed to query transaction items")
		return nil, fmt.Errorf("failed to query transaction items: %w", err)
	}
	defer rows.Close()

	d.Items = make([]model.TransactionItem, 0)
	for rows.Next() {
		var item model.TransactionItem
		err := rows.Scan(
			&item.ID,
			&item.TransactionID,
			&item.MenuItemID,
			&item.MenuName,
			&item.Price,
			&item.Quantity,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan transaction item row")
			return nil, fmt.Errorf("failed to scan transaction item: %w", err)
		}
		d.Items = append(d.Items, item)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating transaction item rows")
		return nil, fmt.Errorf("error iterating transaction items: %w", err)
	}

	return &d, nil
}
