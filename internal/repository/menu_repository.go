package repository

import (
	"context"
	"errors"
	"fmt"

	"cafe-pos/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var menuColumns = []string{
	"id", "name", "price", "stock", "min_stock",
	"category", "description", "image", "last_updated",
}

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	db     DB
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(db DB, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		db:     db,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

func scanMenuItem(row pgx.Row, m *model.MenuItem) error {
	return row.Scan(
		&m.ID,
		&m.Name,
		&m.Price,
		&m.Stock,
		&m.MinStock,
		&m.Category,
		&m.Description,
		&m.Image,
		&m.LastUpdated,
	)
}

func (r *menuRepository) List(ctx context.Context, category string) ([]model.MenuItem, error) {
	builder := psql.Select(menuColumns...).From("menu_items").OrderBy("name")
	if category != "" {
		builder = builder.Where(sq.Eq{"category": category})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build menu query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("category", category).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	items := make([]model.MenuItem, 0)
	for rows.Next() {
		var m model.MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

func (r *menuRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	query, args, err := psql.Select(menuColumns...).
		From("menu_items").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build menu query: %w", err)
	}

	var m model.MenuItem
	if err := scanMenuItem(r.db.QueryRow(ctx, query, args...), &m); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("menu_item_id", id).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &m, nil
}

func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) (int64, error) {
	query := `
		INSERT INTO menu_items (name, price, stock, min_stock, category, description, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, last_updated
	`

	err := r.db.QueryRow(ctx, query,
		item.Name, item.Price, item.Stock, item.MinStock,
		item.Category, item.Description, item.Image,
	).Scan(&item.ID, &item.LastUpdated)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to create menu item")
		return 0, mapError(err, "failed to create menu item")
	}

	r.logger.Debug().Int64("menu_item_id", item.ID).Str("name", item.Name).Msg("menu item created")

	return item.ID, nil
}

func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query, args, err := psql.Update("menu_items").
		Set("name", item.Name).
		Set("price", item.Price).
		Set("stock", item.Stock).
		Set("min_stock", item.MinStock).
		Set("category", item.Category).
		Set("description", item.Description).
		Set("image", item.Image).
		Set("last_updated", sq.Expr("NOW()")).
		Where(sq.Eq{"id": item.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build menu update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_item_id", item.ID).Msg("failed to update menu item")
		return mapError(err, "failed to update menu item")
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", item.ID, model.ErrNotFound)
	}

	r.logger.Debug().Int64("menu_item_id", item.ID).Msg("menu item updated")

	return nil
}

func (r *menuRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("menu_item_id", id).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("menu item %d: %w", id, model.ErrNotFound)
	}

	r.logger.Debug().Int64("menu_item_id", id).Msg("menu item deleted")

	return nil
}

func (r *menuRepository) Upsert(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (name, price, stock, min_stock, category, description, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (name) DO UPDATE SET
			price = EXCLUDED.price,
			stock = EXCLUDED.stock,
			min_stock = EXCLUDED.min_stock,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			image = EXCLUDED.image,
			last_updated = NOW()
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		item.Name, item.Price, item.Stock, item.MinStock,
		item.Category, item.Description, item.Image,
	).Scan(&item.ID)
	if err != nil {
		r.logger.Error().Err(err).Str("name", item.Name).Msg("failed to upsert menu item")
		return mapError(err, "failed to upsert menu item")
	}

	return nil
}

func (r *menuRepository) DecrementStock(ctx context.Context, tx pgx.Tx, name string, quantity int) error {
	query := `UPDATE menu_items SET stock = stock - $1 WHERE name = $2`

	tag, err := tx.Exec(ctx, query, quantity, name)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("name", name).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		r.logger.Debug().Str("name", name).Msg("sold item is not on the menu, stock unchanged")
	}

	return nil
}

func (r *menuRepository) ListLowStock(ctx context.Context) ([]model.LowStockItem, error) {
	query := `
		SELECT id, name, stock, min_stock, category
		FROM menu_items
		WHERE stock <= min_stock
		ORDER BY stock, name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query low stock items")
		return nil, fmt.Errorf("failed to query low stock items: %w", err)
	}
	defer rows.Close()

	items := make([]model.LowStockItem, 0)
	for rows.Next() {
		var it model.LowStockItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Stock, &it.MinStock, &it.Category); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan low stock row")
			return nil, fmt.Errorf("failed to scan low stock item: %w", err)
		}
		items = append(items, it)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low stock items: %w", err)
	}

	return items, nil
}
