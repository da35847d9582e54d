package repository

import (
	"errors"
	"fmt"

	"cafe-pos/internal/model"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

// mapError converts PostgreSQL constraint errors into domain errors.
// Other errors are wrapped with msg unchanged.
func mapError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", msg, model.ErrAlreadyExists)
		case pgCheckViolation:
			return fmt.Errorf("%s: %w", msg, model.NewValidationError("Value out of range"))
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
