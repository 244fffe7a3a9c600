package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/stockroom/replenish-backend/internal/domain"
)

// sqlstateErrors maps constraint SQLSTATEs onto domain sentinels.
var sqlstateErrors = map[string]error{
	"23505": domain.ErrAlreadyExists, // unique_violation
	"23503": domain.ErrNotFound,      // foreign_key_violation
	"23514": domain.ErrValidation,    // check_violation
	"42501": domain.ErrForbidden,     // raised by the audit append-only trigger
}

// MapError wraps a pgx error with the entity it concerns, translating
// missing rows and constraint violations into domain errors. Context
// cancellation is left as is.
func MapError(err error, entity string, id uuid.UUID) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s %s: %w", entity, id, translate(err))
}

func translate(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := sqlstateErrors[pgErr.Code]; ok {
			return mapped
		}
	}
	return err
}
