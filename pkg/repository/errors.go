package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// Errs names the domain errors that driver errors are translated into.
// A nil field leaves the matching driver error unchanged.
type Errs struct {
	NotFound  error
	Duplicate error
	Reference error
	Invalid   error
}

// MapError translates database errors to domain errors:
// sql.ErrNoRows to NotFound, unique violations to Duplicate, foreign key
// violations to Reference, and check violations to Invalid.
func MapError(err error, errs Errs) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && errs.NotFound != nil {
		return errs.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation && errs.Duplicate != nil:
		return errs.Duplicate
	case pgErr.Code == pgForeignKeyViolation && errs.Reference != nil:
		return errs.Reference
	case pgErr.Code == pgCheckViolation && errs.Invalid != nil:
		return errs.Invalid
	}

	return err
}
