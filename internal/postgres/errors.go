package postgres

import (
	"database/sql"
	"errors"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/lib/pq"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// WrapError marks a driver error with the matching domain sentinel.
// entity names the record kind in the user-facing hint.
func WrapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(map[string]any{"constraint": pqErr.Constraint}).
				Mark(ierr.ErrAlreadyExists)
		case pqForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s references a record that does not exist", entity).
				WithReportableDetails(map[string]any{"constraint": pqErr.Constraint}).
				Mark(ierr.ErrValidation)
		}
	}

	return ierr.WithError(err).
		WithMessagef("%s query failed", entity).
		WithHintf("Failed to access %s", entity).
		Mark(ierr.ErrDatabase)
}
