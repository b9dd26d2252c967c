package postgres

import (
	"database/sql"

	ierr "github.com/inventorypos/salesdesk/internal/errors"
	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

// wrapQueryError maps a driver error onto the error categories the service
// layer understands. sql.ErrNoRows becomes ErrNotFound with the given hint.
func wrapQueryError(err error, op string, notFoundHint string, details map[string]any) error {
	if err == sql.ErrNoRows {
		b := ierr.WithError(err).
			WithMessage(op + ": not found").
			WithHint(notFoundHint)
		if len(details) > 0 {
			b = b.WithReportableDetails(details)
		}
		return b.Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if ierr.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
		return ierr.WithError(err).
			WithMessage(op + ": duplicate key").
			WithHint("A record with the same key already exists").
			WithReportableDetails(map[string]any{
				"constraint": pqErr.Constraint,
			}).
			Mark(ierr.ErrDatabase)
	}

	return ierr.WithError(err).
		WithMessage(op).
		WithHint("Database operation failed").
		Mark(ierr.ErrDatabase)
}
