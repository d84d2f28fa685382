package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	domerrors "github.com/jiggy-ai/jiggy-user-api/internal/domain/errors"
)

// uniqueViolation is the Postgres SQLSTATE for a unique-constraint breach.
const uniqueViolation = "23505"

// mapUnique converts a unique violation into the domain conflict sentinel
// so check-then-insert races still surface as conflicts. Other errors pass
// through untouched.
func mapUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return domerrors.ErrConflict
	}
	return err
}
