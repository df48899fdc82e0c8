package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes we map to store sentinel errors.
const (
	uniqueViolationCode     = "23505" // unique constraint violation
	foreignKeyViolationCode = "23503" // foreign key constraint violation
)

// isUniqueViolation checks if the given error is a PostgreSQL unique
// constraint violation, such as a duplicate email address.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a PostgreSQL foreign
// key violation, such as a task referencing a missing assignee.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}
