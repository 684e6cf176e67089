package postgres

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/quotewell/quotewell/internal/domain"
)

// PostgreSQL error codes.
const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
	undefinedTableCode      = "42P01"
)

// isUniqueViolation checks if the given error is a unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// isForeignKeyViolation checks if the given error is a foreign key
// violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolationCode
}

// isUndefinedTable checks whether the error means the relation does not
// exist yet, e.g. migrations have not run.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == undefinedTableCode
}

// mapQueryError converts a lookup error into the domain taxonomy.
// sql.ErrNoRows becomes a not-found error for the named entity; anything
// else means the store itself failed and surfaces as unavailable so
// callers can treat it as retryable.
func mapQueryError(err error, entity, id string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewNotFoundError(entity, id)
	}

	return mapStoreError(err)
}

// mapStoreError converts a non-lookup store failure into the domain
// taxonomy. Callers handle constraint violations before reaching here;
// what remains is a dependency failure, including context timeouts
// converted from hung backends.
func mapStoreError(err error) error {
	if err == nil {
		return nil
	}

	return domain.NewUnavailableError("postgres", err.Error())
}
