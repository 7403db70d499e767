package pg

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrFailedToOpenDBConnection = errors.New("failed to open db connection")
	ErrEmptyConnectionString    = errors.New("empty postgres connection string, use PG_CONN_URL env var")
	ErrHealthcheckFailed        = errors.New("healthcheck failed, connection is not available")
	ErrFailedToParseDBConfig    = errors.New("failed to parse db config")
	ErrMissingTable             = errors.New("postgres table name is required")
	ErrCreateTableFailed        = errors.New("failed to create records table")
	ErrInsertFailed             = errors.New("postgres insert failed")
	ErrEncodeRecord             = errors.New("failed to encode record")
	ErrInvalidUUID              = errors.New("invalid uuid")
	ErrTableNotFound            = errors.New("records table does not exist, set PG_CREATE_TABLES=true to create it")
	ErrDuplicateID              = errors.New("record id already exists")
)

// IsDuplicateKeyError detects PostgreSQL unique constraint violations (SQLSTATE 23505),
// e.g. a pooled id inserted twice.
func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// IsUndefinedTableError detects inserts into a missing table (SQLSTATE 42P01).
func IsUndefinedTableError(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
