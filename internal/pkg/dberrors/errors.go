package dberrors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	UniqueViolation     = "23505"
	ForeignKeyViolation = "23503"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

// IsDuplicateConstraintError checks if the error is a unique violation of constraintName.
// An empty constraintName matches any unique violation.
func IsDuplicateConstraintError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == UniqueViolation && (constraintName == "" || pgErr.ConstraintName == constraintName)
}

// IsForeignKeyError checks if the error is a foreign key violation of constraintName.
// An empty constraintName matches any foreign key violation.
func IsForeignKeyError(err error, constraintName string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == ForeignKeyViolation && (constraintName == "" || pgErr.ConstraintName == constraintName)
}

// ConstraintName returns the violated constraint, if err comes from PostgreSQL
func ConstraintName(err error) string {
	if pgErr, ok := pgError(err); ok {
		return pgErr.ConstraintName
	}
	return ""
}
