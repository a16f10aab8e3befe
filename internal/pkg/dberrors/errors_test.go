package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: UniqueViolation, ConstraintName: "students_email_unique"})

	assert.True(t, IsDuplicateConstraintError(err, "students_email_unique"))
	assert.True(t, IsDuplicateConstraintError(err, ""))
	assert.False(t, IsDuplicateConstraintError(err, "users_email_unique"))
	assert.False(t, IsForeignKeyError(err, ""))
	assert.Equal(t, "students_email_unique", ConstraintName(err))
}

func TestIsForeignKeyError(t *testing.T) {
	err := &pgconn.PgError{Code: ForeignKeyViolation, ConstraintName: "subjects_course_id_fkey"}

	assert.True(t, IsForeignKeyError(err, "subjects_course_id_fkey"))
	assert.False(t, IsDuplicateConstraintError(err, ""))
}

func TestPlainErrors(t *testing.T) {
	err := errors.New("boom")
	assert.False(t, IsDuplicateConstraintError(err, ""))
	assert.False(t, IsForeignKeyError(err, ""))
	assert.Empty(t, ConstraintName(err))
}
