package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainNotFoundErrorsUnwrapToResourceNotFound(t *testing.T) {
	wrapped := fmt.Errorf("loading student 7: %w", ErrStudentNotFound)

	assert.True(t, errors.Is(wrapped, ErrStudentNotFound))
	assert.True(t, errors.Is(wrapped, ErrResourceNotFound))
	assert.False(t, errors.Is(wrapped, ErrCourseNotFound))
	assert.Equal(t, "Student profile not found.", ErrStudentProfileNotFound.Error())
}

func TestAlreadyEnrolledIsConflict(t *testing.T) {
	assert.True(t, errors.Is(ErrAlreadyEnrolled, ErrConflict))
	assert.Equal(t, "Student is already enrolled in this course.", ErrAlreadyEnrolled.Error())
}

func TestCustomErrorFallsBackToWrappedMessage(t *testing.T) {
	assert.Equal(t, "conflict", (&CustomError{Err: ErrConflict}).Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestValidationError(t *testing.T) {
	var v ValidationError
	assert.NoError(t, v.OrNil())

	v.Add("email", "The email has already been taken.").Add("name", "The name field is required.")
	err := fmt.Errorf("create student: %w", v.OrNil())

	assert.True(t, errors.Is(err, ErrValidationFailed))
	verr, ok := AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, []string{"The email has already been taken."}, verr.Fields["email"])
	assert.Contains(t, err.Error(), "email: The email has already been taken.")
}

func TestIs(t *testing.T) {
	assert.True(t, Is(ErrTokenRevoked, ErrTokenExpired, ErrTokenInvalid, ErrTokenRevoked))
	assert.False(t, Is(ErrTokenRevoked, ErrTokenExpired))
}
