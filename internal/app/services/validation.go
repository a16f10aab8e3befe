package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/validation"
)

// validateRequest runs the declarative rules of req and returns the collected
// field errors, empty when req is valid. Services add their database checks to it.
func validateRequest(v *validation.Validator, req interface{}) (*apperrors.ValidationError, error) {
	err := v.Struct(req)
	if err == nil {
		return &apperrors.ValidationError{}, nil
	}
	if verr, ok := apperrors.AsValidationError(err); ok {
		return verr, nil
	}
	return nil, fmt.Errorf("failed to validate request: %w", err)
}

// addUnique records a uniqueness failure for field
func addUnique(verr *apperrors.ValidationError, field string) {
	verr.Add(field, validation.Message(validation.UniqueTag, field))
}

// addExists records a reference to a missing row for field
func addExists(verr *apperrors.ValidationError, field string) {
	verr.Add(field, validation.Message(validation.ExistsTag, field))
}

// uniqueEmailError is the field error returned when a concurrent write took the address
func uniqueEmailError() error {
	verr := &apperrors.ValidationError{}
	addUnique(verr, "email")
	return verr
}

// parseOptionalDate turns an optional YYYY-MM-DD value into a date, nil when blank.
// The value has already passed the date rule.
func parseOptionalDate(value *string) *time.Time {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil
	}
	t, err := validation.ParseDate(*value)
	if err != nil {
		return nil
	}
	return &t
}
