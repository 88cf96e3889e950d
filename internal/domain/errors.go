// Package domain contains the core business entities and domain logic of
// the application, independent of any delivery mechanism or storage detail.
package domain

import (
	"errors"
	"fmt"
)

// ErrValidation is the root of all field-level validation failures.
// Specific errors wrap it so callers can match the whole family with
// errors.Is(err, ErrValidation).
var ErrValidation = errors.New("validation failed")

// Field-level validation errors for Task.
var (
	ErrEmptyTitle         = fmt.Errorf("%w: title cannot be empty", ErrValidation)
	ErrTitleTooLong       = fmt.Errorf("%w: title cannot exceed 100 characters", ErrValidation)
	ErrDescriptionTooLong = fmt.Errorf("%w: description cannot exceed 500 characters", ErrValidation)
	ErrMissingDueDate     = fmt.Errorf("%w: due date is required", ErrValidation)
	ErrDueDateInPast      = fmt.Errorf("%w: due date cannot be in the past", ErrValidation)
)
