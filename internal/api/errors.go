package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/service"
	"github.com/novatech/taskflow/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes by error
// type, so handlers never leak internal error taxonomy to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInvalidTask),
		errors.Is(err, service.ErrInvalidTaskID),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, ErrInvalidDueDate):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for the
// error. Validation errors surface the failing rule; anything unexpected
// collapses to a generic message.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrTaskNotFound), store.IsNotFoundError(err):
		return "Task not found"

	case errors.Is(err, service.ErrInvalidTaskID):
		return "Invalid task ID"

	case errors.Is(err, ErrInvalidDueDate):
		return ErrInvalidDueDate.Error()

	case errors.Is(err, service.ErrInvalidStatus):
		return "Status cannot be empty"

	// Domain validation failures name the failing rule and are safe to
	// show as-is.
	case errors.Is(err, domain.ErrValidation):
		return err.Error()

	case errors.Is(err, service.ErrInvalidTask):
		return "Invalid task data"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid task data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationMessage converts a request validation failure into a
// user-facing message naming the first offending field and rule, without
// exposing struct internals.
func SanitizeValidationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		switch fe.Tag() {
		case "required":
			return fmt.Sprintf("%s is required", fe.Field())
		case "max":
			return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
		default:
			return fmt.Sprintf("%s is invalid", fe.Field())
		}
	}
	return "Invalid request body"
}
