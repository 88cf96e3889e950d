// Package service provides the task lifecycle service: validation before
// every write, timestamp stamping, and the derived task views.
package service

import (
	"errors"
	"fmt"

	"github.com/novatech/taskflow/internal/store"
)

// Sentinel errors for the task service. Handlers check these with
// errors.Is and map them to HTTP status codes.
//
// Error handling principles:
//  1. Service methods return sentinel errors for expected conditions:
//     validation failures and absence are client-correctable.
//  2. Storage failures are wrapped in TaskServiceError and treated as
//     opaque and fatal to the current operation.
//  3. Validation always happens before any write, so a validation error
//     guarantees nothing was persisted.
var (
	// ErrTaskNotFound indicates that the task does not exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrInvalidTask indicates that task data failed validation.
	// The wrapped domain error names the failing rule.
	ErrInvalidTask = errors.New("invalid task data")

	// ErrInvalidTaskID indicates a missing or non-positive task identifier.
	ErrInvalidTaskID = errors.New("invalid task ID")

	// ErrInvalidStatus indicates a missing status filter value.
	ErrInvalidStatus = errors.New("status cannot be empty")
)

// TaskServiceError wraps unexpected errors from the task service with
// operation context.
type TaskServiceError struct {
	Operation string // operation that failed, e.g. "create_task"
	Message   string
	Err       error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError. Known sentinel
// errors pass through directly without wrapping; store-level not-found
// errors are mapped to the service-level sentinel.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrTaskNotFound) || errors.Is(err, ErrInvalidTask) ||
		errors.Is(err, ErrInvalidTaskID) || errors.Is(err, ErrInvalidStatus) {
		return err
	}

	if errors.Is(err, store.ErrTaskNotFound) {
		return ErrTaskNotFound
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
