package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/novatech/taskflow/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every operation borrows a connection from the pool for the duration of
// that single call; nothing is held across calls.
type TaskStore interface {
	// Create saves a new task and returns it with the storage-assigned
	// identifier filled in. It validates the task first and returns the
	// domain validation error if the data is invalid.
	Create(ctx context.Context, task domain.Task) (domain.Task, error)

	// GetByID retrieves a task by its identifier.
	// Returns ErrTaskNotFound if no task matches.
	GetByID(ctx context.Context, id int64) (domain.Task, error)

	// GetAll retrieves every task in insertion order.
	// An empty result is a valid, non-error outcome.
	GetAll(ctx context.Context) ([]domain.Task, error)

	// Update saves all mutable columns of an existing task keyed by ID.
	// Returns ErrTaskNotFound if the identifier does not exist.
	Update(ctx context.Context, task domain.Task) (domain.Task, error)

	// Delete removes a task by ID and reports whether a row was removed.
	// Absence of a match is not an error.
	Delete(ctx context.Context, id int64) (bool, error)

	// GetByStatus retrieves all tasks with the given status.
	GetByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)

	// GetByDueDateBefore retrieves all tasks due strictly before the given
	// instant.
	GetByDueDateBefore(ctx context.Context, before time.Time) ([]domain.Task, error)

	// GetAllSortedByDueDate retrieves every task ordered by due date
	// ascending. Ties among equal due dates fall back to storage order.
	GetAllSortedByDueDate(ctx context.Context) ([]domain.Task, error)

	// WithTx returns a TaskStore that runs its operations on the provided
	// transaction. The transaction is created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}
