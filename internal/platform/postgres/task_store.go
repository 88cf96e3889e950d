package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/platform/logger"
	"github.com/novatech/taskflow/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface using a
// PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the
// TaskStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", "task_store")),
	}
}

// Ensure PostgresTaskStore implements store.TaskStore
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// WithTx implements store.TaskStore.WithTx
func (s *PostgresTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &PostgresTaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.TaskStore.Create
// It validates the task, inserts a row, and returns the task with the
// generated identifier assigned. A failed insert or a missing generated
// identifier is a storage error.
func (s *PostgresTaskStore) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return domain.Task{}, err
	}

	query := `
		INSERT INTO tasks (title, description, due_date, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Status),
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&id)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("title", task.Title))
		return domain.Task{}, store.NewStoreError("task", "create", "insert failed", MapError(err))
	}

	task.ID = id

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return task, nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) GetByID(ctx context.Context, id int64) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving task by ID", slog.Int64("task_id", id))

	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found", slog.Int64("task_id", id))
			return domain.Task{}, store.ErrTaskNotFound
		}
		log.Error("failed to get task by ID",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return domain.Task{}, store.NewStoreError("task", "get_by_id", "query failed", err)
	}

	return task, nil
}

// GetAll implements store.TaskStore.GetAll
// Tasks come back in insertion (primary key) order.
func (s *PostgresTaskStore) GetAll(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at
		FROM tasks
		ORDER BY id
	`
	return s.queryTasks(ctx, "get_all", query)
}

// Update implements store.TaskStore.Update
// It updates all mutable columns keyed by ID.
// Returns store.ErrTaskNotFound if no row was affected.
func (s *PostgresTaskStore) Update(ctx context.Context, task domain.Task) (domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return domain.Task{}, err
	}

	query := `
		UPDATE tasks
		SET title = $1, description = $2, due_date = $3, status = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Title,
		task.Description,
		task.DueDate,
		string(task.Status),
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return domain.Task{}, store.NewStoreError("task", "update", "update failed", MapError(err))
	}

	if err := CheckRowsAffected(result, store.ErrTaskNotFound); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", slog.Int64("task_id", task.ID))
			return domain.Task{}, err
		}
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", task.ID))
		return domain.Task{}, store.NewStoreError("task", "update", "rows affected unavailable", err)
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", task.ID),
		slog.String("status", string(task.Status)))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// It reports whether a row was removed; absence of a match is not an error.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, store.NewStoreError("task", "delete", "delete failed", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, store.NewStoreError("task", "delete", "rows affected unavailable", err)
	}

	deleted := rowsAffected > 0
	if deleted {
		log.Info("task deleted successfully", slog.Int64("task_id", id))
	} else {
		log.Debug("task not found for delete", slog.Int64("task_id", id))
	}
	return deleted, nil
}

// GetByStatus implements store.TaskStore.GetByStatus
func (s *PostgresTaskStore) GetByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at
		FROM tasks
		WHERE status = $1
		ORDER BY id
	`
	return s.queryTasks(ctx, "get_by_status", query, string(status))
}

// GetByDueDateBefore implements store.TaskStore.GetByDueDateBefore
func (s *PostgresTaskStore) GetByDueDateBefore(ctx context.Context, before time.Time) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at
		FROM tasks
		WHERE due_date < $1
		ORDER BY id
	`
	return s.queryTasks(ctx, "get_by_due_date_before", query, before)
}

// GetAllSortedByDueDate implements store.TaskStore.GetAllSortedByDueDate
// Tasks with equal due dates fall back to primary key order.
func (s *PostgresTaskStore) GetAllSortedByDueDate(ctx context.Context) ([]domain.Task, error) {
	query := `
		SELECT id, title, description, due_date, status, created_at, updated_at
		FROM tasks
		ORDER BY due_date ASC
	`
	return s.queryTasks(ctx, "get_all_sorted_by_due_date", query)
}

// queryTasks runs a multi-row task query and scans the results.
// An empty result yields an empty slice, never nil.
func (s *PostgresTaskStore) queryTasks(
	ctx context.Context,
	operation string,
	query string,
	args ...any,
) ([]domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query tasks",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("task", operation, "query failed", MapError(err))
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	tasks := []domain.Task{}
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row",
				slog.String("error", err.Error()),
				slog.String("operation", operation))
			return nil, store.NewStoreError("task", operation, "scan failed", err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()),
			slog.String("operation", operation))
		return nil, store.NewStoreError("task", operation, "row iteration failed", err)
	}

	log.Debug("tasks retrieved",
		slog.String("operation", operation),
		slog.Int("count", len(tasks)))
	return tasks, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask maps a tasks row onto a domain.Task.
func scanTask(row rowScanner) (domain.Task, error) {
	var task domain.Task
	var description sql.NullString
	var status string

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.DueDate,
		&status,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err != nil {
		return domain.Task{}, err
	}

	task.Description = description.String
	task.Status = domain.TaskStatus(status)
	return task, nil
}
