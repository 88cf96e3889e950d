package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/novatech/taskflow/internal/dateutil"
	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/store"
)

// TaskService provides task lifecycle operations and derived views.
type TaskService interface {
	// CreateTask validates the task, stamps timestamps and the default
	// status, and persists it. The returned task carries the
	// storage-assigned identifier.
	CreateTask(ctx context.Context, task domain.Task) (domain.Task, error)

	// GetTaskByID retrieves a task. Returns ErrInvalidTaskID for a
	// non-positive identifier and ErrTaskNotFound when absent.
	GetTaskByID(ctx context.Context, id int64) (domain.Task, error)

	// GetAllTasks retrieves every task.
	GetAllTasks(ctx context.Context) ([]domain.Task, error)

	// UpdateTask validates and persists changes to an existing task,
	// refreshing its UpdatedAt timestamp.
	UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error)

	// MarkTaskAsCompleted loads the task, sets its status to Completed,
	// refreshes UpdatedAt, and persists. Returns ErrTaskNotFound when the
	// task does not exist.
	MarkTaskAsCompleted(ctx context.Context, id int64) (domain.Task, error)

	// DeleteTask removes a task and reports whether a row was removed.
	// A missing task yields (false, nil), not an error.
	DeleteTask(ctx context.Context, id int64) (bool, error)

	// GetTasksByStatus retrieves tasks with the given status.
	GetTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error)

	// GetTasksDueToday retrieves tasks due on the current calendar day
	// that are not completed.
	GetTasksDueToday(ctx context.Context) ([]domain.Task, error)

	// GetOverdueTasks retrieves tasks whose due date is strictly before
	// today that are not completed. Cancelled tasks are still reported as
	// overdue; intentional for now, see DESIGN.md.
	GetOverdueTasks(ctx context.Context) ([]domain.Task, error)

	// GetTasksSortedByDueDate retrieves every task ordered by due date
	// ascending.
	GetTasksSortedByDueDate(ctx context.Context) ([]domain.Task, error)

	// ValidateTask reports whether the task passes the business rules.
	// Pure predicate; the error-returning path is domain.Task.Validate.
	ValidateTask(task domain.Task) bool
}

// taskServiceImpl implements the TaskService interface.
type taskServiceImpl struct {
	taskStore store.TaskStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService. The db handle is used for
// read-modify-write operations that run in a transaction; it may be nil
// when the store is not transactional (tests).
func NewTaskService(taskStore store.TaskStore, db *sql.DB, logger *slog.Logger) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &taskServiceImpl{
		taskStore: taskStore,
		db:        db,
		logger:    logger.With("component", "task_service"),
	}, nil
}

// CreateTask validates before any write: an invalid task never reaches the
// store. Timestamps default to the current time and the status to Pending
// when unset.
func (s *taskServiceImpl) CreateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		s.logger.Warn("task validation failed on create",
			"error", err,
			"title", task.Title)
		return domain.Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	now := time.Now()
	if task.CreatedAt.IsZero() {
		task.CreatedAt = now
	}
	if task.UpdatedAt.IsZero() {
		task.UpdatedAt = now
	}
	if task.Status == "" {
		task.Status = domain.TaskStatusPending
	}

	created, err := s.taskStore.Create(ctx, task)
	if err != nil {
		s.logger.Error("failed to create task",
			"error", err,
			"title", task.Title)
		return domain.Task{}, NewTaskServiceError("create_task", "failed to save task", err)
	}

	s.logger.Info("task created",
		"task_id", created.ID,
		"status", created.Status)
	return created, nil
}

// GetTaskByID retrieves a task by its identifier.
func (s *taskServiceImpl) GetTaskByID(ctx context.Context, id int64) (domain.Task, error) {
	if id <= 0 {
		return domain.Task{}, ErrInvalidTaskID
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		s.logger.Error("failed to retrieve task",
			"error", err,
			"task_id", id)
		return domain.Task{}, NewTaskServiceError("get_task", "failed to retrieve task", err)
	}

	return task, nil
}

// GetAllTasks retrieves every task.
func (s *taskServiceImpl) GetAllTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve tasks", "error", err)
		return nil, NewTaskServiceError("get_all_tasks", "failed to retrieve tasks", err)
	}
	return tasks, nil
}

// UpdateTask validates and persists changes to an existing task.
func (s *taskServiceImpl) UpdateTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.ID <= 0 {
		return domain.Task{}, ErrInvalidTaskID
	}

	if err := task.Validate(); err != nil {
		s.logger.Warn("task validation failed on update",
			"error", err,
			"task_id", task.ID)
		return domain.Task{}, fmt.Errorf("%w: %w", ErrInvalidTask, err)
	}

	task = task.WithUpdatedAt(time.Now())

	updated, err := s.taskStore.Update(ctx, task)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			return domain.Task{}, ErrTaskNotFound
		}
		s.logger.Error("failed to update task",
			"error", err,
			"task_id", task.ID)
		return domain.Task{}, NewTaskServiceError("update_task", "failed to save task", err)
	}

	s.logger.Info("task updated",
		"task_id", updated.ID,
		"status", updated.Status)
	return updated, nil
}

// MarkTaskAsCompleted performs the load-modify-store in one transaction
// when a db handle is available, so the status flip and the timestamp
// refresh land together.
func (s *taskServiceImpl) MarkTaskAsCompleted(ctx context.Context, id int64) (domain.Task, error) {
	if id <= 0 {
		return domain.Task{}, ErrInvalidTaskID
	}

	var completed domain.Task

	complete := func(ctx context.Context, ts store.TaskStore) error {
		task, err := ts.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return ErrTaskNotFound
			}
			return NewTaskServiceError("complete_task", "failed to retrieve task", err)
		}

		task = task.WithStatus(domain.TaskStatusCompleted).WithUpdatedAt(time.Now())

		completed, err = ts.Update(ctx, task)
		if err != nil {
			return NewTaskServiceError("complete_task", "failed to save task", err)
		}
		return nil
	}

	var err error
	if s.db != nil {
		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return complete(ctx, s.taskStore.WithTx(tx))
		})
	} else {
		err = complete(ctx, s.taskStore)
	}

	if err != nil {
		s.logger.Warn("failed to mark task as completed",
			"error", err,
			"task_id", id)
		return domain.Task{}, err
	}

	s.logger.Info("task marked as completed", "task_id", id)
	return completed, nil
}

// DeleteTask removes a task by its identifier.
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, ErrInvalidTaskID
	}

	deleted, err := s.taskStore.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete task",
			"error", err,
			"task_id", id)
		return false, NewTaskServiceError("delete_task", "failed to delete task", err)
	}

	s.logger.Info("task delete processed",
		"task_id", id,
		"deleted", deleted)
	return deleted, nil
}

// GetTasksByStatus retrieves tasks with the given status.
func (s *taskServiceImpl) GetTasksByStatus(ctx context.Context, status domain.TaskStatus) ([]domain.Task, error) {
	if status == "" {
		return nil, ErrInvalidStatus
	}

	tasks, err := s.taskStore.GetByStatus(ctx, status)
	if err != nil {
		s.logger.Error("failed to retrieve tasks by status",
			"error", err,
			"status", status)
		return nil, NewTaskServiceError("get_tasks_by_status", "failed to retrieve tasks", err)
	}
	return tasks, nil
}

// GetTasksDueToday filters in memory over all tasks using date-only
// comparison, so a task due at any hour today still counts.
func (s *taskServiceImpl) GetTasksDueToday(ctx context.Context) ([]domain.Task, error) {
	all, err := s.taskStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve tasks for due-today view", "error", err)
		return nil, NewTaskServiceError("get_tasks_due_today", "failed to retrieve tasks", err)
	}

	today := dateutil.Today()
	due := []domain.Task{}
	for _, task := range all {
		if dateutil.StripTime(task.DueDate).Equal(today) && task.Status != domain.TaskStatusCompleted {
			due = append(due, task)
		}
	}
	return due, nil
}

// GetOverdueTasks keeps tasks whose stripped due date is strictly before
// today and whose status is not Completed.
func (s *taskServiceImpl) GetOverdueTasks(ctx context.Context) ([]domain.Task, error) {
	all, err := s.taskStore.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve tasks for overdue view", "error", err)
		return nil, NewTaskServiceError("get_overdue_tasks", "failed to retrieve tasks", err)
	}

	today := dateutil.Today()
	overdue := []domain.Task{}
	for _, task := range all {
		if dateutil.StripTime(task.DueDate).Before(today) && task.Status != domain.TaskStatusCompleted {
			overdue = append(overdue, task)
		}
	}
	return overdue, nil
}

// GetTasksSortedByDueDate delegates ordering to the store.
func (s *taskServiceImpl) GetTasksSortedByDueDate(ctx context.Context) ([]domain.Task, error) {
	tasks, err := s.taskStore.GetAllSortedByDueDate(ctx)
	if err != nil {
		s.logger.Error("failed to retrieve sorted tasks", "error", err)
		return nil, NewTaskServiceError("get_tasks_sorted", "failed to retrieve tasks", err)
	}
	return tasks, nil
}

// ValidateTask reports whether the task passes the business rules.
func (s *taskServiceImpl) ValidateTask(task domain.Task) bool {
	return task.Validate() == nil
}
