package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/store"
)

var taskColumns = []string{"id", "title", "description", "due_date", "status", "created_at", "updated_at"}

func newMockStore(t *testing.T) (*PostgresTaskStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewPostgresTaskStore(db, nil), mock
}

func TestPostgresTaskStore_Create(t *testing.T) {
	s, mock := newMockStore(t)

	task := domain.NewTask("Pay rent", "september invoice", time.Now().AddDate(0, 0, 7))
	mock.ExpectQuery("INSERT INTO tasks").
		WithArgs(task.Title, task.Description, task.DueDate, "PENDING", task.CreatedAt, task.UpdatedAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

	created, err := s.Create(context.Background(), task)

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Create_ConstraintViolation(t *testing.T) {
	s, mock := newMockStore(t)

	task := domain.NewTask("Pay rent", "", time.Now().AddDate(0, 0, 7))
	mock.ExpectQuery("INSERT INTO tasks").
		WillReturnError(&pgconn.PgError{Code: checkViolationCode, ConstraintName: "tasks_status_check"})

	_, err := s.Create(context.Background(), task)

	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	due := now.AddDate(0, 0, 3)
	mock.ExpectQuery("SELECT (.+) FROM tasks").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(7), "Pay rent", "september invoice", due, "IN_PROGRESS", now, now))

	task, err := s.GetByID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), task.ID)
	assert.Equal(t, "Pay rent", task.Title)
	assert.Equal(t, domain.TaskStatusInProgress, task.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	// No matching row; the driver answers sql.ErrNoRows, which must surface
	// as the task-specific sentinel.
	mock.ExpectQuery("SELECT (.+) FROM tasks").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(taskColumns))

	_, err := s.GetByID(context.Background(), 99)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByID_NullDescription(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM tasks").
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(3), "Pay rent", nil, now, "PENDING", now, now))

	task, err := s.GetByID(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "", task.Description, "NULL description reads as empty string")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Update_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	task := domain.Task{
		ID:        42,
		Title:     "Pay rent",
		DueDate:   time.Now().AddDate(0, 0, 1),
		Status:    domain.TaskStatusPending,
		UpdatedAt: time.Now(),
	}
	mock.ExpectExec("UPDATE tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := s.Update(context.Background(), task)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Update(t *testing.T) {
	s, mock := newMockStore(t)

	task := domain.Task{
		ID:        42,
		Title:     "Pay rent late",
		DueDate:   time.Now().AddDate(0, 0, 1),
		Status:    domain.TaskStatusInProgress,
		UpdatedAt: time.Now(),
	}
	mock.ExpectExec("UPDATE tasks").
		WithArgs(task.Title, task.Description, task.DueDate, "IN_PROGRESS", task.UpdatedAt, task.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	updated, err := s.Update(context.Background(), task)

	require.NoError(t, err)
	assert.Equal(t, task, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Delete(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	deleted, err := s.Delete(context.Background(), 9)

	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_Delete_NotFound(t *testing.T) {
	s, mock := newMockStore(t)

	// A missing row is not an error for delete; the store reports false.
	mock.ExpectExec("DELETE FROM tasks").
		WithArgs(int64(404)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	deleted, err := s.Delete(context.Background(), 404)

	require.NoError(t, err)
	assert.False(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetAll_Empty(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM tasks").
		WillReturnRows(sqlmock.NewRows(taskColumns))

	tasks, err := s.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, tasks, "an empty result is an empty slice, never nil")
	assert.Empty(t, tasks)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTaskStore_GetByStatus(t *testing.T) {
	s, mock := newMockStore(t)

	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM tasks").
		WithArgs("COMPLETED").
		WillReturnRows(sqlmock.NewRows(taskColumns).
			AddRow(int64(1), "Pay rent", "", now, "COMPLETED", now, now).
			AddRow(int64(4), "File taxes", "", now, "COMPLETED", now, now))

	tasks, err := s.GetByStatus(context.Background(), domain.TaskStatusCompleted)

	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, int64(1), tasks[0].ID)
	assert.Equal(t, int64(4), tasks[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
