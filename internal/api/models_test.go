package api

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novatech/taskflow/internal/domain"
)

func TestTaskRequest_ToDomain(t *testing.T) {
	tests := []struct {
		name       string
		req        TaskRequest
		wantErr    error
		wantStatus domain.TaskStatus
	}{
		{
			name: "valid_with_status",
			req: TaskRequest{
				Title:   "Pay rent",
				DueDate: "2026-09-15",
				Status:  "in progress",
			},
			wantStatus: domain.TaskStatusInProgress,
		},
		{
			name: "status_defaults_to_pending",
			req: TaskRequest{
				Title:   "Pay rent",
				DueDate: "2026-09-15",
			},
			wantStatus: domain.TaskStatusPending,
		},
		{
			name: "unknown_status_defaults_to_pending",
			req: TaskRequest{
				Title:   "Pay rent",
				DueDate: "2026-09-15",
				Status:  "archived",
			},
			wantStatus: domain.TaskStatusPending,
		},
		{
			name: "bad_due_date_format",
			req: TaskRequest{
				Title:   "Pay rent",
				DueDate: "15/09/2026",
			},
			wantErr: ErrInvalidDueDate,
		},
		{
			name: "empty_due_date",
			req: TaskRequest{
				Title: "Pay rent",
			},
			wantErr: ErrInvalidDueDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := tt.req.ToDomain()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.req.Title, task.Title)
			assert.Equal(t, tt.wantStatus, task.Status)
			assert.Equal(t, 2026, task.DueDate.Year())
			assert.Zero(t, task.ID)
		})
	}
}

func TestNewTaskResponse(t *testing.T) {
	created := time.Date(2026, time.August, 30, 14, 5, 9, 0, time.Local)
	task := domain.Task{
		ID:        42,
		Title:     "Pay rent",
		DueDate:   time.Date(2026, time.September, 1, 0, 0, 0, 0, time.Local),
		Status:    domain.TaskStatusCompleted,
		CreatedAt: created,
		UpdatedAt: created.Add(time.Hour),
	}

	resp := NewTaskResponse(task)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-09-01", resp.DueDate)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.Equal(t, "2026-08-30 14:05:09", resp.CreatedAt)
	assert.Equal(t, "2026-08-30 15:05:09", resp.UpdatedAt)
}

func TestNewTaskResponse_DescriptionNeverNull(t *testing.T) {
	task := domain.Task{ID: 1, Title: "Pay rent"}

	raw, err := json.Marshal(NewTaskResponse(task))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"description":""`)
}

func TestNewTaskListResponse_NilInput(t *testing.T) {
	resp := NewTaskListResponse(nil)
	require.NotNil(t, resp)
	assert.Empty(t, resp)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}
