package api

import (
	"errors"

	"github.com/novatech/taskflow/internal/dateutil"
	"github.com/novatech/taskflow/internal/domain"
)

// ErrInvalidDueDate indicates a due date that did not parse as yyyy-MM-dd.
var ErrInvalidDueDate = errors.New("invalid due date format, expected yyyy-MM-dd")

// TaskRequest is the request body for creating or updating a task.
// DueDate uses the yyyy-MM-dd wire format. Status is optional and
// case-insensitive; an absent or unrecognized value defaults to PENDING.
type TaskRequest struct {
	Title       string `json:"title"       validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	DueDate     string `json:"dueDate"     validate:"required"`
	Status      string `json:"status"`
}

// ToDomain converts the request into a domain task. The identifier is
// zero; handlers for update routes set it from the path.
func (req TaskRequest) ToDomain() (domain.Task, error) {
	due := dateutil.ParseDate(req.DueDate)
	if due.IsZero() {
		return domain.Task{}, ErrInvalidDueDate
	}

	task := domain.NewTask(req.Title, req.Description, due)
	task.Status = domain.ParseStatus(req.Status)
	return task, nil
}

// TaskResponse is the wire representation of a task. Description is
// always present ("" when empty), DueDate is yyyy-MM-dd, and the
// timestamps are yyyy-MM-dd HH:mm:ss.
type TaskResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// NewTaskResponse maps a domain task onto its wire representation.
func NewTaskResponse(task domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     dateutil.FormatDate(task.DueDate),
		Status:      string(task.Status),
		CreatedAt:   dateutil.FormatDateTime(task.CreatedAt),
		UpdatedAt:   dateutil.FormatDateTime(task.UpdatedAt),
	}
}

// NewTaskListResponse maps a slice of domain tasks. An empty input yields
// an empty JSON array, never null.
func NewTaskListResponse(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, NewTaskResponse(task))
	}
	return responses
}
