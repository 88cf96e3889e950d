package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/novatech/taskflow/internal/dateutil"
	"github.com/novatech/taskflow/internal/validation"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

// Possible task status values. The stored value is the enum name; the
// display name is what the web UI shows.
const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusCompleted  TaskStatus = "COMPLETED"
	TaskStatusCancelled  TaskStatus = "CANCELLED"
)

// AllStatuses lists every valid status in display order.
var AllStatuses = []TaskStatus{
	TaskStatusPending,
	TaskStatusInProgress,
	TaskStatusCompleted,
	TaskStatusCancelled,
}

// DisplayName returns the human-readable form of the status.
func (s TaskStatus) DisplayName() string {
	switch s {
	case TaskStatusPending:
		return "Pending"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusCompleted:
		return "Completed"
	case TaskStatusCancelled:
		return "Cancelled"
	default:
		return string(s)
	}
}

// IsValid reports whether the status is one of the known values.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted, TaskStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseStatus maps an external string to a TaskStatus. Matching is
// case-insensitive and tolerates spaces in place of underscores
// ("in progress" and "IN_PROGRESS" both work). Unrecognized or empty
// input maps to TaskStatusPending rather than failing.
func ParseStatus(s string) TaskStatus {
	normalized := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	status := TaskStatus(normalized)
	if status.IsValid() {
		return status
	}
	return TaskStatusPending
}

// Task is a unit of work with a due date and a lifecycle status. It is a
// value record: the With* constructors return modified copies and never
// touch any other field, so timestamp refreshes are always explicit in the
// service layer.
//
// An ID of zero means the task has never been persisted; the store assigns
// the identifier on creation.
type Task struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"due_date"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Validation limits for task fields.
const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 500
)

// NewTask creates an unpersisted task with the given fields, a pending
// status, and both timestamps set to the current time.
func NewTask(title, description string, dueDate time.Time) Task {
	now := time.Now()
	return Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Status:      TaskStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Validate checks the task's fields against the business rules:
// title required and at most 100 characters, description at most 500
// characters when present, due date required. Lengths count characters,
// not bytes, so multibyte text is not penalized. For unpersisted
// tasks (ID zero) the due date must additionally not be before today; the
// rule is deliberately skipped on update so an already-overdue task can
// still be edited.
func (t Task) Validate() error {
	if validation.IsEmpty(t.Title) {
		return ErrEmptyTitle
	}
	if utf8.RuneCountInString(t.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if t.Description != "" && utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return ErrDescriptionTooLong
	}

	if t.DueDate.IsZero() {
		return ErrMissingDueDate
	}

	if t.ID == 0 && !validation.IsNotPastDate(t.DueDate) {
		return ErrDueDateInPast
	}

	return nil
}

// IsOverdue reports whether the task's due date is strictly before today,
// using a date-only comparison.
func (t Task) IsOverdue() bool {
	due := dateutil.StripTime(t.DueDate)
	return !due.IsZero() && due.Before(dateutil.Today())
}

// IsDueToday reports whether the task is due on the current calendar day.
func (t Task) IsDueToday() bool {
	return dateutil.IsToday(t.DueDate)
}

// WithStatus returns a copy of the task with only the status changed.
func (t Task) WithStatus(status TaskStatus) Task {
	t.Status = status
	return t
}

// WithTitle returns a copy of the task with only the title changed.
func (t Task) WithTitle(title string) Task {
	t.Title = title
	return t
}

// WithDescription returns a copy of the task with only the description changed.
func (t Task) WithDescription(description string) Task {
	t.Description = description
	return t
}

// WithDueDate returns a copy of the task with only the due date changed.
func (t Task) WithDueDate(dueDate time.Time) Task {
	t.DueDate = dueDate
	return t
}

// WithUpdatedAt returns a copy of the task with only UpdatedAt changed.
func (t Task) WithUpdatedAt(at time.Time) Task {
	t.UpdatedAt = at
	return t
}
