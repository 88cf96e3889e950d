// Package web serves the HTML surface of the application: the dashboard,
// the task list, and the create/edit forms. Pages are rendered from
// embedded templates; mutations are plain form posts followed by
// redirects.
package web

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/novatech/taskflow/internal/dateutil"
	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/service"
)

// Handler serves the server-rendered pages.
type Handler struct {
	taskService service.TaskService
	templates   *pageTemplates
	logger      *slog.Logger
}

// NewHandler creates a web Handler with all page templates parsed.
// If logger is nil, a default logger will be used.
func NewHandler(taskService service.TaskService, logger *slog.Logger) (*Handler, error) {
	templates, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		taskService: taskService,
		templates:   templates,
		logger:      logger.With(slog.String("component", "web_handler")),
	}, nil
}

// RegisterRoutes mounts the page routes onto the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.Dashboard)
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/new", h.NewTaskForm)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.ShowTask)
			r.Post("/", h.UpdateTask)
			r.Get("/edit", h.EditTaskForm)
			r.Post("/complete", h.CompleteTask)
			r.Post("/delete", h.DeleteTask)
		})
	})
}

// dashboardView is the data for the dashboard page.
type dashboardView struct {
	Total           int
	PendingCount    int
	InProgressCount int
	CompletedCount  int
	CancelledCount  int
	CompletionRate  int
	TodayTasks      []domain.Task
	OverdueTasks    []domain.Task
}

// listView is the data for the task list page.
type listView struct {
	Tasks        []domain.Task
	Statuses     []domain.TaskStatus
	StatusFilter string
}

// formView is the data for the create/edit form page.
type formView struct {
	Task     domain.Task
	Statuses []domain.TaskStatus
	Action   string
	Error    string
}

// detailView is the data for the task detail page.
type detailView struct {
	Task domain.Task
}

// Dashboard renders the landing page with status counts, the completion
// rate, and the today/overdue lists.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	all, err := h.taskService.GetAllTasks(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	today, err := h.taskService.GetTasksDueToday(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	overdue, err := h.taskService.GetOverdueTasks(ctx)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	view := dashboardView{
		Total:        len(all),
		TodayTasks:   today,
		OverdueTasks: overdue,
	}
	for _, task := range all {
		switch task.Status {
		case domain.TaskStatusPending:
			view.PendingCount++
		case domain.TaskStatusInProgress:
			view.InProgressCount++
		case domain.TaskStatusCompleted:
			view.CompletedCount++
		case domain.TaskStatusCancelled:
			view.CancelledCount++
		}
	}
	if view.Total > 0 {
		view.CompletionRate = int(math.Round(float64(view.CompletedCount) / float64(view.Total) * 100))
	}

	h.render(w, r, http.StatusOK, "dashboard.html", view)
}

// ListTasks renders the task list, optionally filtered by ?status=.
// An unrecognized filter value falls back to the unfiltered list.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	filter := r.URL.Query().Get("status")

	var tasks []domain.Task
	var err error

	if status := domain.TaskStatus(filter); filter != "" && status.IsValid() {
		tasks, err = h.taskService.GetTasksByStatus(ctx, status)
	} else {
		filter = ""
		tasks, err = h.taskService.GetAllTasks(ctx)
	}
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "tasks.html", listView{
		Tasks:        tasks,
		Statuses:     domain.AllStatuses,
		StatusFilter: filter,
	})
}

// ShowTask renders the detail page for one task.
func (h *Handler) ShowTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.taskError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "task_detail.html", detailView{Task: task})
}

// NewTaskForm renders an empty creation form.
func (h *Handler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "task_form.html", formView{
		Task:     domain.Task{Status: domain.TaskStatusPending},
		Statuses: domain.AllStatuses,
		Action:   "/tasks",
	})
}

// EditTaskForm renders the form pre-filled with an existing task.
func (h *Handler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.taskError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, "task_form.html", formView{
		Task:     task,
		Statuses: domain.AllStatuses,
		Action:   "/tasks/" + strconv.FormatInt(task.ID, 10),
	})
}

// CreateTask handles the creation form post. On validation failure the
// form re-renders with the submitted values and an error message.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	task, parseErr := h.formTask(r)

	if parseErr == nil {
		_, err := h.taskService.CreateTask(r.Context(), task)
		if err == nil {
			http.Redirect(w, r, "/tasks", http.StatusSeeOther)
			return
		}
		parseErr = err
	}

	if h.isUserError(parseErr) {
		h.render(w, r, http.StatusBadRequest, "task_form.html", formView{
			Task:     task,
			Statuses: domain.AllStatuses,
			Action:   "/tasks",
			Error:    userMessage(parseErr),
		})
		return
	}

	h.serverError(w, r, parseErr)
}

// UpdateTask handles the edit form post.
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, parseErr := h.formTask(r)
	task.ID = id

	if parseErr == nil {
		existing, err := h.taskService.GetTaskByID(r.Context(), id)
		if err != nil {
			h.taskError(w, r, err)
			return
		}
		task.CreatedAt = existing.CreatedAt

		_, err = h.taskService.UpdateTask(r.Context(), task)
		if err == nil {
			http.Redirect(w, r, "/tasks/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
			return
		}
		parseErr = err
	}

	if h.isUserError(parseErr) {
		h.render(w, r, http.StatusBadRequest, "task_form.html", formView{
			Task:     task,
			Statuses: domain.AllStatuses,
			Action:   "/tasks/" + strconv.FormatInt(id, 10),
			Error:    userMessage(parseErr),
		})
		return
	}

	h.taskError(w, r, parseErr)
}

// CompleteTask marks a task completed and returns to the referring list.
func (h *Handler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if _, err := h.taskService.MarkTaskAsCompleted(r.Context(), id); err != nil {
		h.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// DeleteTask removes a task. A missing task still redirects: the outcome
// the user asked for already holds.
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	if _, err := h.taskService.DeleteTask(r.Context(), id); err != nil {
		h.taskError(w, r, err)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// formTask builds a task from the posted form fields.
func (h *Handler) formTask(r *http.Request) (domain.Task, error) {
	if err := r.ParseForm(); err != nil {
		return domain.Task{}, errInvalidForm
	}

	task := domain.NewTask(
		r.PostFormValue("title"),
		r.PostFormValue("description"),
		dateutil.ParseDate(r.PostFormValue("dueDate")),
	)
	task.Status = domain.ParseStatus(r.PostFormValue("status"))

	if task.DueDate.IsZero() {
		return task, errInvalidDueDate
	}
	return task, nil
}

var (
	errInvalidForm    = errors.New("the submitted form could not be read")
	errInvalidDueDate = errors.New("due date must be provided as yyyy-MM-dd")
)

// isUserError reports whether the error should re-render the form rather
// than produce an error page.
func (h *Handler) isUserError(err error) bool {
	return errors.Is(err, errInvalidForm) ||
		errors.Is(err, errInvalidDueDate) ||
		errors.Is(err, domain.ErrValidation) ||
		errors.Is(err, service.ErrInvalidTask)
}

// userMessage picks the message shown in the form's error banner.
func userMessage(err error) string {
	switch {
	case errors.Is(err, errInvalidForm),
		errors.Is(err, errInvalidDueDate),
		errors.Is(err, domain.ErrValidation):
		return err.Error()
	default:
		return "The task could not be saved"
	}
}

// taskID extracts and validates the {id} path parameter.
func (h *Handler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid task ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// taskError renders 404 for a missing task and 500 for everything else.
func (h *Handler) taskError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrTaskNotFound) {
		http.NotFound(w, r)
		return
	}
	h.serverError(w, r, err)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("page render failed",
		slog.String("error", err.Error()),
		slog.String("path", r.URL.Path))
	http.Error(w, "Something went wrong", http.StatusInternalServerError)
}

// render executes a page template into a buffer first, so a template
// failure produces a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf bytes.Buffer
	if err := h.templates.render(&buf, page, data); err != nil {
		h.logger.Error("template execution failed",
			slog.String("template", page),
			slog.String("error", err.Error()))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Debug("response write failed", slog.String("error", err.Error()))
	}
}
