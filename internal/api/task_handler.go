package api

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/novatech/taskflow/internal/api/shared"
	"github.com/novatech/taskflow/internal/domain"
	"github.com/novatech/taskflow/internal/service"
)

// TaskHandler handles the REST endpoints for tasks.
type TaskHandler struct {
	taskService service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler.
// If logger is nil, a default logger will be used.
func NewTaskHandler(taskService service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// RegisterRoutes mounts the task endpoints onto the router.
func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", h.ListTasks)
		r.Post("/", h.CreateTask)
		r.Get("/today", h.ListTasksDueToday)
		r.Get("/overdue", h.ListOverdueTasks)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetTask)
			r.Put("/", h.UpdateTask)
			r.Delete("/", h.DeleteTask)
			r.Post("/complete", h.CompleteTask)
		})
	})
}

// ListTasks handles GET /api/tasks.
// A recognized ?status= value filters the list; an unrecognized one falls
// back to the unfiltered list. ?sort=due_date returns the due-date view.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if raw := r.URL.Query().Get("status"); raw != "" {
		status := domain.TaskStatus(strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(raw), " ", "_")))
		if status.IsValid() {
			tasks, err := h.taskService.GetTasksByStatus(ctx, status)
			if err != nil {
				h.respondError(w, r, err)
				return
			}
			shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
			return
		}
	}

	if r.URL.Query().Get("sort") == "due_date" {
		tasks, err := h.taskService.GetTasksSortedByDueDate(ctx)
		if err != nil {
			h.respondError(w, r, err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
		return
	}

	tasks, err := h.taskService.GetAllTasks(ctx)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// GetTask handles GET /api/tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// ListTasksDueToday handles GET /api/tasks/today.
func (h *TaskHandler) ListTasksDueToday(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetTasksDueToday(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// ListOverdueTasks handles GET /api/tasks/overdue.
func (h *TaskHandler) ListOverdueTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.GetOverdueTasks(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// CreateTask handles POST /api/tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationMessage(err))
		return
	}

	task, err := req.ToDomain()
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	created, err := h.taskService.CreateTask(r.Context(), task)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	h.logger.Info("task created via API",
		slog.Int64("task_id", created.ID),
		slog.String("trace_id", shared.GetTraceID(r.Context())))
	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(created))
}

// UpdateTask handles PUT /api/tasks/{id}. The body is the same shape as
// creation; the path identifier wins over any id in the body.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	var req TaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationMessage(err))
		return
	}

	task, err := req.ToDomain()
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	task.ID = id

	// Preserve the original creation time; the row's value is
	// authoritative and the request body does not carry it.
	existing, err := h.taskService.GetTaskByID(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	task.CreatedAt = existing.CreatedAt

	updated, err := h.taskService.UpdateTask(r.Context(), task)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(updated))
}

// CompleteTask handles POST /api/tasks/{id}/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	completed, err := h.taskService.MarkTaskAsCompleted(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(completed))
}

// DeleteTask handles DELETE /api/tasks/{id}. A removed row answers 204; a
// missing one answers 404.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := h.taskID(w, r)
	if !ok {
		return
	}

	deleted, err := h.taskService.DeleteTask(r.Context(), id)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	if !deleted {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskID extracts and validates the {id} path parameter, writing a 400
// response itself when malformed.
func (h *TaskHandler) taskID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}

// respondError maps a service error to its HTTP response.
func (h *TaskHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
