package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// TaskHandler handles /api/tasks.
type TaskHandler struct {
	tasks  service.TaskService
	logger *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(tasks service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		tasks:  tasks,
		logger: logger.With(slog.String("component", "task_handler")),
	}
}

// Create handles POST /api/tasks. The author defaults to the caller.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	in, ok := h.decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Create(r.Context(), identity.UserID, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	task, err := h.tasks.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	in, ok := h.decodeTaskInput(w, r)
	if !ok {
		return
	}

	task, err := h.tasks.Update(r.Context(), id, in)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateStatus handles PATCH /api/tasks/{id}/status?status=.
func (h *TaskHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	status, err := domain.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	task, err := h.tasks.UpdateStatus(r.Context(), id, status)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.tasks.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetAssignee handles GET /api/tasks/{id}/assignee.
func (h *TaskHandler) GetAssignee(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	user, err := h.tasks.GetAssignee(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// List handles GET /api/tasks.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Task], error) {
		return h.tasks.List(r.Context(), page)
	})
}

// ListByStatus handles GET /api/tasks/status?status=.
func (h *TaskHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := domain.ParseStatus(r.URL.Query().Get("status"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Task], error) {
		return h.tasks.ListByStatus(r.Context(), status, page)
	})
}

// ListByPriority handles GET /api/tasks/priority?priority=.
func (h *TaskHandler) ListByPriority(w http.ResponseWriter, r *http.Request) {
	priority, err := domain.ParsePriority(r.URL.Query().Get("priority"))
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Task], error) {
		return h.tasks.ListByPriority(r.Context(), priority, page)
	})
}

// ListByUser handles GET /api/tasks/user/{userId}: tasks authored by the user.
func (h *TaskHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "userId", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Task], error) {
		return h.tasks.ListByUser(r.Context(), userID, page)
	})
}

// ListByAssignee handles GET /api/tasks/assignee/{assigneeId}.
func (h *TaskHandler) ListByAssignee(w http.ResponseWriter, r *http.Request) {
	assigneeID, ok := handlePathUUID(w, r, "assigneeId", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Task], error) {
		return h.tasks.ListByAssignee(r.Context(), assigneeID, page)
	})
}

func (h *TaskHandler) respondPage(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(store.PageRequest) (store.Page[domain.Task], error),
) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	tasks, err := fetch(page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, taskPage(tasks))
}

func (h *TaskHandler) decodeTaskInput(w http.ResponseWriter, r *http.Request) (service.TaskInput, bool) {
	var req TaskRequest
	if !decodeAndValidate(w, r, &req) {
		return service.TaskInput{}, false
	}

	in := service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		AuthorID:    nonNilUUID(req.AuthorID),
		AssigneeID:  nonNilUUID(req.AssigneeID),
	}
	if req.Priority != "" {
		priority, err := domain.ParsePriority(req.Priority)
		if err != nil {
			HandleAPIError(w, r, err)
			return service.TaskInput{}, false
		}
		in.Priority = priority
	}
	if req.Status != "" {
		status, err := domain.ParseStatus(req.Status)
		if err != nil {
			HandleAPIError(w, r, err)
			return service.TaskInput{}, false
		}
		in.Status = status
	}
	return in, true
}

func nonNilUUID(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	return id
}
