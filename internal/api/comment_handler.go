package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// CommentHandler handles /api/comments.
type CommentHandler struct {
	comments service.CommentService
	logger   *slog.Logger
}

// NewCommentHandler creates a CommentHandler.
func NewCommentHandler(comments service.CommentService, logger *slog.Logger) *CommentHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for CommentHandler")
	}
	return &CommentHandler{
		comments: comments,
		logger:   logger.With(slog.String("component", "comment_handler")),
	}
}

// Create handles POST /api/comments. The author defaults to the caller.
func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	identity, ok := requireIdentity(w, r, log)
	if !ok {
		return
	}

	var req CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.comments.Create(r.Context(), identity.UserID, req.TaskID, nonNilUUID(req.AuthorID), req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, commentToResponse(comment))
}

// Get handles GET /api/comments/{id}.
func (h *CommentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	comment, err := h.comments.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(comment))
}

// Update handles PUT /api/comments/{id}. Only the content changes.
func (h *CommentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	var req UpdateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.comments.Update(r.Context(), id, req.Content)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentToResponse(comment))
}

// Delete handles DELETE /api/comments/{id}.
func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathUUID(w, r, "id", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}

	if err := h.comments.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListByTask handles GET /api/comments/task/{taskId}.
func (h *CommentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := handlePathUUID(w, r, "taskId", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Comment], error) {
		return h.comments.ListByTask(r.Context(), taskID, page)
	})
}

// ListByUser handles GET /api/comments/user/{userId}.
func (h *CommentHandler) ListByUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := handlePathUUID(w, r, "userId", logger.FromContextOrDefault(r.Context(), h.logger))
	if !ok {
		return
	}
	h.respondPage(w, r, func(page store.PageRequest) (store.Page[domain.Comment], error) {
		return h.comments.ListByUser(r.Context(), userID, page)
	})
}

func (h *CommentHandler) respondPage(
	w http.ResponseWriter,
	r *http.Request,
	fetch func(store.PageRequest) (store.Page[domain.Comment], error),
) {
	page, err := getPage(r)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	comments, err := fetch(page)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, commentPage(comments))
}
