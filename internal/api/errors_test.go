package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestErrorTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"subject unresolved", fmt.Errorf("%w: no row", auth.ErrSubjectUnresolved), http.StatusUnauthorized, MsgInvalidCredentials},
		{"disabled", auth.ErrDisabled, http.StatusUnauthorized, MsgInvalidCredentials},
		{"credential mismatch", auth.ErrCredentialMismatch, http.StatusUnauthorized, MsgInvalidCredentials},
		{"service unavailable", &auth.Error{Kind: auth.KindServiceUnavailable, Err: errors.New("pool closed")}, http.StatusInternalServerError, MsgUnexpected},
		{"expired token", auth.ErrExpired, http.StatusUnauthorized, "Invalid token"},
		{"forbidden", domain.ErrUnauthorized, http.StatusForbidden, "Access denied"},
		{"user not found", fmt.Errorf("get: %w", store.ErrUserNotFound), http.StatusNotFound, "User not found"},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
		{"comment not found", store.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
		{"generic not found", store.ErrNotFound, http.StatusNotFound, "Resource not found"},
		{"author not found", service.ErrAuthorNotFound, http.StatusNotFound, "Author not found"},
		{"assignee not found", service.ErrAssigneeNotFound, http.StatusNotFound, "Assignee not found"},
		{"no assignee", service.ErrNoAssignee, http.StatusNotFound, "Task has no assignee"},
		{"email exists", fmt.Errorf("create: %w", store.ErrEmailExists), http.StatusConflict, "Email already in use"},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
		{"validation", domain.NewValidationError("title", "cannot be empty", nil), http.StatusBadRequest, "title cannot be empty"},
		{"unknown", errors.New("pq: relation \"users\" does not exist"), http.StatusInternalServerError, MsgUnexpected},
		{"nil", nil, http.StatusInternalServerError, MsgUnexpected},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantStatus, MapErrorToStatusCode(tt.err))
			assert.Equal(t, tt.wantMsg, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestHandleAPIErrorDoesNotLeakCause(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	HandleAPIError(rec, req, errors.New("connection to postgres://admin:hunter2@db failed"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")
	assert.Contains(t, rec.Body.String(), MsgUnexpected)
}
