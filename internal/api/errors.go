package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

const (
	// MsgInvalidCredentials is returned for every failed login, whatever the cause.
	MsgInvalidCredentials = "Invalid credentials"

	// MsgUnexpected is returned for any failure the client cannot act on.
	MsgUnexpected = "An unexpected error occurred. Please try again later."
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// errorTable is the only place errors become status codes. Entries are
// checked in order with errors.Is, so specific errors precede their
// generic parents.
var errorTable = []errorMapping{
	// Login: the three credential failures are indistinguishable to clients.
	{auth.ErrSubjectUnresolved, http.StatusUnauthorized, MsgInvalidCredentials},
	{auth.ErrDisabled, http.StatusUnauthorized, MsgInvalidCredentials},
	{auth.ErrCredentialMismatch, http.StatusUnauthorized, MsgInvalidCredentials},
	{auth.ErrServiceUnavailable, http.StatusInternalServerError, MsgUnexpected},

	// Token failures, for handlers that inspect tokens directly.
	{auth.ErrMalformed, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrExpired, http.StatusUnauthorized, "Invalid token"},
	{auth.ErrSignatureInvalid, http.StatusUnauthorized, "Invalid token"},

	{domain.ErrUnauthorized, http.StatusForbidden, "Access denied"},

	{service.ErrAuthorNotFound, http.StatusNotFound, "Author not found"},
	{service.ErrAssigneeNotFound, http.StatusNotFound, "Assignee not found"},
	{service.ErrNoAssignee, http.StatusNotFound, "Task has no assignee"},
	{service.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{store.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{store.ErrTaskNotFound, http.StatusNotFound, "Task not found"},
	{store.ErrCommentNotFound, http.StatusNotFound, "Comment not found"},
	{store.ErrNotFound, http.StatusNotFound, "Resource not found"},

	{store.ErrEmailExists, http.StatusConflict, "Email already in use"},
	{store.ErrDuplicate, http.StatusConflict, "Resource already exists"},

	{domain.ErrValidation, http.StatusBadRequest, "Validation failed"},
	{store.ErrInvalidEntity, http.StatusBadRequest, "Invalid entity data"},
}

func lookupError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, MsgUnexpected
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	return http.StatusInternalServerError, MsgUnexpected
}

// MapErrorToStatusCode returns the HTTP status for err.
func MapErrorToStatusCode(err error) int {
	status, _ := lookupError(err)
	return status
}

// GetSafeErrorMessage returns the client-facing message for err. Domain
// validation errors keep their field and reason, which never contain
// stored data.
func GetSafeErrorMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	_, message := lookupError(err)
	return message
}

// HandleAPIError logs err and writes the mapped status and message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err)
}
