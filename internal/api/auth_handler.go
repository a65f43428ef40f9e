package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
)

// CredentialAuthenticator exchanges an email and password for a token.
type CredentialAuthenticator interface {
	Authenticate(ctx context.Context, email, password string) (*auth.Authentication, error)
}

var _ CredentialAuthenticator = (*auth.Authenticator)(nil)

// AuthHandler handles the public login and registration endpoints.
type AuthHandler struct {
	authenticator CredentialAuthenticator
	users         service.UserService
	logger        *slog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(
	authenticator CredentialAuthenticator,
	users service.UserService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		// ALLOW-PANIC: constructor enforcing required dependency
		panic("logger cannot be nil for AuthHandler")
	}
	return &AuthHandler{
		authenticator: authenticator,
		users:         users,
		logger:        logger.With(slog.String("component", "auth_handler")),
	}
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		// Login only ever answers 401 or 500.
		status, message := http.StatusInternalServerError, MsgUnexpected
		if MapErrorToStatusCode(err) == http.StatusUnauthorized {
			status, message = http.StatusUnauthorized, MsgInvalidCredentials
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("login response sent",
		slog.String("user_id", result.Principal.UserID.String()))

	shared.RespondWithJSON(w, r, http.StatusOK, AuthResponse{
		Token:     result.Token.Value,
		ExpiresAt: result.Token.ExpiresAt,
		UserID:    result.Principal.UserID,
	})
}

// Register handles POST /api/auth/register. New accounts always get the
// USER role.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}
