package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/redact"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
)

const bearerPrefix = "Bearer "

// TokenVerifier is the part of auth.TokenCodec the request authenticator uses.
type TokenVerifier interface {
	DecodeSubject(ctx context.Context, token string) (string, error)
	Expired(ctx context.Context, token string) bool
	Validate(ctx context.Context, token, expectedSubject string) bool
}

var _ TokenVerifier = (*auth.TokenCodec)(nil)

// RequestAuthenticator attaches an Identity to requests that carry a valid
// bearer token. It never rejects a request: missing, malformed, expired or
// otherwise unusable credentials leave the request unauthenticated and
// RequireAuthenticated/RequireRole decide what that means for a route.
type RequestAuthenticator struct {
	tokens        TokenVerifier
	directory     auth.Directory
	lookupTimeout time.Duration
	logger        *slog.Logger
}

// NewRequestAuthenticator creates a RequestAuthenticator. A non-positive
// lookupTimeout uses auth.DefaultLookupTimeout.
func NewRequestAuthenticator(
	tokens TokenVerifier,
	directory auth.Directory,
	lookupTimeout time.Duration,
	logger *slog.Logger,
) *RequestAuthenticator {
	if lookupTimeout <= 0 {
		lookupTimeout = auth.DefaultLookupTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &RequestAuthenticator{
		tokens:        tokens,
		directory:     directory,
		lookupTimeout: lookupTimeout,
		logger:        logger.With(slog.String("component", "request_authenticator")),
	}
}

// Middleware runs one authentication pass and always calls next.
func (a *RequestAuthenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity := a.authenticate(r); identity != nil {
			if ctx, stored := shared.WithIdentity(r.Context(), identity); stored {
				r = r.WithContext(ctx)
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (a *RequestAuthenticator) authenticate(r *http.Request) *shared.Identity {
	ctx := r.Context()
	if _, ok := shared.IdentityFromContext(ctx); ok {
		return nil
	}

	token, ok := BearerToken(r)
	if !ok {
		return nil
	}

	log := logger.FromContextOrDefault(ctx, a.logger).With(
		slog.String("token_fingerprint", redact.Fingerprint(token)))

	subject, err := a.tokens.DecodeSubject(ctx, token)
	if err != nil {
		log.Debug("bearer token rejected",
			slog.String("kind", auth.KindOf(err).String()))
		return nil
	}
	if a.tokens.Expired(ctx, token) {
		log.Debug("bearer token rejected",
			slog.String("kind", auth.KindExpired.String()))
		return nil
	}

	principal, err := a.lookup(ctx, subject)
	if err != nil {
		kind := auth.KindOf(err)
		if kind == auth.KindServiceUnavailable || kind == auth.KindUnknown {
			log.Warn("principal lookup failed",
				slog.String("error", redact.Error(err)))
		} else {
			log.Debug("principal not usable",
				slog.String("kind", kind.String()))
		}
		return nil
	}

	if !a.tokens.Validate(ctx, token, subject) {
		return nil
	}

	return &shared.Identity{
		UserID:  principal.UserID,
		Subject: principal.Subject,
		Roles:   principal.Roles,
	}
}

func (a *RequestAuthenticator) lookup(ctx context.Context, subject string) (*auth.Principal, error) {
	lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	defer cancel()

	principal, err := a.directory.FindPrincipal(lookupCtx, subject)
	switch {
	case err != nil:
		return nil, err
	case principal == nil:
		return nil, auth.ErrServiceUnavailable
	case !principal.Enabled:
		return nil, auth.ErrDisabled
	}
	return principal, nil
}

// BearerToken returns the token from an "Authorization: Bearer <token>"
// header. Any other shape reports false.
func BearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
	if !found {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
