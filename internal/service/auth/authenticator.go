package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/redact"
)

// DefaultLookupTimeout bounds directory calls when no timeout is configured.
const DefaultLookupTimeout = 2 * time.Second

// dummyPassword is hashed at construction so unknown subjects cost a full
// comparison.
const dummyPassword = "taskhub-unknown-subject-placeholder"

// Authentication is the result of a successful login.
type Authentication struct {
	Token     *IssuedToken
	Principal *Principal
}

// Authenticator verifies email/password pairs and mints tokens for them.
type Authenticator struct {
	directory     Directory
	verifier      CredentialVerifier
	codec         *TokenCodec
	lookupTimeout time.Duration
	logger        *slog.Logger
	dummyHash     string
}

// NewAuthenticator wires an Authenticator. A non-positive lookupTimeout
// uses DefaultLookupTimeout.
func NewAuthenticator(
	directory Directory,
	verifier CredentialVerifier,
	codec *TokenCodec,
	lookupTimeout time.Duration,
	logger *slog.Logger,
) *Authenticator {
	if lookupTimeout <= 0 {
		lookupTimeout = DefaultLookupTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	a := &Authenticator{
		directory:     directory,
		verifier:      verifier,
		codec:         codec,
		lookupTimeout: lookupTimeout,
		logger:        logger.With(slog.String("component", "authenticator")),
	}
	a.dummyHash = a.placeholderHash()
	return a
}

// Authenticate checks the credentials and returns a token for the subject.
// Unknown, disabled and mismatched credentials return distinct kinds that
// callers must surface identically; anything unexpected is KindServiceUnavailable.
func (a *Authenticator) Authenticate(ctx context.Context, email, password string) (*Authentication, error) {
	log := logger.FromContextOrDefault(ctx, a.logger).With(
		slog.String("subject", redact.String(email)),
	)

	lookupCtx, cancel := context.WithTimeout(ctx, a.lookupTimeout)
	principal, err := a.directory.FindPrincipal(lookupCtx, email)
	cancel()

	switch {
	case errors.Is(err, ErrSubjectUnresolved):
		a.verifier.Verify(password, a.dummyHash)
		log.Info("login rejected", slog.String("reason", KindSubjectUnresolved.String()))
		return nil, newError(KindSubjectUnresolved, err)
	case err != nil:
		log.Error("principal lookup failed", slog.String("error", redact.Error(err)))
		return nil, newError(KindServiceUnavailable, err)
	case principal == nil:
		log.Error("principal lookup returned nothing")
		return nil, newError(KindServiceUnavailable, errors.New("directory returned nil principal"))
	}

	matched := a.verifier.Verify(password, principal.HashedPassword)

	if !principal.Enabled {
		log.Info("login rejected",
			slog.String("reason", KindDisabled.String()),
			slog.String("user_id", principal.UserID.String()))
		return nil, ErrDisabled
	}

	if !matched {
		log.Info("login rejected",
			slog.String("reason", KindCredentialMismatch.String()),
			slog.String("user_id", principal.UserID.String()))
		return nil, ErrCredentialMismatch
	}

	token, err := a.codec.Mint(ctx, principal.Subject)
	if err != nil {
		log.Error("failed to mint token", slog.String("error", err.Error()))
		return nil, newError(KindServiceUnavailable, err)
	}

	log.Info("login succeeded",
		slog.String("user_id", principal.UserID.String()),
		slog.Time("expires_at", token.ExpiresAt))
	return &Authentication{Token: token, Principal: principal}, nil
}

// placeholderHash hashes dummyPassword. It returns "" when the verifier
// cannot hash.
func (a *Authenticator) placeholderHash() string {
	hasher, ok := a.verifier.(PasswordHasher)
	if !ok {
		return ""
	}
	hash, err := hasher.Hash(dummyPassword)
	if err != nil {
		a.logger.Warn("failed to prepare placeholder hash", slog.String("error", err.Error()))
		return ""
	}
	return hash
}
