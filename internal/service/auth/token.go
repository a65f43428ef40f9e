package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/redact"
)

// MinSigningKeyLength is the shortest HMAC secret NewTokenCodec accepts.
const MinSigningKeyLength = 32

// errSubjectMismatch is wrapped in a KindMalformed error when a valid token
// names a different subject.
var errSubjectMismatch = errors.New("token subject does not match")

// IssuedToken is a freshly minted token and the claims it carries.
type IssuedToken struct {
	Value     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec mints and verifies HS256 tokens carrying a subject and expiry.
// It is safe for concurrent use; its key and settings are fixed at construction.
type TokenCodec struct {
	signingKey []byte
	ttl        time.Duration
	clockSkew  time.Duration
	timeFunc   func() time.Time
}

// CodecOption customizes a TokenCodec.
type CodecOption func(*TokenCodec)

// WithClock replaces time.Now as the codec's time source.
func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.timeFunc = now
		}
	}
}

// NewTokenCodec creates a codec signing with secret. Tokens live for ttl;
// clockSkew is tolerated when checking expiry.
func NewTokenCodec(secret string, ttl, clockSkew time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < MinSigningKeyLength {
		return nil, fmt.Errorf("signing key must be at least %d characters", MinSigningKeyLength)
	}
	if ttl <= 0 {
		return nil, errors.New("token lifetime must be positive")
	}
	if clockSkew < 0 {
		return nil, errors.New("clock skew cannot be negative")
	}

	c := &TokenCodec{
		signingKey: []byte(secret),
		ttl:        ttl,
		clockSkew:  clockSkew,
		timeFunc:   time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TTL returns the lifetime given to minted tokens.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Mint signs a token for subject expiring ttl from now.
func (c *TokenCodec) Mint(ctx context.Context, subject string) (*IssuedToken, error) {
	if subject == "" {
		return nil, errors.New("token subject cannot be empty")
	}

	now := jwt.NewNumericDate(c.timeFunc())
	expires := jwt.NewNumericDate(now.Add(c.ttl))
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  now,
		ExpiresAt: expires,
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.signingKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("signing_method", jwt.SigningMethodHS256.Name))
		return nil, fmt.Errorf("failed to sign token with HMAC-SHA256: %w", err)
	}

	return &IssuedToken{
		Value:     signed,
		Subject:   subject,
		IssuedAt:  now.Time,
		ExpiresAt: expires.Time,
	}, nil
}

// DecodeSubject verifies the token's structure and signature and returns
// its subject. Expiry is not checked here.
func (c *TokenCodec) DecodeSubject(ctx context.Context, token string) (string, error) {
	claims, err := c.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", newError(KindMalformed, errors.New("token has no subject"))
	}
	return claims.Subject, nil
}

// Expired reports whether token is otherwise well formed but past its expiry,
// clock skew included. Callers use it to skip work for stale tokens.
func (c *TokenCodec) Expired(ctx context.Context, token string) bool {
	_, err := c.parse(token,
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.clockSkew),
		jwt.WithTimeFunc(c.timeFunc),
	)
	return KindOf(err) == KindExpired
}

// Check fully validates token for expectedSubject and returns the tagged
// reason when it is not acceptable.
func (c *TokenCodec) Check(ctx context.Context, token, expectedSubject string) error {
	claims, err := c.parse(token,
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(c.clockSkew),
		jwt.WithTimeFunc(c.timeFunc),
	)
	if err != nil {
		return err
	}
	if claims.Subject != expectedSubject {
		return newError(KindMalformed, errSubjectMismatch)
	}
	return nil
}

// Validate reports whether token is signed by this codec, unexpired, and
// issued for expectedSubject. The failure reason is logged, never returned.
func (c *TokenCodec) Validate(ctx context.Context, token, expectedSubject string) bool {
	err := c.Check(ctx, token, expectedSubject)
	if err == nil {
		return true
	}

	reason := KindOf(err).String()
	if errors.Is(err, errSubjectMismatch) {
		reason = "subject_mismatch"
	}
	log := logger.FromContext(ctx)
	attrs := []any{
		slog.String("reason", reason),
		slog.String("token_fingerprint", redact.Fingerprint(token)),
	}
	if KindOf(err) == KindExpired {
		log.Debug("token expired", attrs...)
	} else {
		log.Debug("token rejected", append(attrs, slog.String("error", err.Error()))...)
	}
	return false
}

func (c *TokenCodec) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	if token == "" {
		return nil, newError(KindMalformed, errors.New("empty token"))
	}

	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.signingKey, nil
	}, opts...)
	if err != nil {
		return nil, classify(err)
	}
	if !parsed.Valid {
		return nil, newError(KindMalformed, errors.New("token is not valid"))
	}
	return claims, nil
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return newError(KindExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return newError(KindSignatureInvalid, err)
	default:
		return newError(KindMalformed, err)
	}
}
