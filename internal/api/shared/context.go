package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type of request-scoped context keys.
type ContextKey string

const (
	// TraceIDKey holds the request trace ID.
	TraceIDKey ContextKey = "traceID"

	// IdentityKey holds the authenticated Identity.
	IdentityKey ContextKey = "identity"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16
)

// Identity is the authenticated caller of one request. It exists only in
// the request context and is never shared across requests.
type Identity struct {
	UserID  uuid.UUID
	Subject string
	Roles   []string
}

// HasRole reports whether the identity holds role.
func (i *Identity) HasRole(role string) bool {
	return slices.Contains(i.Roles, role)
}

// WithIdentity stores id in ctx. An identity already present is never
// replaced; the second return value reports whether id was stored.
func WithIdentity(ctx context.Context, id *Identity) (context.Context, bool) {
	if id == nil {
		return ctx, false
	}
	if _, ok := IdentityFromContext(ctx); ok {
		return ctx, false
	}
	return context.WithValue(ctx, IdentityKey, id), true
}

// IdentityFromContext returns the request's identity, if one was set.
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*Identity)
	return id, ok && id != nil
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID returns the trace ID from ctx, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(TraceIDKey).(string)
	return traceID
}

// generateTraceID returns 32 hex characters. If crypto/rand fails it falls
// back to a time-derived value rather than a constant.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		slog.Error("failed to generate random trace ID",
			slog.Any("error", err),
			slog.Int("bytes_read", n))
		now := time.Now()
		binary.BigEndian.PutUint64(b[:8], uint64(now.UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(now.Unix())^uint64(now.Nanosecond()))
	}
	return hex.EncodeToString(b)
}
