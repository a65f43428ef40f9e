package middleware_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/api/middleware"
	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/phrazzld/taskhub-api/internal/mocks"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "test-signing-key-that-is-32-chars-long"
	otherSecret = "another-signing-key-of-32-chars-or-more"
	testSubject = "alice@example.com"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

type directoryFunc func(ctx context.Context, subject string) (*auth.Principal, error)

func (f directoryFunc) FindPrincipal(ctx context.Context, subject string) (*auth.Principal, error) {
	return f(ctx, subject)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCodec(t *testing.T, secret string, clock *fakeClock) *auth.TokenCodec {
	t.Helper()
	codec, err := auth.NewTokenCodec(secret, 30*time.Minute, 0, auth.WithClock(clock.Now))
	require.NoError(t, err)
	return codec
}

func mint(t *testing.T, codec *auth.TokenCodec, subject string) string {
	t.Helper()
	token, err := codec.Mint(context.Background(), subject)
	require.NoError(t, err)
	return token.Value
}

// serve runs one request through the authenticator and reports the identity
// seen by the next handler. It fails the test if next is not called.
func serve(t *testing.T, mw *middleware.RequestAuthenticator, req *http.Request) *shared.Identity {
	t.Helper()
	var (
		called   bool
		identity *shared.Identity
	)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		identity, _ = shared.IdentityFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	rec := httptest.NewRecorder()
	mw.Middleware(next).ServeHTTP(rec, req)

	require.True(t, called, "next handler must always run")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	return identity
}

func TestRequestAuthenticator(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	principal := &auth.Principal{
		Subject:        testSubject,
		UserID:         userID,
		Roles:          []string{"USER"},
		Enabled:        true,
		HashedPassword: "irrelevant",
	}

	tests := []struct {
		name         string
		header       func(t *testing.T, issuer, foreign *auth.TokenCodec, clock *fakeClock) string
		directory    func(ctx context.Context, subject string) (*auth.Principal, error)
		wantIdentity bool
		wantLookups  int32
	}{
		{
			name:        "no header",
			header:      func(*testing.T, *auth.TokenCodec, *auth.TokenCodec, *fakeClock) string { return "" },
			wantLookups: 0,
		},
		{
			name:        "non bearer scheme",
			header:      func(*testing.T, *auth.TokenCodec, *auth.TokenCodec, *fakeClock) string { return "Basic YWxpY2U6cHc=" },
			wantLookups: 0,
		},
		{
			name:        "bearer without token",
			header:      func(*testing.T, *auth.TokenCodec, *auth.TokenCodec, *fakeClock) string { return "Bearer " },
			wantLookups: 0,
		},
		{
			name:        "garbage token",
			header:      func(*testing.T, *auth.TokenCodec, *auth.TokenCodec, *fakeClock) string { return "Bearer not.a.jwt" },
			wantLookups: 0,
		},
		{
			name: "foreign signature",
			header: func(t *testing.T, _, foreign *auth.TokenCodec, _ *fakeClock) string {
				return "Bearer " + mint(t, foreign, testSubject)
			},
			wantLookups: 0,
		},
		{
			name: "valid token",
			header: func(t *testing.T, issuer, _ *auth.TokenCodec, _ *fakeClock) string {
				return "Bearer " + mint(t, issuer, testSubject)
			},
			wantIdentity: true,
			wantLookups:  1,
		},
		{
			name: "expired token",
			header: func(t *testing.T, issuer, _ *auth.TokenCodec, clock *fakeClock) string {
				token := mint(t, issuer, testSubject)
				clock.now = clock.now.Add(time.Hour)
				return "Bearer " + token
			},
			wantLookups: 0,
		},
		{
			name: "unknown subject",
			header: func(t *testing.T, issuer, _ *auth.TokenCodec, _ *fakeClock) string {
				return "Bearer " + mint(t, issuer, "ghost@example.com")
			},
			directory: func(context.Context, string) (*auth.Principal, error) {
				return nil, auth.ErrSubjectUnresolved
			},
			wantLookups: 1,
		},
		{
			name: "disabled principal",
			header: func(t *testing.T, issuer, _ *auth.TokenCodec, _ *fakeClock) string {
				return "Bearer " + mint(t, issuer, testSubject)
			},
			directory: func(context.Context, string) (*auth.Principal, error) {
				disabled := *principal
				disabled.Enabled = false
				return &disabled, nil
			},
			wantLookups: 1,
		},
		{
			name: "directory unavailable",
			header: func(t *testing.T, issuer, _ *auth.TokenCodec, _ *fakeClock) string {
				return "Bearer " + mint(t, issuer, testSubject)
			},
			directory: func(context.Context, string) (*auth.Principal, error) {
				return nil, errors.New("connection refused")
			},
			wantLookups: 1,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
			issuer := newCodec(t, testSecret, clock)
			foreign := newCodec(t, otherSecret, clock)

			var lookups atomic.Int32
			find := tt.directory
			if find == nil {
				find = func(context.Context, string) (*auth.Principal, error) { return principal, nil }
			}
			dir := directoryFunc(func(ctx context.Context, subject string) (*auth.Principal, error) {
				lookups.Add(1)
				return find(ctx, subject)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
			if h := tt.header(t, issuer, foreign, clock); h != "" {
				req.Header.Set("Authorization", h)
			}

			mw := middleware.NewRequestAuthenticator(issuer, dir, time.Second, quietLogger())
			identity := serve(t, mw, req)

			assert.Equal(t, tt.wantLookups, lookups.Load())
			if !tt.wantIdentity {
				assert.Nil(t, identity)
				return
			}
			require.NotNil(t, identity)
			assert.Equal(t, userID, identity.UserID)
			assert.Equal(t, testSubject, identity.Subject)
			assert.Equal(t, []string{"USER"}, identity.Roles)
		})
	}
}

func TestRequestAuthenticatorKeepsExistingIdentity(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, testSecret, clock)

	dir := &mocks.TestifyMockDirectory{}
	mw := middleware.NewRequestAuthenticator(codec, dir, time.Second, quietLogger())

	existing := &shared.Identity{UserID: uuid.New(), Subject: "first@example.com", Roles: []string{"ADMIN"}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, _ := shared.WithIdentity(req.Context(), existing)
	req = req.WithContext(ctx)
	req.Header.Set("Authorization", "Bearer "+mint(t, codec, testSubject))

	identity := serve(t, mw, req)

	require.NotNil(t, identity)
	assert.Equal(t, "first@example.com", identity.Subject)
	dir.AssertNotCalled(t, "FindPrincipal", mock.Anything, mock.Anything)
}

func TestRequestAuthenticatorUsesDirectoryForSubject(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, testSecret, clock)
	admin := &auth.Principal{Subject: testSubject, UserID: uuid.New(), Roles: []string{"ADMIN"}, Enabled: true}

	dir := &mocks.TestifyMockDirectory{}
	dir.On("FindPrincipal", mock.Anything, testSubject).Return(admin, nil).Once()

	mw := middleware.NewRequestAuthenticator(codec, dir, time.Second, quietLogger())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, codec, testSubject))

	identity := serve(t, mw, req)

	require.NotNil(t, identity)
	assert.True(t, identity.HasRole("ADMIN"))
	dir.AssertExpectations(t)
}

func TestRequestAuthenticatorBoundsLookup(t *testing.T) {
	t.Parallel()

	clock := &fakeClock{now: time.Now()}
	codec := newCodec(t, testSecret, clock)

	var sawDeadline atomic.Bool
	dir := directoryFunc(func(ctx context.Context, _ string) (*auth.Principal, error) {
		_, ok := ctx.Deadline()
		sawDeadline.Store(ok)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	mw := middleware.NewRequestAuthenticator(codec, dir, 20*time.Millisecond, quietLogger())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+mint(t, codec, testSubject))

	start := time.Now()
	identity := serve(t, mw, req)

	assert.Nil(t, identity)
	assert.True(t, sawDeadline.Load())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", want: "abc.def.ghi", ok: true},
		{header: "Bearer  padded ", want: "padded", ok: true},
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "bearer abc", ok: false},
		{header: "Token abc", ok: false},
		{header: "Bearer two parts", ok: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.header, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			got, ok := middleware.BearerToken(req)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
