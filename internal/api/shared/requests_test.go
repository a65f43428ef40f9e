package shared_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskhub-api/internal/api/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginBody struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"email":"a@x.com","password":"password1"}`},
		{name: "empty", body: ``, wantErr: true},
		{name: "malformed", body: `{"email":`, wantErr: true},
		{name: "unknown field", body: `{"email":"a@x.com","admin":true}`, wantErr: true},
		{name: "trailing object", body: `{"email":"a@x.com"}{"email":"b@x.com"}`, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			var got loginBody
			err := shared.DecodeJSON(httptest.NewRecorder(), req, &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a@x.com", got.Email)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	assert.NoError(t, shared.ValidateRequest(loginBody{Email: "a@x.com", Password: "password1"}))

	err := shared.ValidateRequest(loginBody{Email: "nope", Password: "short"})
	require.Error(t, err)
	msg := shared.ValidationMessage(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "password must be at least 8 characters")

	assert.Equal(t, "Invalid request format", shared.ValidationMessage(assert.AnError))
}
