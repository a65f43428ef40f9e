package mocks

import (
	"context"

	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/stretchr/testify/mock"
)

// TestifyMockDirectory is a testify/mock implementation of auth.Directory.
type TestifyMockDirectory struct {
	mock.Mock
}

var _ auth.Directory = (*TestifyMockDirectory)(nil)

// FindPrincipal is a mock implementation of auth.Directory.FindPrincipal
func (m *TestifyMockDirectory) FindPrincipal(ctx context.Context, subject string) (*auth.Principal, error) {
	args := m.Called(ctx, subject)
	if p, ok := args.Get(0).(*auth.Principal); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}
