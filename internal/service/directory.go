package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// UserDirectory resolves token subjects (emails) to principals from a UserStore.
type UserDirectory struct {
	users store.UserStore
}

// NewUserDirectory creates a UserDirectory over users.
func NewUserDirectory(users store.UserStore) *UserDirectory {
	return &UserDirectory{users: users}
}

var _ auth.Directory = (*UserDirectory)(nil)

// FindPrincipal implements auth.Directory.
func (d *UserDirectory) FindPrincipal(ctx context.Context, subject string) (*auth.Principal, error) {
	user, err := d.users.GetByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %v", auth.ErrSubjectUnresolved, err)
		}
		return nil, err
	}
	return PrincipalFromUser(user), nil
}

// PrincipalFromUser builds the auth view of a user.
func PrincipalFromUser(user *domain.User) *auth.Principal {
	return &auth.Principal{
		Subject:        user.Email,
		UserID:         user.ID,
		Roles:          []string{string(user.Role)},
		Enabled:        user.Enabled,
		HashedPassword: user.HashedPassword,
	}
}
