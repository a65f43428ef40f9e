package auth

import (
	"context"
	"slices"

	"github.com/google/uuid"
)

// Principal is the identity a subject resolves to. The auth core only reads it.
type Principal struct {
	Subject        string
	UserID         uuid.UUID
	Roles          []string
	Enabled        bool
	HashedPassword string
}

// HasRole reports whether the principal holds role.
func (p *Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// Directory resolves subjects to principals. Implementations return an
// error matching ErrSubjectUnresolved when no principal exists; any other
// error is treated as the directory being unavailable.
type Directory interface {
	FindPrincipal(ctx context.Context, subject string) (*Principal, error)
}
