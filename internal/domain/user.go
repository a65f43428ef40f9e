package domain

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Password length bounds. 72 bytes is bcrypt's input limit.
const (
	MinPasswordLength = 8
	MaxPasswordLength = 72
	MaxNameLength     = 100
)

var validate = validator.New()

// Role is the authority a user holds.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole parses a role name case-insensitively.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleUser, RoleAdmin:
		return r, nil
	default:
		return "", NewValidationError("role", "must be USER or ADMIN", ErrInvalidRole)
	}
}

// User is a registered account. Email doubles as the login subject.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	Password       string    `json:"-"` // plaintext, only set between request and hashing
	HashedPassword string    `json:"-"`
	Role           Role      `json:"role"`
	Enabled        bool      `json:"enabled"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates an enabled user with a fresh ID. The password is kept in
// plaintext on the returned value; callers hash it before storage.
func NewUser(email, name, password string, role Role) (*User, error) {
	if role == "" {
		role = RoleUser
	}
	now := time.Now().UTC()
	u := &User{
		ID:        uuid.New(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		Password:  password,
		Role:      role,
		Enabled:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return u, nil
}

// NormalizeEmail trims and lower-cases an address so lookups are stable.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks the user's fields. Either a plaintext password within
// bounds or an existing hash must be present.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if u.Email == "" {
		return NewValidationError("email", "cannot be empty", ErrInvalidEmail)
	}
	if err := validate.Var(u.Email, "email"); err != nil {
		return NewValidationError("email", "has invalid format", ErrInvalidEmail)
	}
	if len(u.Name) > MaxNameLength {
		return NewValidationError("name", "is too long", nil)
	}
	if _, err := ParseRole(string(u.Role)); err != nil {
		return err
	}
	if err := ValidatePassword(u.Password); u.Password != "" && err != nil {
		return err
	}
	if u.Password == "" && u.HashedPassword == "" {
		return NewValidationError("password", "cannot be empty", ErrInvalidPassword)
	}
	return nil
}

// ValidatePassword checks a plaintext password against the length bounds.
func ValidatePassword(password string) error {
	switch {
	case len(password) < MinPasswordLength:
		return NewValidationError("password", "is too short", ErrInvalidPassword)
	case len(password) > MaxPasswordLength:
		return NewValidationError("password", "is too long", ErrInvalidPassword)
	default:
		return nil
	}
}

// HasRole reports whether the user holds role.
func (u *User) HasRole(role Role) bool {
	return u.Role == role
}
