package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/redact"
	"github.com/phrazzld/taskhub-api/internal/service/auth"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// CreateUserInput carries the fields for a new account.
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Role     domain.Role
}

// UpdateUserInput is a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string
	Name     *string
	Password *string
	Role     *domain.Role
	Enabled  *bool
}

// UserService manages accounts.
type UserService interface {
	// Register creates a self-service account. The role is always USER.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)

	// Create creates an account with any role. Empty role means USER.
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)

	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error)
	Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// EnsureAdmin creates an ADMIN account for email unless one with that
	// email already exists. It reports whether an account was created.
	EnsureAdmin(ctx context.Context, email, password string) (bool, error)
}

// UserServiceImpl implements UserService.
type UserServiceImpl struct {
	userStore store.UserStore
	hasher    auth.PasswordHasher
	db        *sql.DB
	logger    *slog.Logger
}

var _ UserService = (*UserServiceImpl)(nil)

// NewUserService creates a UserService.
func NewUserService(
	userStore store.UserStore,
	hasher auth.PasswordHasher,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		hasher:    hasher,
		db:        db,
		logger:    logger.With(slog.String("component", "user_service")),
	}
}

// Register implements UserService.Register
func (s *UserServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	return s.Create(ctx, CreateUserInput{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     domain.RoleUser,
	})
}

// Create implements UserService.Create
func (s *UserServiceImpl) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := domain.NewUser(in.Email, in.Name, in.Password, in.Role)
	if err != nil {
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		log.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			log.Debug("email already registered", slog.String("email", redact.String(user.Email)))
		} else {
			log.Error("failed to save user", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("user created",
		slog.String("user_id", user.ID.String()),
		slog.String("role", string(user.Role)))
	return user, nil
}

// Get implements UserService.Get
func (s *UserServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// GetByEmail implements UserService.GetByEmail
func (s *UserServiceImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return user, nil
}

// List implements UserService.List
func (s *UserServiceImpl) List(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error) {
	result, err := s.userStore.List(ctx, page.Normalize())
	if err != nil {
		return store.Page[domain.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return result, nil
}

// Update implements UserService.Update. The read and the write share one
// transaction.
func (s *UserServiceImpl) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.User
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.userStore.WithTx(tx)

		user, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if err := applyUserUpdate(user, in, s.hasher); err != nil {
			return err
		}

		if err := txStore.Update(ctx, user); err != nil {
			return err
		}
		updated = user
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrValidation) && !store.IsNotFoundError(err) && !store.IsDuplicateError(err) {
			log.Error("failed to update user",
				slog.String("error", err.Error()),
				slog.String("user_id", id.String()))
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	log.Info("user updated", slog.String("user_id", id.String()))
	return updated, nil
}

func applyUserUpdate(user *domain.User, in UpdateUserInput, hasher auth.PasswordHasher) error {
	if in.Email != nil {
		user.Email = domain.NormalizeEmail(*in.Email)
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.Enabled != nil {
		user.Enabled = *in.Enabled
	}
	if in.Password != nil {
		user.Password = *in.Password
	}

	if err := user.Validate(); err != nil {
		return err
	}

	if in.Password != nil {
		hashed, err := hasher.Hash(user.Password)
		if err != nil {
			return err
		}
		user.HashedPassword = hashed
		user.Password = ""
	}
	return nil
}

// Delete implements UserService.Delete
func (s *UserServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

// EnsureAdmin implements UserService.EnsureAdmin
func (s *UserServiceImpl) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	_, err := s.userStore.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return false, nil
	case !errors.Is(err, store.ErrUserNotFound):
		return false, fmt.Errorf("failed to look up bootstrap admin: %w", err)
	}

	if _, err := s.Create(ctx, CreateUserInput{
		Email:    email,
		Name:     "Administrator",
		Password: password,
		Role:     domain.RoleAdmin,
	}); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
