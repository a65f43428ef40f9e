package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MockUserStore is a function-field mock of store.UserStore. WithTx returns
// the mock itself so transactional code reaches the same functions.
type MockUserStore struct {
	CreateFn     func(ctx context.Context, user *domain.User) error
	GetByIDFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	ListFn       func(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error)
	UpdateFn     func(ctx context.Context, user *domain.User) error
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
}

var _ store.UserStore = (*MockUserStore)(nil)

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserStore) List(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return store.NewPage[domain.User](nil, page, 0), nil
}

func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, user)
	}
	return nil
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

// NewUserStoreWith returns a MockUserStore answering GetByID and GetByEmail
// from users.
func NewUserStoreWith(users ...*domain.User) *MockUserStore {
	return &MockUserStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.User, error) {
			for _, u := range users {
				if u.ID == id {
					copied := *u
					return &copied, nil
				}
			}
			return nil, store.ErrUserNotFound
		},
		GetByEmailFn: func(ctx context.Context, email string) (*domain.User, error) {
			for _, u := range users {
				if u.Email == domain.NormalizeEmail(email) {
					copied := *u
					return &copied, nil
				}
			}
			return nil, store.ErrUserNotFound
		},
	}
}
