package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MockTaskStore is a function-field mock of store.TaskStore.
type MockTaskStore struct {
	CreateFn         func(ctx context.Context, task *domain.Task) error
	GetByIDFn        func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, task *domain.Task) error
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status domain.Status) error
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	ListFn           func(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error)
	ListByStatusFn   func(ctx context.Context, status domain.Status, page store.PageRequest) (store.Page[domain.Task], error)
	ListByPriorityFn func(ctx context.Context, priority domain.Priority, page store.PageRequest) (store.Page[domain.Task], error)
	ListByAuthorFn   func(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
	ListByAssigneeFn func(ctx context.Context, assigneeID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
}

var _ store.TaskStore = (*MockTaskStore)(nil)

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return nil
}

func (m *MockTaskStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil
}

func (m *MockTaskStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockTaskStore) List(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskStore) ListByStatus(
	ctx context.Context,
	status domain.Status,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskStore) ListByPriority(
	ctx context.Context,
	priority domain.Priority,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByPriorityFn != nil {
		return m.ListByPriorityFn(ctx, priority, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskStore) ListByAuthor(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskStore) ListByAssignee(
	ctx context.Context,
	assigneeID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByAssigneeFn != nil {
		return m.ListByAssigneeFn(ctx, assigneeID, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
