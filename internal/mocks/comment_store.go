package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MockCommentStore is a function-field mock of store.CommentStore.
type MockCommentStore struct {
	CreateFn       func(ctx context.Context, comment *domain.Comment) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateFn       func(ctx context.Context, comment *domain.Comment) error
	DeleteFn       func(ctx context.Context, id uuid.UUID) error
	ListByTaskFn   func(ctx context.Context, taskID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
	ListByAuthorFn func(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
}

var _ store.CommentStore = (*MockCommentStore)(nil)

func (m *MockCommentStore) Create(ctx context.Context, comment *domain.Comment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, comment)
	}
	return nil
}

func (m *MockCommentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, store.ErrCommentNotFound
}

func (m *MockCommentStore) Update(ctx context.Context, comment *domain.Comment) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, comment)
	}
	return nil
}

func (m *MockCommentStore) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockCommentStore) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID, page)
	}
	return store.NewPage[domain.Comment](nil, page, 0), nil
}

func (m *MockCommentStore) ListByAuthor(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	if m.ListByAuthorFn != nil {
		return m.ListByAuthorFn(ctx, authorID, page)
	}
	return store.NewPage[domain.Comment](nil, page, 0), nil
}

func (m *MockCommentStore) WithTx(tx *sql.Tx) store.CommentStore {
	return m
}
