package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/service"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// MockUserService is a function-field mock of service.UserService.
// Unset functions return zero values and no error.
type MockUserService struct {
	RegisterFn    func(ctx context.Context, email, name, password string) (*domain.User, error)
	CreateFn      func(ctx context.Context, in service.CreateUserInput) (*domain.User, error)
	GetFn         func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn  func(ctx context.Context, email string) (*domain.User, error)
	ListFn        func(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error)
	UpdateFn      func(ctx context.Context, id uuid.UUID, in service.UpdateUserInput) (*domain.User, error)
	DeleteFn      func(ctx context.Context, id uuid.UUID) error
	EnsureAdminFn func(ctx context.Context, email, password string) (bool, error)
}

var _ service.UserService = (*MockUserService)(nil)

func (m *MockUserService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if m.RegisterFn != nil {
		return m.RegisterFn(ctx, email, name, password)
	}
	return nil, nil
}

func (m *MockUserService) Create(ctx context.Context, in service.CreateUserInput) (*domain.User, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, in)
	}
	return nil, nil
}

func (m *MockUserService) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) List(ctx context.Context, page store.PageRequest) (store.Page[domain.User], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return store.NewPage[domain.User](nil, page, 0), nil
}

func (m *MockUserService) Update(ctx context.Context, id uuid.UUID, in service.UpdateUserInput) (*domain.User, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return nil, store.ErrUserNotFound
}

func (m *MockUserService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockUserService) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	if m.EnsureAdminFn != nil {
		return m.EnsureAdminFn(ctx, email, password)
	}
	return false, nil
}

// MockTaskService is a function-field mock of service.TaskService.
type MockTaskService struct {
	CreateFn         func(ctx context.Context, callerID uuid.UUID, in service.TaskInput) (*domain.Task, error)
	GetFn            func(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	UpdateFn         func(ctx context.Context, id uuid.UUID, in service.TaskInput) (*domain.Task, error)
	UpdateStatusFn   func(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error)
	DeleteFn         func(ctx context.Context, id uuid.UUID) error
	GetAssigneeFn    func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListFn           func(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error)
	ListByStatusFn   func(ctx context.Context, status domain.Status, page store.PageRequest) (store.Page[domain.Task], error)
	ListByPriorityFn func(ctx context.Context, priority domain.Priority, page store.PageRequest) (store.Page[domain.Task], error)
	ListByUserFn     func(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
	ListByAssigneeFn func(ctx context.Context, assigneeID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
}

var _ service.TaskService = (*MockTaskService)(nil)

func (m *MockTaskService) Create(ctx context.Context, callerID uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, callerID, in)
	}
	return nil, nil
}

func (m *MockTaskService) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) Update(ctx context.Context, id uuid.UUID, in service.TaskInput) (*domain.Task, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, in)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error) {
	if m.UpdateStatusFn != nil {
		return m.UpdateStatusFn(ctx, id, status)
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockTaskService) GetAssignee(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetAssigneeFn != nil {
		return m.GetAssigneeFn(ctx, id)
	}
	return nil, service.ErrNoAssignee
}

func (m *MockTaskService) List(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskService) ListByStatus(
	ctx context.Context,
	status domain.Status,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskService) ListByPriority(
	ctx context.Context,
	priority domain.Priority,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByPriorityFn != nil {
		return m.ListByPriorityFn(ctx, priority, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskService) ListByUser(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, authorID, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

func (m *MockTaskService) ListByAssignee(
	ctx context.Context,
	assigneeID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	if m.ListByAssigneeFn != nil {
		return m.ListByAssigneeFn(ctx, assigneeID, page)
	}
	return store.NewPage[domain.Task](nil, page, 0), nil
}

// MockCommentService is a function-field mock of service.CommentService.
type MockCommentService struct {
	CreateFn func(
		ctx context.Context,
		callerID, taskID uuid.UUID,
		authorID *uuid.UUID,
		content string,
	) (*domain.Comment, error)
	GetFn        func(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	UpdateFn     func(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	DeleteFn     func(ctx context.Context, id uuid.UUID) error
	ListByTaskFn func(ctx context.Context, taskID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
	ListByUserFn func(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
}

var _ service.CommentService = (*MockCommentService)(nil)

func (m *MockCommentService) Create(
	ctx context.Context,
	callerID uuid.UUID,
	taskID uuid.UUID,
	authorID *uuid.UUID,
	content string,
) (*domain.Comment, error) {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, callerID, taskID, authorID, content)
	}
	return nil, nil
}

func (m *MockCommentService) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	return nil, store.ErrCommentNotFound
}

func (m *MockCommentService) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, id, content)
	}
	return nil, store.ErrCommentNotFound
}

func (m *MockCommentService) Delete(ctx context.Context, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	return nil
}

func (m *MockCommentService) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	if m.ListByTaskFn != nil {
		return m.ListByTaskFn(ctx, taskID, page)
	}
	return store.NewPage[domain.Comment](nil, page, 0), nil
}

func (m *MockCommentService) ListByUser(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	if m.ListByUserFn != nil {
		return m.ListByUserFn(ctx, authorID, page)
	}
	return store.NewPage[domain.Comment](nil, page, 0), nil
}
