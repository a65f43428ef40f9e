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
	"github.com/phrazzld/taskhub-api/internal/store"
)

// TaskInput carries the writable task fields. On create a nil AuthorID
// means the caller; on update it keeps the current author. Empty Priority
// and Status mean MEDIUM and PENDING. A nil AssigneeID leaves the task
// unassigned.
type TaskInput struct {
	Title       string
	Description string
	Priority    domain.Priority
	Status      domain.Status
	AuthorID    *uuid.UUID
	AssigneeID  *uuid.UUID
}

// TaskService manages tasks.
type TaskService interface {
	Create(ctx context.Context, callerID uuid.UUID, in TaskInput) (*domain.Task, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	// Update replaces the task's writable fields.
	Update(ctx context.Context, id uuid.UUID, in TaskInput) (*domain.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// GetAssignee returns ErrNoAssignee when the task is unassigned.
	GetAssignee(ctx context.Context, id uuid.UUID) (*domain.User, error)

	List(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error)
	ListByStatus(ctx context.Context, status domain.Status, page store.PageRequest) (store.Page[domain.Task], error)
	ListByPriority(ctx context.Context, priority domain.Priority, page store.PageRequest) (store.Page[domain.Task], error)
	ListByUser(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID, page store.PageRequest) (store.Page[domain.Task], error)
}

// TaskServiceImpl implements TaskService.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	userStore store.UserStore
	db        *sql.DB
	logger    *slog.Logger
}

var _ TaskService = (*TaskServiceImpl)(nil)

// NewTaskService creates a TaskService.
func NewTaskService(
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *TaskServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskServiceImpl{
		taskStore: taskStore,
		userStore: userStore,
		db:        db,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// Create implements TaskService.Create. Author and assignee are checked
// and the task inserted in one transaction.
func (s *TaskServiceImpl) Create(ctx context.Context, callerID uuid.UUID, in TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	authorID := callerID
	if in.AuthorID != nil {
		authorID = *in.AuthorID
	}

	task, err := domain.NewTask(in.Title, in.Description, in.Priority, in.Status, authorID, in.AssigneeID)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.checkParticipants(ctx, s.userStore.WithTx(tx), task); err != nil {
			return err
		}
		return s.taskStore.WithTx(tx).Create(ctx, task)
	})
	if err != nil {
		if !errors.Is(err, ErrAuthorNotFound) && !errors.Is(err, ErrAssigneeNotFound) {
			log.Error("failed to create task", slog.String("error", err.Error()))
		}
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("author_id", task.AuthorID.String()))
	return task, nil
}

func (s *TaskServiceImpl) checkParticipants(ctx context.Context, users store.UserStore, task *domain.Task) error {
	if _, err := users.GetByID(ctx, task.AuthorID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("%w: %s", ErrAuthorNotFound, task.AuthorID)
		}
		return err
	}
	if task.AssigneeID != nil {
		if _, err := users.GetByID(ctx, *task.AssigneeID); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("%w: %s", ErrAssigneeNotFound, *task.AssigneeID)
			}
			return err
		}
	}
	return nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	return task, nil
}

// Update implements TaskService.Update
func (s *TaskServiceImpl) Update(ctx context.Context, id uuid.UUID, in TaskInput) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var updated *domain.Task
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.taskStore.WithTx(tx)

		task, err := tasks.GetByID(ctx, id)
		if err != nil {
			return err
		}

		task.Title = in.Title
		task.Description = in.Description
		task.Priority = in.Priority
		if task.Priority == "" {
			task.Priority = domain.PriorityMedium
		}
		task.Status = in.Status
		if task.Status == "" {
			task.Status = domain.StatusPending
		}
		if in.AuthorID != nil {
			task.AuthorID = *in.AuthorID
		}
		task.AssigneeID = in.AssigneeID

		if err := task.Validate(); err != nil {
			return err
		}
		if err := s.checkParticipants(ctx, s.userStore.WithTx(tx), task); err != nil {
			return err
		}
		if err := tasks.Update(ctx, task); err != nil {
			return err
		}
		updated = task
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	log.Info("task updated", slog.String("task_id", id.String()))
	return updated, nil
}

// UpdateStatus implements TaskService.UpdateStatus
func (s *TaskServiceImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) (*domain.Task, error) {
	if err := s.taskStore.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update task status: %w", err)
	}

	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve updated task: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("task status updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(status)))
	return task, nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.taskStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("task deleted", slog.String("task_id", id.String()))
	return nil
}

// GetAssignee implements TaskService.GetAssignee
func (s *TaskServiceImpl) GetAssignee(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	task, err := s.taskStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve task: %w", err)
	}
	if !task.HasAssignee() {
		return nil, ErrNoAssignee
	}

	user, err := s.userStore.GetByID(ctx, *task.AssigneeID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve assignee: %w", err)
	}
	return user, nil
}

// List implements TaskService.List
func (s *TaskServiceImpl) List(ctx context.Context, page store.PageRequest) (store.Page[domain.Task], error) {
	return s.list(ctx, "all", func() (store.Page[domain.Task], error) {
		return s.taskStore.List(ctx, page.Normalize())
	})
}

// ListByStatus implements TaskService.ListByStatus
func (s *TaskServiceImpl) ListByStatus(
	ctx context.Context,
	status domain.Status,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.list(ctx, "status", func() (store.Page[domain.Task], error) {
		return s.taskStore.ListByStatus(ctx, status, page.Normalize())
	})
}

// ListByPriority implements TaskService.ListByPriority
func (s *TaskServiceImpl) ListByPriority(
	ctx context.Context,
	priority domain.Priority,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.list(ctx, "priority", func() (store.Page[domain.Task], error) {
		return s.taskStore.ListByPriority(ctx, priority, page.Normalize())
	})
}

// ListByUser implements TaskService.ListByUser
func (s *TaskServiceImpl) ListByUser(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.list(ctx, "author", func() (store.Page[domain.Task], error) {
		return s.taskStore.ListByAuthor(ctx, authorID, page.Normalize())
	})
}

// ListByAssignee implements TaskService.ListByAssignee
func (s *TaskServiceImpl) ListByAssignee(
	ctx context.Context,
	assigneeID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Task], error) {
	return s.list(ctx, "assignee", func() (store.Page[domain.Task], error) {
		return s.taskStore.ListByAssignee(ctx, assigneeID, page.Normalize())
	})
}

func (s *TaskServiceImpl) list(
	ctx context.Context,
	filter string,
	fetch func() (store.Page[domain.Task], error),
) (store.Page[domain.Task], error) {
	page, err := fetch()
	if err != nil {
		return store.Page[domain.Task]{}, fmt.Errorf("failed to list tasks by %s: %w", filter, err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Debug("tasks listed",
		slog.String("filter", filter),
		slog.Int64("total", page.TotalElements))
	return page, nil
}
