package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
	"github.com/phrazzld/taskhub-api/internal/platform/logger"
	"github.com/phrazzld/taskhub-api/internal/store"
)

// CommentService manages comments on tasks.
type CommentService interface {
	// Create adds a comment to taskID. A nil authorID means the caller.
	Create(ctx context.Context, callerID uuid.UUID, taskID uuid.UUID, authorID *uuid.UUID, content string) (*domain.Comment, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	Update(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListByTask(ctx context.Context, taskID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
	ListByUser(ctx context.Context, authorID uuid.UUID, page store.PageRequest) (store.Page[domain.Comment], error)
}

// CommentServiceImpl implements CommentService.
type CommentServiceImpl struct {
	commentStore store.CommentStore
	taskStore    store.TaskStore
	userStore    store.UserStore
	db           *sql.DB
	logger       *slog.Logger
}

var _ CommentService = (*CommentServiceImpl)(nil)

// NewCommentService creates a CommentService.
func NewCommentService(
	commentStore store.CommentStore,
	taskStore store.TaskStore,
	userStore store.UserStore,
	db *sql.DB,
	logger *slog.Logger,
) *CommentServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentServiceImpl{
		commentStore: commentStore,
		taskStore:    taskStore,
		userStore:    userStore,
		db:           db,
		logger:       logger.With(slog.String("component", "comment_service")),
	}
}

// Create implements CommentService.Create
func (s *CommentServiceImpl) Create(
	ctx context.Context,
	callerID uuid.UUID,
	taskID uuid.UUID,
	authorID *uuid.UUID,
	content string,
) (*domain.Comment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	author := callerID
	if authorID != nil {
		author = *authorID
	}

	comment, err := domain.NewComment(content, taskID, author)
	if err != nil {
		return nil, err
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.taskStore.WithTx(tx).GetByID(ctx, taskID); err != nil {
			if errors.Is(err, store.ErrTaskNotFound) {
				return fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
			}
			return err
		}
		if _, err := s.userStore.WithTx(tx).GetByID(ctx, author); err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				return fmt.Errorf("%w: %s", ErrAuthorNotFound, author)
			}
			return err
		}
		return s.commentStore.WithTx(tx).Create(ctx, comment)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	log.Info("comment created",
		slog.String("comment_id", comment.ID.String()),
		slog.String("task_id", taskID.String()))
	return comment, nil
}

// Get implements CommentService.Get
func (s *CommentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	comment, err := s.commentStore.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve comment: %w", err)
	}
	return comment, nil
}

// Update implements CommentService.Update
func (s *CommentServiceImpl) Update(ctx context.Context, id uuid.UUID, content string) (*domain.Comment, error) {
	var updated *domain.Comment
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		comments := s.commentStore.WithTx(tx)
		comment, err := comments.GetByID(ctx, id)
		if err != nil {
			return err
		}
		comment.Content = strings.TrimSpace(content)
		if err := comments.Update(ctx, comment); err != nil {
			return err
		}
		updated = comment
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("comment updated", slog.String("comment_id", id.String()))
	return updated, nil
}

// Delete implements CommentService.Delete
func (s *CommentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.commentStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	logger.FromContextOrDefault(ctx, s.logger).Info("comment deleted", slog.String("comment_id", id.String()))
	return nil
}

// ListByTask implements CommentService.ListByTask
func (s *CommentServiceImpl) ListByTask(
	ctx context.Context,
	taskID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	result, err := s.commentStore.ListByTask(ctx, taskID, page.Normalize())
	if err != nil {
		return store.Page[domain.Comment]{}, fmt.Errorf("failed to list comments by task: %w", err)
	}
	return result, nil
}

// ListByUser implements CommentService.ListByUser
func (s *CommentServiceImpl) ListByUser(
	ctx context.Context,
	authorID uuid.UUID,
	page store.PageRequest,
) (store.Page[domain.Comment], error) {
	result, err := s.commentStore.ListByAuthor(ctx, authorID, page.Normalize())
	if err != nil {
		return store.Page[domain.Comment]{}, fmt.Errorf("failed to list comments by user: %w", err)
	}
	return result, nil
}
