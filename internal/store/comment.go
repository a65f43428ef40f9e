package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// CommentStore defines the interface for comment data persistence.
// Comments are removed with their task.
type CommentStore interface {
	// Create returns ErrInvalidEntity if the task or author does not exist.
	Create(ctx context.Context, comment *domain.Comment) error

	// GetByID returns ErrCommentNotFound if the comment does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Comment, error)

	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id uuid.UUID) error

	ListByTask(ctx context.Context, taskID uuid.UUID, page PageRequest) (Page[domain.Comment], error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, page PageRequest) (Page[domain.Comment], error)

	WithTx(tx *sql.Tx) CommentStore
}
