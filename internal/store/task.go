package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/taskhub-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Referencing a missing user returns ErrInvalidEntity.
type TaskStore interface {
	Create(ctx context.Context, task *domain.Task) error

	// GetByID returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)

	Update(ctx context.Context, task *domain.Task) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	Delete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, page PageRequest) (Page[domain.Task], error)
	ListByStatus(ctx context.Context, status domain.Status, page PageRequest) (Page[domain.Task], error)
	ListByPriority(ctx context.Context, priority domain.Priority, page PageRequest) (Page[domain.Task], error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID, page PageRequest) (Page[domain.Task], error)
	ListByAssignee(ctx context.Context, assigneeID uuid.UUID, page PageRequest) (Page[domain.Task], error)

	WithTx(tx *sql.Tx) TaskStore
}
