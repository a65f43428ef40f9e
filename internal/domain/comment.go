package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxCommentLength bounds comment bodies.
const MaxCommentLength = 2000

// Comment is a note left on a task.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	Content   string    `json:"content"`
	TaskID    uuid.UUID `json:"task_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewComment creates a validated comment.
func NewComment(content string, taskID, authorID uuid.UUID) (*Comment, error) {
	now := time.Now().UTC()
	c := &Comment{
		ID:        uuid.New(),
		Content:   strings.TrimSpace(content),
		TaskID:    taskID,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the comment's fields.
func (c *Comment) Validate() error {
	if c.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(c.Content) == "" {
		return NewValidationError("content", "cannot be empty", ErrEmptyContent)
	}
	if len(c.Content) > MaxCommentLength {
		return NewValidationError("content", "is too long", nil)
	}
	if c.TaskID == uuid.Nil {
		return NewValidationError("task_id", "cannot be empty", ErrInvalidID)
	}
	if c.AuthorID == uuid.Nil {
		return NewValidationError("author_id", "cannot be empty", ErrInvalidID)
	}
	return nil
}
