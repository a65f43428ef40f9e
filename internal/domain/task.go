package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxTitleLength bounds task titles.
const MaxTitleLength = 255

// Priority orders tasks by urgency.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// ParsePriority parses a priority name case-insensitively.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToUpper(strings.TrimSpace(s))); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", NewValidationError("priority", "must be LOW, MEDIUM or HIGH", ErrInvalidPriority)
	}
}

// Status is the lifecycle stage of a task.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// ParseStatus parses a status name case-insensitively.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusInProgress, StatusCompleted:
		return st, nil
	default:
		return "", NewValidationError("status", "must be PENDING, IN_PROGRESS or COMPLETED", ErrInvalidStatus)
	}
}

// Task is a unit of work authored by one user and optionally assigned to another.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `json:"priority"`
	Status      Status     `json:"status"`
	AuthorID    uuid.UUID  `json:"author_id"`
	AssigneeID  *uuid.UUID `json:"assignee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a validated task. Empty priority and status default to
// MEDIUM and PENDING.
func NewTask(
	title, description string,
	priority Priority,
	status Status,
	authorID uuid.UUID,
	assigneeID *uuid.UUID,
) (*Task, error) {
	if priority == "" {
		priority = PriorityMedium
	}
	if status == "" {
		status = StatusPending
	}
	now := time.Now().UTC()
	t := &Task{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Priority:    priority,
		Status:      status,
		AuthorID:    authorID,
		AssigneeID:  assigneeID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the task's fields.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return NewValidationError("id", "cannot be empty", ErrInvalidID)
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title", "cannot be empty", ErrEmptyContent)
	}
	if len(t.Title) > MaxTitleLength {
		return NewValidationError("title", "is too long", nil)
	}
	if _, err := ParsePriority(string(t.Priority)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(t.Status)); err != nil {
		return err
	}
	if t.AuthorID == uuid.Nil {
		return NewValidationError("author_id", "cannot be empty", ErrInvalidID)
	}
	if t.AssigneeID != nil && *t.AssigneeID == uuid.Nil {
		return NewValidationError("assignee_id", "cannot be the nil UUID", ErrInvalidID)
	}
	return nil
}

// HasAssignee reports whether the task is assigned to someone.
func (t *Task) HasAssignee() bool {
	return t.AssigneeID != nil
}
