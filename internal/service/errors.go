package service

import "errors"

// Sentinel errors returned by the services. The API layer maps each one to a
// status code; callers check them with errors.Is.
var (
	// ErrAuthorNotFound is returned when a task's author does not exist.
	ErrAuthorNotFound = errors.New("author not found")

	// ErrAssigneeNotFound is returned when a task's assignee does not exist.
	ErrAssigneeNotFound = errors.New("assignee not found")

	// ErrNoAssignee is returned when asking for the assignee of an unassigned task.
	ErrNoAssignee = errors.New("task has no assignee")

	// ErrTaskNotFound is returned when a comment targets a missing task.
	ErrTaskNotFound = errors.New("task not found")
)
