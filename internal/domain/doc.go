// Package domain holds the taskhub entities (users, tasks, comments), their
// enumerations and the validation rules every store and service relies on.
package domain
