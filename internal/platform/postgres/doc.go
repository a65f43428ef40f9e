// Package postgres implements the store interfaces on PostgreSQL through
// database/sql and the pgx stdlib driver. It maps pg error codes onto the
// store sentinel errors so callers never see driver types.
package postgres
