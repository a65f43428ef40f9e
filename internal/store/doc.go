// Package store declares the persistence contracts for users, tasks and
// comments, the sentinel errors implementations return, and the transaction
// helper services use when several writes must land together.
package store
