package repository

import "errors"

var (
	// ErrNotFound indicates the requested row does not exist (or is not
	// visible to the requesting user for owner-scoped lookups).
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a write violated a uniqueness constraint.
	ErrConflict = errors.New("constraint violation")
)
