package store

import "errors"

var (
	// ErrNotFound is returned when a lookup by id or unique name
	// matches no row.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when an insert violates a unique
	// constraint (username or email already taken).
	ErrConflict = errors.New("already exists")
)
