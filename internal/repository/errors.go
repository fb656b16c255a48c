package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique field is already taken or a
	// record already exists.
	ErrConflict = errors.New("already exists")
	// ErrForbidden is returned when a user modifies a record they do not own.
	ErrForbidden = errors.New("forbidden")
)
