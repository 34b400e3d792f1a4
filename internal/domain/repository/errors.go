package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no record.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when creating a user with an email that
	// already exists (unique constraint on users.email).
	ErrEmailTaken = errors.New("email already registered")
)
