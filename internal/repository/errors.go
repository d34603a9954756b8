package repository

import "errors"

var (
	// ErrNotFound is returned when a record does not exist or belongs to a
	// different owner. The two cases are deliberately indistinguishable so
	// callers cannot probe for other users' records.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken is returned when creating a user whose username is
	// already registered.
	ErrUsernameTaken = errors.New("username already taken")
)
