package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup misses.
	ErrNotFound = errors.New("not found")
	// ErrUsernameTaken is returned by UserRepository.Create when the
	// username is already claimed.
	ErrUsernameTaken = errors.New("username already taken")
)
