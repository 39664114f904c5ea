package domain

import "errors"

var (
	// ErrNotFound indicates a referenced player or week does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidFormat indicates an import payload is missing the expected shape.
	ErrInvalidFormat = errors.New("invalid format")
	// ErrInvalidField indicates an edit named a field players do not have.
	ErrInvalidField = errors.New("invalid field")
)
