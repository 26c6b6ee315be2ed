package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrStatusChanged means the guarded status update matched no document:
	// either the booking vanished or its status moved underneath us.
	ErrStatusChanged = errors.New("booking status changed concurrently")
)
