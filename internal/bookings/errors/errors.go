package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	// ErrStatusConflict means the booking left WAITING before the update applied.
	ErrStatusConflict = errors.New("booking is no longer waiting")

	ErrUnsupportedState = errors.New("unsupported booking state")
)
