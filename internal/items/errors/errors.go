package errors

import "errors"

var (
	ErrNotFound = errors.New("item not found")

	// ErrHasBookings blocks deleting an item that bookings still reference.
	ErrHasBookings = errors.New("item has bookings")
)
