package service

import (
	"fmt"

	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
)

// nextStatus returns the status an owner decision moves a booking to.
// Only WAITING bookings can be decided.
func nextStatus(current model.BookingStatus, approved bool) (model.BookingStatus, error) {
	switch current {
	case model.StatusWaiting:
		if approved {
			return model.StatusApproved, nil
		}
		return model.StatusRejected, nil
	case model.StatusApproved:
		return "", apperrors.BadRequest("Booking is already approved")
	case model.StatusRejected:
		return "", apperrors.BadRequest("Booking is already rejected")
	default:
		return "", apperrors.Internal(fmt.Sprintf("Booking has unknown status %q", current), nil)
	}
}
