package validator

import (
	"time"

	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type BookingValidator struct {
	validate *validator.Validate
}

func NewBookingValidator() *BookingValidator {
	return &BookingValidator{validate: validation.New()}
}

// ValidateCreate checks the payload shape and that end comes strictly after start.
func (v *BookingValidator) ValidateCreate(booking *model.BookingCreate) error {
	if err := validation.Struct(v.validate, booking); err != nil {
		return err
	}
	if !booking.End.After(booking.Start.Time) {
		return validation.ValidationError{Field: "end", Message: "must be after start"}
	}
	return nil
}

// ValidateWindow additionally requires the booking to lie ahead of now.
// The gateway applies it; the server only enforces ordering.
func (v *BookingValidator) ValidateWindow(booking *model.BookingCreate, now time.Time) error {
	if err := v.ValidateCreate(booking); err != nil {
		return err
	}

	var errs validation.ValidationErrors
	if booking.Start.Before(now) {
		errs = append(errs, validation.ValidationError{Field: "start", Message: "must not be in the past"})
	}
	if !booking.End.After(now) {
		errs = append(errs, validation.ValidationError{Field: "end", Message: "must be in the future"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
