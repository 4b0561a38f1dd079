package validator

import (
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type UserValidator struct {
	validate *validator.Validate
}

func NewUserValidator() *UserValidator {
	return &UserValidator{validate: validation.New()}
}

func (v *UserValidator) ValidateCreate(user *model.UserCreate) error {
	return validation.Struct(v.validate, user)
}

// ValidateUpdate rejects a patch that would blank out a field.
func (v *UserValidator) ValidateUpdate(update *model.UserUpdate) error {
	return validation.Struct(v.validate, update)
}
