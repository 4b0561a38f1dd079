package validator

import (
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validate: validation.New()}
}

func (v *RequestValidator) ValidateCreate(request *model.RequestCreate) error {
	return validation.Struct(v.validate, request)
}
