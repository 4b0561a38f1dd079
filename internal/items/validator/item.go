package validator

import (
	"shareit/pkg/model"
	"shareit/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ItemValidator struct {
	validate *validator.Validate
}

func NewItemValidator() *ItemValidator {
	return &ItemValidator{validate: validation.New()}
}

func (v *ItemValidator) ValidateCreate(item *model.ItemCreate) error {
	return validation.Struct(v.validate, item)
}

func (v *ItemValidator) ValidateUpdate(update *model.ItemUpdate) error {
	return validation.Struct(v.validate, update)
}

func (v *ItemValidator) ValidateComment(comment *model.CommentCreate) error {
	return validation.Struct(v.validate, comment)
}
