package service

import (
	"context"
	"errors"
	"fmt"

	userserrors "shareit/internal/users/errors"
	"shareit/internal/users/repository"
	"shareit/internal/users/validator"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"
)

type UserService interface {
	Create(ctx context.Context, input *model.UserCreate) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetAll(ctx context.Context) ([]*model.User, error)
	Update(ctx context.Context, id int64, updates *model.UserUpdate) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type userService struct {
	repo      repository.UserRepository
	validator *validator.UserValidator
	cfg       *config.Config
}

func NewUserService(
	repo repository.UserRepository,
	validator *validator.UserValidator,
	cfg *config.Config,
) UserService {
	return &userService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *userService) Create(ctx context.Context, input *model.UserCreate) (*model.User, error) {
	input.Name = sanitizer.SanitizeName(input.Name)
	input.Email = sanitizer.SanitizeEmail(input.Email)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("User validation failed", "email", input.Email, "error", err)
		return nil, validation.ToAppError("User", err)
	}

	user := &model.User{
		Name:     input.Name,
		Email:    input.Email,
		EmailKey: sanitizer.EmailKey(input.Email),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, s.mapError(err, "create", 0)
	}

	s.cfg.Log.Info("User created successfully", "id", user.ID, "email", user.Email)
	return user, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "get", id)
	}
	return user, nil
}

func (s *userService) GetAll(ctx context.Context) ([]*model.User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.mapError(err, "list", 0)
	}
	return users, nil
}

func (s *userService) Update(ctx context.Context, id int64, updates *model.UserUpdate) (*model.User, error) {
	updates.Name = sanitizer.SanitizeOptional(updates.Name, sanitizer.SanitizeName)
	updates.Email = sanitizer.SanitizeOptional(updates.Email, sanitizer.SanitizeEmail)

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("User update validation failed", "id", id, "error", err)
		return nil, validation.ToAppError("User", err)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "update", id)
	}

	if updates.Name != nil {
		user.Name = *updates.Name
	}
	if updates.Email != nil {
		user.Email = *updates.Email
		user.EmailKey = sanitizer.EmailKey(*updates.Email)
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, s.mapError(err, "update", id)
	}

	s.cfg.Log.Info("User updated successfully", "id", id)
	return user, nil
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, "delete", id)
	}
	s.cfg.Log.Info("User deleted successfully", "id", id)
	return nil
}

func (s *userService) mapError(err error, operation string, id int64) error {
	switch {
	case errors.Is(err, userserrors.ErrNotFound):
		return apperrors.NotFoundWithID("User", id)
	case errors.Is(err, userserrors.ErrDuplicateEmail):
		return apperrors.Conflict("User with this email already exists")
	}
	s.cfg.Log.Error("User repository operation failed",
		"operation", operation,
		"id", id,
		"error", err,
	)
	return apperrors.Internal(fmt.Sprintf("Failed to %s user", operation), err)
}
