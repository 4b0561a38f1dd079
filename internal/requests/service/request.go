package service

import (
	"context"
	"errors"

	requestserrors "shareit/internal/requests/errors"
	"shareit/internal/requests/repository"
	"shareit/internal/requests/validator"
	userserrors "shareit/internal/users/errors"
	"shareit/pkg/clock"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"
)

type RequestService interface {
	Create(ctx context.Context, requesterID int64, input *model.RequestCreate) (*model.RequestView, error)
	GetOwn(ctx context.Context, requesterID int64) ([]*model.RequestView, error)
	GetAll(ctx context.Context, userID int64, page model.Page) ([]*model.RequestView, error)
	GetByID(ctx context.Context, userID, requestID int64) (*model.RequestView, error)
}

type requestService struct {
	repo      repository.RequestRepository
	users     UserReader
	items     ItemReader
	validator *validator.RequestValidator
	clock     clock.Clock
	cfg       *config.Config
}

func NewRequestService(
	repo repository.RequestRepository,
	users UserReader,
	items ItemReader,
	validator *validator.RequestValidator,
	clk clock.Clock,
	cfg *config.Config,
) RequestService {
	return &requestService{
		repo:      repo,
		users:     users,
		items:     items,
		validator: validator,
		clock:     clk,
		cfg:       cfg,
	}
}

func (s *requestService) Create(ctx context.Context, requesterID int64, input *model.RequestCreate) (*model.RequestView, error) {
	input.Description = sanitizer.SanitizeText(input.Description)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Request validation failed", "requester_id", requesterID, "error", err)
		return nil, validation.ToAppError("Request", err)
	}

	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	request := &model.Request{
		Description: input.Description,
		RequesterID: requesterID,
		Created:     s.clock.Now(),
	}
	if err := s.repo.Create(ctx, request); err != nil {
		return nil, s.internal("create request", err)
	}

	s.cfg.Log.Info("Request created successfully", "id", request.ID, "requester_id", requesterID)
	return mergeItems([]*model.Request{request}, nil)[0], nil
}

func (s *requestService) GetOwn(ctx context.Context, requesterID int64) ([]*model.RequestView, error) {
	if err := s.requireUser(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.FindByRequester(ctx, requesterID)
	if err != nil {
		return nil, s.internal("list own requests", err)
	}
	return s.withItems(ctx, requests)
}

func (s *requestService) GetAll(ctx context.Context, userID int64, page model.Page) ([]*model.RequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	requests, err := s.repo.FindOthers(ctx, userID, page)
	if err != nil {
		return nil, s.internal("list requests", err)
	}
	return s.withItems(ctx, requests)
}

func (s *requestService) GetByID(ctx context.Context, userID, requestID int64) (*model.RequestView, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	request, err := s.repo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, requestserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Request", requestID)
		}
		return nil, s.internal("find request", err)
	}

	views, err := s.withItems(ctx, []*model.Request{request})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

// withItems loads the answering items for the whole slice in one query.
func (s *requestService) withItems(ctx context.Context, requests []*model.Request) ([]*model.RequestView, error) {
	if len(requests) == 0 {
		return []*model.RequestView{}, nil
	}

	items, err := s.items.FindByRequestIDs(ctx, requestIDs(requests))
	if err != nil {
		return nil, s.internal("load request items", err)
	}
	return mergeItems(requests, items), nil
}

func (s *requestService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", userID)
		}
		return s.internal("find user", err)
	}
	return nil
}

func (s *requestService) internal(operation string, err error) error {
	s.cfg.Log.Error("Request operation failed", "operation", operation, "error", err)
	return apperrors.Internal("Failed to "+operation, err)
}
