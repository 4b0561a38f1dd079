package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	itemserrors "shareit/internal/items/errors"
	"shareit/internal/items/repository"
	"shareit/internal/items/validator"
	requestserrors "shareit/internal/requests/errors"
	userserrors "shareit/internal/users/errors"
	"shareit/pkg/clock"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/sanitizer"
	"shareit/pkg/validation"

	"go.mongodb.org/mongo-driver/mongo"
)

type ItemService interface {
	Create(ctx context.Context, ownerID int64, input *model.ItemCreate) (*model.Item, error)
	Update(ctx context.Context, ownerID, itemID int64, updates *model.ItemUpdate) (*model.Item, error)
	Delete(ctx context.Context, ownerID, itemID int64) error
	GetByID(ctx context.Context, userID, itemID int64) (*model.ItemDetails, error)
	GetByOwner(ctx context.Context, ownerID int64, page model.Page) ([]*model.ItemDetails, error)
	Search(ctx context.Context, text string, page model.Page) ([]*model.Item, error)
	AddComment(ctx context.Context, authorID, itemID int64, input *model.CommentCreate) (*model.CommentView, error)
}

type itemService struct {
	repo      repository.ItemRepository
	comments  repository.CommentRepository
	users     UserReader
	bookings  BookingReader
	requests  RequestReader
	validator *validator.ItemValidator
	clock     clock.Clock
	cfg       *config.Config
}

func NewItemService(
	repo repository.ItemRepository,
	comments repository.CommentRepository,
	users UserReader,
	bookings BookingReader,
	requests RequestReader,
	validator *validator.ItemValidator,
	clk clock.Clock,
	cfg *config.Config,
) ItemService {
	return &itemService{
		repo:      repo,
		comments:  comments,
		users:     users,
		bookings:  bookings,
		requests:  requests,
		validator: validator,
		clock:     clk,
		cfg:       cfg,
	}
}

func (s *itemService) Create(ctx context.Context, ownerID int64, input *model.ItemCreate) (*model.Item, error) {
	input.Name = sanitizer.SanitizeName(input.Name)
	input.Description = sanitizer.SanitizeText(input.Description)

	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Item validation failed", "owner_id", ownerID, "error", err)
		return nil, validation.ToAppError("Item", err)
	}

	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	if input.RequestID != nil {
		if _, err := s.requests.FindByID(ctx, *input.RequestID); err != nil {
			if errors.Is(err, requestserrors.ErrNotFound) {
				return nil, apperrors.NotFoundWithID("Request", *input.RequestID)
			}
			return nil, s.internal("find request", err)
		}
	}

	item := &model.Item{
		Name:        input.Name,
		Description: input.Description,
		Available:   *input.Available,
		OwnerID:     ownerID,
		RequestID:   input.RequestID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, s.internal("create item", err)
	}

	s.cfg.Log.Info("Item created successfully", "id", item.ID, "owner_id", ownerID)
	return item, nil
}

func (s *itemService) Update(ctx context.Context, ownerID, itemID int64, updates *model.ItemUpdate) (*model.Item, error) {
	updates.Name = sanitizer.SanitizeOptional(updates.Name, sanitizer.SanitizeName)
	updates.Description = sanitizer.SanitizeOptional(updates.Description, sanitizer.SanitizeText)

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Item update validation failed", "id", itemID, "error", err)
		return nil, validation.ToAppError("Item", err)
	}

	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	item, err := s.ownedItem(ctx, ownerID, itemID)
	if err != nil {
		return nil, err
	}

	if updates.Name != nil {
		item.Name = *updates.Name
	}
	if updates.Description != nil {
		item.Description = *updates.Description
	}
	if updates.Available != nil {
		item.Available = *updates.Available
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", itemID)
		}
		return nil, s.internal("update item", err)
	}

	s.cfg.Log.Info("Item updated successfully", "id", itemID, "owner_id", ownerID)
	return item, nil
}

func (s *itemService) Delete(ctx context.Context, ownerID, itemID int64) error {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return err
	}

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if _, err := s.ownedItem(sessCtx, ownerID, itemID); err != nil {
			return err
		}

		booked, err := s.bookings.ExistsByItemID(sessCtx, itemID)
		if err != nil {
			return fmt.Errorf("failed to check bookings: %w", err)
		}
		if booked {
			return apperrors.Conflict(fmt.Sprintf("Item with id=%d has bookings and cannot be deleted", itemID))
		}

		if err := s.repo.Delete(sessCtx, itemID); err != nil {
			if errors.Is(err, itemserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Item", itemID)
			}
			return err
		}
		return nil
	})
	if err != nil {
		if apperrors.IsAppError(err) {
			return err
		}
		return s.internal("delete item", err)
	}

	s.cfg.Log.Info("Item deleted successfully", "id", itemID, "owner_id", ownerID)
	return nil
}

func (s *itemService) GetByID(ctx context.Context, userID, itemID int64) (*model.ItemDetails, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", itemID)
		}
		return nil, s.internal("find item", err)
	}

	details, err := s.withDetails(ctx, []*model.Item{item}, item.OwnerID == userID)
	if err != nil {
		return nil, err
	}
	return details[0], nil
}

func (s *itemService) GetByOwner(ctx context.Context, ownerID int64, page model.Page) ([]*model.ItemDetails, error) {
	if err := s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwner(ctx, ownerID, page)
	if err != nil {
		return nil, s.internal("list owner items", err)
	}
	return s.withDetails(ctx, items, true)
}

func (s *itemService) Search(ctx context.Context, text string, page model.Page) ([]*model.Item, error) {
	text = sanitizer.SanitizeSearchText(text)
	if text == "" {
		return []*model.Item{}, nil
	}

	items, err := s.repo.Search(ctx, text, page)
	if err != nil {
		return nil, s.internal("search items", err)
	}
	return items, nil
}

func (s *itemService) AddComment(ctx context.Context, authorID, itemID int64, input *model.CommentCreate) (*model.CommentView, error) {
	input.Text = sanitizer.SanitizeText(input.Text)
	if err := s.validator.ValidateComment(input); err != nil {
		return nil, validation.ToAppError("Comment", err)
	}

	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", authorID)
		}
		return nil, s.internal("find user", err)
	}

	if _, err := s.repo.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", itemID)
		}
		return nil, s.internal("find item", err)
	}

	now := s.clock.Now()
	completed, err := s.bookings.ExistsCompleted(ctx, itemID, authorID, now)
	if err != nil {
		return nil, s.internal("check completed bookings", err)
	}
	if !completed {
		s.cfg.Log.Warn("Comment rejected without completed booking", "item_id", itemID, "author_id", authorID)
		return nil, apperrors.BadRequest(fmt.Sprintf("User with id=%d has no completed booking of item with id=%d", authorID, itemID))
	}

	comment := &model.Comment{
		Text:     input.Text,
		ItemID:   itemID,
		AuthorID: authorID,
		Created:  now,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, s.internal("create comment", err)
	}

	s.cfg.Log.Info("Comment added", "id", comment.ID, "item_id", itemID, "author_id", authorID)
	return &model.CommentView{
		ID:         comment.ID,
		Text:       comment.Text,
		AuthorName: author.Name,
		Created:    model.NewTimestamp(comment.Created),
	}, nil
}

// withDetails attaches comments to every item and, for the owner, the
// last/next bookings. Both lookups cover the whole slice in one query each.
func (s *itemService) withDetails(ctx context.Context, items []*model.Item, owner bool) ([]*model.ItemDetails, error) {
	details := make([]*model.ItemDetails, 0, len(items))
	if len(items) == 0 {
		return details, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	var (
		bookings            []*model.Booking
		views               map[int64][]*model.CommentView
		errBookings, errCom error
		wg                  sync.WaitGroup
	)
	if owner {
		wg.Add(1)
		go func() {
			defer wg.Done()
			bookings, errBookings = s.bookings.FindByItemIDs(ctx, ids)
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		views, errCom = s.commentViews(ctx, ids)
	}()
	wg.Wait()

	if errBookings != nil {
		return nil, s.internal("load item bookings", errBookings)
	}
	if errCom != nil {
		return nil, s.internal("load item comments", errCom)
	}

	now := s.clock.Now()
	byItem := groupBookingsByItem(bookings)
	for _, item := range items {
		d := model.NewItemDetails(item)
		if owner {
			last, next := resolveLastNext(byItem[item.ID], now)
			d.LastBooking = model.NewBookingShort(last)
			d.NextBooking = model.NewBookingShort(next)
		}
		if c := views[item.ID]; c != nil {
			d.Comments = c
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *itemService) commentViews(ctx context.Context, itemIDs []int64) (map[int64][]*model.CommentView, error) {
	comments, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil || len(comments) == 0 {
		return nil, err
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]bool, len(comments))
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := s.users.FindByIDs(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	names := make(map[int64]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}

	views := make(map[int64][]*model.CommentView)
	for _, c := range comments {
		views[c.ItemID] = append(views[c.ItemID], &model.CommentView{
			ID:         c.ID,
			Text:       c.Text,
			AuthorName: names[c.AuthorID],
			Created:    model.NewTimestamp(c.Created),
		})
	}
	return views, nil
}

func (s *itemService) ownedItem(ctx context.Context, ownerID, itemID int64) (*model.Item, error) {
	item, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", itemID)
		}
		return nil, s.internal("find item", err)
	}
	if item.OwnerID != ownerID {
		return nil, apperrors.NotFound(fmt.Sprintf("Item with id=%d of user with id=%d", itemID, ownerID))
	}
	return item, nil
}

func (s *itemService) requireUser(ctx context.Context, userID int64) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("User", userID)
		}
		return s.internal("find user", err)
	}
	return nil
}

func (s *itemService) internal(operation string, err error) error {
	s.cfg.Log.Error("Item operation failed", "operation", operation, "error", err)
	return apperrors.Internal("Failed to "+operation, err)
}
