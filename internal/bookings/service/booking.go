package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	bookingserrors "shareit/internal/bookings/errors"
	"shareit/internal/bookings/repository"
	"shareit/internal/bookings/validator"
	itemserrors "shareit/internal/items/errors"
	userserrors "shareit/internal/users/errors"
	"shareit/pkg/clock"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"
	"shareit/pkg/validation"
)

type BookingService interface {
	Create(ctx context.Context, bookerID int64, input *model.BookingCreate) (*model.BookingView, error)
	Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.BookingView, error)
	GetByID(ctx context.Context, userID, bookingID int64) (*model.BookingView, error)
	ListByBooker(ctx context.Context, bookerID int64, state string, page model.Page) ([]*model.BookingView, error)
	ListByOwner(ctx context.Context, ownerID int64, state string, page model.Page) ([]*model.BookingView, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	users     UserReader
	items     ItemReader
	events    EventPublisher
	validator *validator.BookingValidator
	clock     clock.Clock
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	users UserReader,
	items ItemReader,
	events EventPublisher,
	validator *validator.BookingValidator,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		users:     users,
		items:     items,
		events:    events,
		validator: validator,
		clock:     clk,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, bookerID int64, input *model.BookingCreate) (*model.BookingView, error) {
	if err := s.validator.ValidateCreate(input); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "booker_id", bookerID, "error", err)
		return nil, validation.ToAppError("Booking", err)
	}

	booker, err := s.findUser(ctx, bookerID)
	if err != nil {
		return nil, err
	}
	item, err := s.findItem(ctx, input.ItemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerID == bookerID {
		return nil, apperrors.BadRequest(fmt.Sprintf("Owner cannot book own item with id=%d", item.ID))
	}
	if !item.Available {
		return nil, apperrors.BadRequest(fmt.Sprintf("Item with id=%d is not available", item.ID))
	}

	now := s.clock.Now()
	booking := &model.Booking{
		Start:       input.Start.Time,
		End:         input.End.Time,
		ItemID:      item.ID,
		ItemOwnerID: item.OwnerID,
		BookerID:    bookerID,
		Status:      model.StatusWaiting,
		CreatedAt:   now,
	}
	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, s.internal("create booking", err)
	}

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"item_id", booking.ItemID,
		"booker_id", bookerID,
		"start", booking.Start,
	)
	s.publish(ctx, booking)
	return newView(booking, booker, item), nil
}

func (s *bookingService) Approve(ctx context.Context, ownerID, bookingID int64, approved bool) (*model.BookingView, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.ItemOwnerID != ownerID {
		return nil, apperrors.NotFound(fmt.Sprintf("Booking with id=%d for an item of user with id=%d", bookingID, ownerID))
	}

	status, err := nextStatus(booking.Status, approved)
	if err != nil {
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", bookingID)
		case errors.Is(err, bookingserrors.ErrStatusConflict):
			s.cfg.Log.Warn("Booking decided concurrently", "id", bookingID, "owner_id", ownerID)
			return nil, apperrors.BadRequest(fmt.Sprintf("Booking with id=%d has already been decided", bookingID))
		default:
			return nil, s.internal("update booking status", err)
		}
	}
	booking.Status = status

	s.cfg.Log.Info("Booking decided", "id", bookingID, "owner_id", ownerID, "status", status)
	s.publish(ctx, booking)

	views, err := s.toViews(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *bookingService) GetByID(ctx context.Context, userID, bookingID int64) (*model.BookingView, error) {
	booking, err := s.findBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.BookerID != userID && booking.ItemOwnerID != userID {
		return nil, apperrors.NotFound(fmt.Sprintf("Booking with id=%d for user with id=%d", bookingID, userID))
	}

	views, err := s.toViews(ctx, []*model.Booking{booking})
	if err != nil {
		return nil, err
	}
	return views[0], nil
}

func (s *bookingService) ListByBooker(ctx context.Context, bookerID int64, state string, page model.Page) ([]*model.BookingView, error) {
	return s.list(ctx, bookerID, state, page, s.repo.FindByBooker)
}

func (s *bookingService) ListByOwner(ctx context.Context, ownerID int64, state string, page model.Page) ([]*model.BookingView, error) {
	return s.list(ctx, ownerID, state, page, s.repo.FindByOwner)
}

type listFunc func(ctx context.Context, userID int64, state model.BookingState, now time.Time, page model.Page) ([]*model.Booking, error)

func (s *bookingService) list(ctx context.Context, userID int64, token string, page model.Page, find listFunc) ([]*model.BookingView, error) {
	state, ok := model.ParseBookingState(token)
	if !ok {
		s.cfg.Log.Warn("Unknown booking state", "state", token, "user_id", userID)
		return nil, apperrors.UnsupportedState(token)
	}

	if _, err := s.findUser(ctx, userID); err != nil {
		return nil, err
	}

	bookings, err := find(ctx, userID, state, s.clock.Now(), page)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrUnsupportedState) {
			return nil, apperrors.UnsupportedState(token)
		}
		return nil, s.internal("list bookings", err)
	}
	return s.toViews(ctx, bookings)
}

// toViews resolves bookers and items for the whole slice with one lookup each.
func (s *bookingService) toViews(ctx context.Context, bookings []*model.Booking) ([]*model.BookingView, error) {
	views := make([]*model.BookingView, 0, len(bookings))
	if len(bookings) == 0 {
		return views, nil
	}

	userIDs := make([]int64, 0, len(bookings))
	itemIDs := make([]int64, 0, len(bookings))
	seenUser := make(map[int64]bool)
	seenItem := make(map[int64]bool)
	for _, b := range bookings {
		if !seenUser[b.BookerID] {
			seenUser[b.BookerID] = true
			userIDs = append(userIDs, b.BookerID)
		}
		if !seenItem[b.ItemID] {
			seenItem[b.ItemID] = true
			itemIDs = append(itemIDs, b.ItemID)
		}
	}

	var (
		users             []*model.User
		items             []*model.Item
		errUsers, errItem error
		wg                sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		users, errUsers = s.users.FindByIDs(ctx, userIDs)
	}()
	go func() {
		defer wg.Done()
		items, errItem = s.items.FindByIDs(ctx, itemIDs)
	}()
	wg.Wait()

	if errUsers != nil {
		return nil, s.internal("load bookers", errUsers)
	}
	if errItem != nil {
		return nil, s.internal("load booked items", errItem)
	}

	userByID := make(map[int64]*model.User, len(users))
	for _, u := range users {
		userByID[u.ID] = u
	}
	itemByID := make(map[int64]*model.Item, len(items))
	for _, it := range items {
		itemByID[it.ID] = it
	}

	for _, b := range bookings {
		views = append(views, newView(b, userByID[b.BookerID], itemByID[b.ItemID]))
	}
	return views, nil
}

func newView(b *model.Booking, booker *model.User, item *model.Item) *model.BookingView {
	view := &model.BookingView{
		ID:     b.ID,
		Start:  model.NewTimestamp(b.Start),
		End:    model.NewTimestamp(b.End),
		Status: b.Status,
		Booker: &model.UserShort{ID: b.BookerID},
		Item:   &model.ItemShort{ID: b.ItemID},
	}
	if booker != nil {
		view.Booker.Name = booker.Name
	}
	if item != nil {
		view.Item.Name = item.Name
	}
	return view
}

// publish never fails the request; the booking is already stored. It runs
// detached from the request deadline and is bounded by its own timeout.
func (s *bookingService) publish(ctx context.Context, booking *model.Booking) {
	timeout := s.cfg.BookingEventsPublishTimeout
	if timeout <= 0 {
		timeout = config.DefaultBookingEventsPublishTimeout
	}
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := s.events.Publish(publishCtx, booking, s.clock.Now()); err != nil {
		s.cfg.Log.FromContext(ctx).Warn("Failed to publish booking event",
			"id", booking.ID,
			"status", booking.Status,
			"error", err,
		)
	}
}

func (s *bookingService) findBooking(ctx context.Context, id int64) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, s.internal("find booking", err)
	}
	return booking, nil
}

func (s *bookingService) findUser(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, userserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("User", id)
		}
		return nil, s.internal("find user", err)
	}
	return user, nil
}

func (s *bookingService) findItem(ctx context.Context, id int64) (*model.Item, error) {
	item, err := s.items.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, itemserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Item", id)
		}
		return nil, s.internal("find item", err)
	}
	return item, nil
}

func (s *bookingService) internal(operation string, err error) error {
	s.cfg.Log.Error("Booking operation failed", "operation", operation, "error", err)
	return apperrors.Internal("Failed to "+operation, err)
}
