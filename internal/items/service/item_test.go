package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	itemserrors "shareit/internal/items/errors"
	"shareit/internal/items/validator"
	requestserrors "shareit/internal/requests/errors"
	userserrors "shareit/internal/users/errors"
	"shareit/pkg/config"
	mongotx "shareit/pkg/db/mongo"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type mockItemRepository struct {
	items   map[int64]*model.Item
	nextID  int64
	deleted []int64
	search  func(ctx context.Context, text string, page model.Page) ([]*model.Item, error)
}

func newMockItemRepository(items ...*model.Item) *mockItemRepository {
	m := &mockItemRepository{items: map[int64]*model.Item{}, nextID: 100}
	for _, item := range items {
		m.items[item.ID] = item
	}
	return m
}

func (m *mockItemRepository) Create(ctx context.Context, item *model.Item) error {
	m.nextID++
	item.ID = m.nextID
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepository) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", itemserrors.ErrNotFound, id)
	}
	copied := *item
	return &copied, nil
}

func (m *mockItemRepository) FindByIDs(ctx context.Context, ids []int64) ([]*model.Item, error) {
	return nil, nil
}

func (m *mockItemRepository) FindByOwner(ctx context.Context, ownerID int64, page model.Page) ([]*model.Item, error) {
	var out []*model.Item
	for id := int64(1); id <= m.nextID; id++ {
		if item, ok := m.items[id]; ok && item.OwnerID == ownerID {
			out = append(out, item)
		}
	}
	return out, nil
}

func (m *mockItemRepository) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error) {
	return nil, nil
}

func (m *mockItemRepository) Search(ctx context.Context, text string, page model.Page) ([]*model.Item, error) {
	if m.search != nil {
		return m.search(ctx, text, page)
	}
	return []*model.Item{}, nil
}

func (m *mockItemRepository) Update(ctx context.Context, item *model.Item) error {
	m.items[item.ID] = item
	return nil
}

func (m *mockItemRepository) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func (m *mockItemRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockCommentRepository struct {
	comments []*model.Comment
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	comment.ID = int64(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return nil
}

func (m *mockCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Comment, error) {
	var out []*model.Comment
	for _, c := range m.comments {
		for _, id := range itemIDs {
			if c.ItemID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

type mockUsers struct {
	users map[int64]*model.User
}

func (m *mockUsers) FindByID(ctx context.Context, id int64) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, fmt.Errorf("%w: %d", userserrors.ErrNotFound, id)
}

func (m *mockUsers) FindByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	var out []*model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

// mockBookings answers from an in-memory slice using the same rules as the store.
type mockBookings struct {
	bookings []*model.Booking
	calls    int
}

func (m *mockBookings) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]*model.Booking, error) {
	m.calls++
	var out []*model.Booking
	for _, b := range m.bookings {
		for _, id := range itemIDs {
			if b.ItemID == id {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (m *mockBookings) ExistsByItemID(ctx context.Context, itemID int64) (bool, error) {
	for _, b := range m.bookings {
		if b.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBookings) ExistsCompleted(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	for _, b := range m.bookings {
		if b.ItemID == itemID && b.BookerID == bookerID && b.End.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

type mockRequests struct {
	ids map[int64]bool
}

func (m *mockRequests) FindByID(ctx context.Context, id int64) (*model.Request, error) {
	if m.ids[id] {
		return &model.Request{ID: id}, nil
	}
	return nil, fmt.Errorf("%w: %d", requestserrors.ErrNotFound, id)
}

type fixture struct {
	svc      ItemService
	items    *mockItemRepository
	comments *mockCommentRepository
	bookings *mockBookings
	clock    *fakeClock
}

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newFixture(items ...*model.Item) *fixture {
	f := &fixture{
		items:    newMockItemRepository(items...),
		comments: &mockCommentRepository{},
		bookings: &mockBookings{},
		clock:    &fakeClock{now: baseTime},
	}
	users := &mockUsers{users: map[int64]*model.User{
		1: {ID: 1, Name: "Owner"},
		2: {ID: 2, Name: "Booker"},
	}}
	f.svc = NewItemService(
		f.items,
		f.comments,
		users,
		f.bookings,
		&mockRequests{ids: map[int64]bool{5: true}},
		validator.NewItemValidator(),
		f.clock,
		&config.Config{Log: logger.Discard()},
	)
	return f
}

func expectStatus(t *testing.T, err error, status int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	if !apperrors.IsAppError(err) {
		t.Fatalf("expected AppError with status %d, got %v", status, err)
	}
	if got := apperrors.AsAppError(err).HTTPStatus; got != status {
		t.Fatalf("expected status %d, got %d (%v)", status, got, err)
	}
}

func ptr[T any](v T) *T { return &v }

func drill() *model.Item {
	return &model.Item{ID: 1, Name: "Drill", Description: "Cordless drill", Available: true, OwnerID: 1}
}

func TestCreate(t *testing.T) {
	tests := []struct {
		name    string
		ownerID int64
		input   model.ItemCreate
		status  int
	}{
		{"created", 1, model.ItemCreate{Name: "Saw", Description: "Hand saw", Available: ptr(true)}, 0},
		{"with request", 1, model.ItemCreate{Name: "Saw", Description: "Hand saw", Available: ptr(true), RequestID: ptr(int64(5))}, 0},
		{"unknown request", 1, model.ItemCreate{Name: "Saw", Description: "Hand saw", Available: ptr(true), RequestID: ptr(int64(6))}, http.StatusNotFound},
		{"unknown owner", 9, model.ItemCreate{Name: "Saw", Description: "Hand saw", Available: ptr(true)}, http.StatusNotFound},
		{"missing available", 1, model.ItemCreate{Name: "Saw", Description: "Hand saw"}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			item, err := f.svc.Create(context.Background(), tt.ownerID, &tt.input)
			if tt.status != 0 {
				expectStatus(t, err, tt.status)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if item.ID == 0 || item.OwnerID != tt.ownerID || !item.Available {
				t.Errorf("unexpected item %+v", item)
			}
		})
	}
}

func TestUpdate_OwnerOnly(t *testing.T) {
	f := newFixture(drill())

	_, err := f.svc.Update(context.Background(), 2, 1, &model.ItemUpdate{Available: ptr(false)})
	expectStatus(t, err, http.StatusNotFound)

	item, err := f.svc.Update(context.Background(), 1, 1, &model.ItemUpdate{Available: ptr(false), Name: ptr(" Big drill ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.Available || item.Name != "Big drill" || item.Description != "Cordless drill" {
		t.Errorf("unexpected merged item %+v", item)
	}
}

func TestDelete(t *testing.T) {
	t.Run("refused while booked", func(t *testing.T) {
		f := newFixture(drill())
		f.bookings.bookings = []*model.Booking{{ID: 1, ItemID: 1, BookerID: 2}}

		expectStatus(t, f.svc.Delete(context.Background(), 1, 1), http.StatusConflict)
		if len(f.items.deleted) != 0 {
			t.Error("item must not be deleted")
		}
	})

	t.Run("not owner", func(t *testing.T) {
		f := newFixture(drill())
		expectStatus(t, f.svc.Delete(context.Background(), 2, 1), http.StatusNotFound)
	})

	t.Run("deleted", func(t *testing.T) {
		f := newFixture(drill())
		if err := f.svc.Delete(context.Background(), 1, 1); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(f.items.deleted) != 1 {
			t.Error("expected item to be deleted")
		}
	})
}

func TestGetByID_LastNextOnlyForOwner(t *testing.T) {
	f := newFixture(drill())
	f.bookings.bookings = []*model.Booking{
		{ID: 1, ItemID: 1, BookerID: 2, Start: baseTime.Add(-48 * time.Hour), End: baseTime.Add(-24 * time.Hour)},
		{ID: 2, ItemID: 1, BookerID: 2, Start: baseTime.Add(24 * time.Hour), End: baseTime.Add(48 * time.Hour)},
	}

	owner, err := f.svc.GetByID(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner.LastBooking == nil || owner.LastBooking.ID != 1 {
		t.Errorf("expected last booking 1, got %+v", owner.LastBooking)
	}
	if owner.NextBooking == nil || owner.NextBooking.ID != 2 {
		t.Errorf("expected next booking 2, got %+v", owner.NextBooking)
	}

	other, err := f.svc.GetByID(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if other.LastBooking != nil || other.NextBooking != nil {
		t.Errorf("non owner must not see bookings: %+v %+v", other.LastBooking, other.NextBooking)
	}
	if other.Comments == nil {
		t.Error("comments should be an empty list, not nil")
	}

	_, err = f.svc.GetByID(context.Background(), 1, 99)
	expectStatus(t, err, http.StatusNotFound)
}

func TestGetByOwner_BatchesBookings(t *testing.T) {
	second := &model.Item{ID: 2, Name: "Ladder", Description: "Tall", Available: true, OwnerID: 1}
	f := newFixture(drill(), second)
	f.items.nextID = 2
	f.bookings.bookings = []*model.Booking{
		{ID: 1, ItemID: 1, BookerID: 2, Start: baseTime.Add(-time.Hour), End: baseTime.Add(time.Hour)},
		{ID: 2, ItemID: 2, BookerID: 2, Start: baseTime.Add(time.Hour), End: baseTime.Add(2 * time.Hour)},
	}

	details, err := f.svc.GetByOwner(context.Background(), 1, model.DefaultPage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details) != 2 {
		t.Fatalf("expected 2 items, got %d", len(details))
	}
	if f.bookings.calls != 1 {
		t.Errorf("expected one booking lookup for the page, got %d", f.bookings.calls)
	}
	if details[0].LastBooking == nil || details[0].NextBooking != nil {
		t.Errorf("item 1: unexpected last/next %+v %+v", details[0].LastBooking, details[0].NextBooking)
	}
	if details[1].LastBooking != nil || details[1].NextBooking == nil {
		t.Errorf("item 2: unexpected last/next %+v %+v", details[1].LastBooking, details[1].NextBooking)
	}

	_, err = f.svc.GetByOwner(context.Background(), 9, model.DefaultPage())
	expectStatus(t, err, http.StatusNotFound)
}

func TestSearch_BlankTextSkipsStore(t *testing.T) {
	f := newFixture()
	called := false
	f.items.search = func(ctx context.Context, text string, page model.Page) ([]*model.Item, error) {
		called = true
		if text != "drill" {
			t.Errorf("expected normalized text, got %q", text)
		}
		return []*model.Item{drill()}, nil
	}

	items, err := f.svc.Search(context.Background(), "   ", model.DefaultPage())
	if err != nil || len(items) != 0 || called {
		t.Fatalf("blank search should return empty list without store access: %v %v %v", items, err, called)
	}

	items, err = f.svc.Search(context.Background(), " DRILL ", model.DefaultPage())
	if err != nil || len(items) != 1 {
		t.Fatalf("unexpected result %v %v", items, err)
	}
}

// Owner lists an item, a booker rents it, and can comment only after the rental ends.
func TestAddComment_RequiresCompletedBooking(t *testing.T) {
	f := newFixture(drill())
	f.bookings.bookings = []*model.Booking{{
		ID: 1, ItemID: 1, BookerID: 2, ItemOwnerID: 1,
		Start:  baseTime.Add(time.Hour),
		End:    baseTime.Add(2 * time.Hour),
		Status: model.StatusApproved,
	}}

	_, err := f.svc.AddComment(context.Background(), 2, 1, &model.CommentCreate{Text: "Great drill"})
	expectStatus(t, err, http.StatusBadRequest)

	f.clock.now = baseTime.Add(3 * time.Hour)
	view, err := f.svc.AddComment(context.Background(), 2, 1, &model.CommentCreate{Text: "Great drill"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.AuthorName != "Booker" || !view.Created.Equal(f.clock.now) {
		t.Errorf("unexpected comment view %+v", view)
	}

	details, err := f.svc.GetByID(context.Background(), 2, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(details.Comments) != 1 || details.Comments[0].AuthorName != "Booker" {
		t.Errorf("expected comment with author name, got %+v", details.Comments)
	}
}

func TestAddComment_NotFound(t *testing.T) {
	f := newFixture(drill())

	_, err := f.svc.AddComment(context.Background(), 9, 1, &model.CommentCreate{Text: "hi"})
	expectStatus(t, err, http.StatusNotFound)

	_, err = f.svc.AddComment(context.Background(), 2, 99, &model.CommentCreate{Text: "hi"})
	expectStatus(t, err, http.StatusNotFound)
}

func TestInternalErrorsAreWrapped(t *testing.T) {
	f := newFixture()
	f.items.search = func(ctx context.Context, text string, page model.Page) ([]*model.Item, error) {
		return nil, errors.New("socket closed")
	}
	_, err := f.svc.Search(context.Background(), "drill", model.DefaultPage())
	expectStatus(t, err, http.StatusInternalServerError)
}
