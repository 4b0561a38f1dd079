package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	requestserrors "shareit/internal/requests/errors"
	"shareit/internal/requests/validator"
	userserrors "shareit/internal/users/errors"
	"shareit/pkg/config"
	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

type mockRequestRepository struct {
	requests []*model.Request
	nextID   int64
	lastPage model.Page
	err      error
}

func (m *mockRequestRepository) Create(ctx context.Context, request *model.Request) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	request.ID = m.nextID
	m.requests = append(m.requests, request)
	return nil
}

func (m *mockRequestRepository) FindByID(ctx context.Context, id int64) (*model.Request, error) {
	for _, r := range m.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", requestserrors.ErrNotFound, id)
}

func (m *mockRequestRepository) FindByRequester(ctx context.Context, requesterID int64) ([]*model.Request, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*model.Request
	for _, r := range m.requests {
		if r.RequesterID == requesterID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRequestRepository) FindOthers(ctx context.Context, userID int64, page model.Page) ([]*model.Request, error) {
	m.lastPage = page
	var out []*model.Request
	for _, r := range m.requests {
		if r.RequesterID != userID {
			out = append(out, r)
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

type mockItems struct {
	items []*model.Item
	calls int
	err   error
}

func (m *mockItems) FindByRequestIDs(ctx context.Context, requestIDs []int64) ([]*model.Item, error) {
	m.calls++
	return m.items, m.err
}

type fixture struct {
	service RequestService
	repo    *mockRequestRepository
	items   *mockItems
	clock   *fakeClock
}

func newFixture(requests ...*model.Request) *fixture {
	f := &fixture{
		repo:  &mockRequestRepository{requests: requests, nextID: int64(len(requests))},
		items: &mockItems{},
		clock: &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
	}
	users := &mockUsers{users: map[int64]*model.User{
		1: {ID: 1, Name: "Alice"},
		2: {ID: 2, Name: "Bob"},
	}}
	cfg := &config.Config{Log: logger.Discard()}
	f.service = NewRequestService(f.repo, users, f.items, validator.NewRequestValidator(), f.clock, cfg)
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

func TestCreate(t *testing.T) {
	f := newFixture()

	view, err := f.service.Create(context.Background(), 1, &model.RequestCreate{Description: "  Need a ladder "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if view.ID != 1 || view.Description != "Need a ladder" {
		t.Errorf("unexpected view %+v", view)
	}
	if !view.Created.Equal(f.clock.now) {
		t.Errorf("expected created %v, got %v", f.clock.now, view.Created)
	}
	if view.Items == nil || len(view.Items) != 0 {
		t.Errorf("expected empty items list, got %v", view.Items)
	}

	_, err = f.service.Create(context.Background(), 9, &model.RequestCreate{Description: "x"})
	expectStatus(t, err, 404)

	_, err = f.service.Create(context.Background(), 1, &model.RequestCreate{Description: "   "})
	expectStatus(t, err, 400)
}

func TestGetOwn_AttachesItems(t *testing.T) {
	created := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)
	f := newFixture(
		&model.Request{ID: 2, Description: "newer", RequesterID: 1, Created: created.Add(time.Hour)},
		&model.Request{ID: 1, Description: "older", RequesterID: 1, Created: created},
		&model.Request{ID: 3, Description: "other", RequesterID: 2, Created: created},
	)
	f.items.items = []*model.Item{
		{ID: 10, Name: "Ladder", RequestID: ptr(int64(1)), OwnerID: 2},
		{ID: 11, Name: "Ghost", RequestID: ptr(int64(99)), OwnerID: 2},
	}

	views, err := f.service.GetOwn(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 2 || views[0].ID != 2 || views[1].ID != 1 {
		t.Fatalf("expected requests [2 1], got %+v", views)
	}
	if len(views[0].Items) != 0 {
		t.Errorf("expected no items on request 2, got %d", len(views[0].Items))
	}
	if len(views[1].Items) != 1 || views[1].Items[0].ID != 10 || views[1].Items[0].OwnerID != 2 {
		t.Errorf("unexpected items on request 1: %+v", views[1].Items)
	}
	if f.items.calls != 1 {
		t.Errorf("expected one batch lookup, got %d", f.items.calls)
	}
}

func TestGetOwn_EmptySkipsItemLookup(t *testing.T) {
	f := newFixture()

	views, err := f.service.GetOwn(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Errorf("expected empty list, got %v", views)
	}
	if f.items.calls != 0 {
		t.Errorf("expected no item lookup, got %d", f.items.calls)
	}
}

func TestGetAll_ExcludesCaller(t *testing.T) {
	f := newFixture(
		&model.Request{ID: 1, RequesterID: 1},
		&model.Request{ID: 2, RequesterID: 2},
	)

	page := model.Page{From: 0, Size: 5}
	views, err := f.service.GetAll(context.Background(), 1, page)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 || views[0].ID != 2 {
		t.Errorf("expected only request 2, got %+v", views)
	}
	if f.repo.lastPage != page {
		t.Errorf("expected page %+v, got %+v", page, f.repo.lastPage)
	}

	_, err = f.service.GetAll(context.Background(), 9, page)
	expectStatus(t, err, 404)
}

func TestGetByID(t *testing.T) {
	f := newFixture(&model.Request{ID: 1, RequesterID: 1})

	tests := []struct {
		name      string
		userID    int64
		requestID int64
		status    int
	}{
		{"any existing user", 2, 1, 0},
		{"missing request", 2, 5, 404},
		{"missing user", 9, 1, 404},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := f.service.GetByID(context.Background(), tt.userID, tt.requestID)
			if tt.status != 0 {
				expectStatus(t, err, tt.status)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if view.ID != tt.requestID {
				t.Errorf("expected request %d, got %d", tt.requestID, view.ID)
			}
		})
	}
}

func TestInternalErrorsAreWrapped(t *testing.T) {
	f := newFixture(&model.Request{ID: 1, RequesterID: 1})
	f.items.err = errors.New("connection reset")

	_, err := f.service.GetOwn(context.Background(), 1)
	expectStatus(t, err, 500)
}
