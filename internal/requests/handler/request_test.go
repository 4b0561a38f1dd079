package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/julienschmidt/httprouter"

	apperrors "shareit/pkg/errors"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

type mockRequestService struct {
	createFunc  func(ctx context.Context, requesterID int64, input *model.RequestCreate) (*model.RequestView, error)
	getOwnFunc  func(ctx context.Context, requesterID int64) ([]*model.RequestView, error)
	getAllFunc  func(ctx context.Context, userID int64, page model.Page) ([]*model.RequestView, error)
	getByIDFunc func(ctx context.Context, userID, requestID int64) (*model.RequestView, error)
}

func (m *mockRequestService) Create(ctx context.Context, requesterID int64, input *model.RequestCreate) (*model.RequestView, error) {
	return m.createFunc(ctx, requesterID, input)
}

func (m *mockRequestService) GetOwn(ctx context.Context, requesterID int64) ([]*model.RequestView, error) {
	return m.getOwnFunc(ctx, requesterID)
}

func (m *mockRequestService) GetAll(ctx context.Context, userID int64, page model.Page) ([]*model.RequestView, error) {
	return m.getAllFunc(ctx, userID, page)
}

func (m *mockRequestService) GetByID(ctx context.Context, userID, requestID int64) (*model.RequestView, error) {
	return m.getByIDFunc(ctx, userID, requestID)
}

func serve(svc *mockRequestService, method, path, userID, body string) *httptest.ResponseRecorder {
	router := httprouter.New()
	NewRequestHandler(svc, logger.Discard()).RegisterRoutes(router)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		req.Header.Set("X-Sharer-User-Id", userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreate(t *testing.T) {
	svc := &mockRequestService{
		createFunc: func(ctx context.Context, requesterID int64, input *model.RequestCreate) (*model.RequestView, error) {
			return &model.RequestView{ID: 1, Description: input.Description, Items: []*model.RequestItem{}}, nil
		},
	}

	w := serve(svc, http.MethodPost, "/requests", "1", `{"description":"Need a ladder"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var view model.RequestView
	if err := json.Unmarshal(w.Body.Bytes(), &view); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if view.Description != "Need a ladder" || view.Items == nil {
		t.Errorf("unexpected view %+v", view)
	}

	if w := serve(svc, http.MethodPost, "/requests", "", `{"description":"x"}`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without header, got %d", w.Code)
	}
	if w := serve(svc, http.MethodPost, "/requests", "1", `{bad json`); w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed body, got %d", w.Code)
	}
}

func TestGetAllRoute(t *testing.T) {
	var gotPage model.Page
	svc := &mockRequestService{
		getAllFunc: func(ctx context.Context, userID int64, page model.Page) ([]*model.RequestView, error) {
			gotPage = page
			return []*model.RequestView{}, nil
		},
	}

	w := serve(svc, http.MethodGet, "/requests/all?from=2&size=3", "1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if gotPage.From != 2 || gotPage.Size != 3 {
		t.Errorf("unexpected page %+v", gotPage)
	}
}

func TestGetByID(t *testing.T) {
	svc := &mockRequestService{
		getByIDFunc: func(ctx context.Context, userID, requestID int64) (*model.RequestView, error) {
			if requestID != 1 {
				return nil, apperrors.NotFoundWithID("Request", requestID)
			}
			return &model.RequestView{ID: 1, Items: []*model.RequestItem{}}, nil
		},
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"found", "/requests/1", http.StatusOK},
		{"missing", "/requests/2", http.StatusNotFound},
		{"not numeric", "/requests/abc", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := serve(svc, http.MethodGet, tt.path, "1", ""); w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}
