package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"

	"shareit/pkg/config"
	"shareit/pkg/logger"
)

type routeHandler struct {
	method string
	path   string
	status int
}

func (h routeHandler) RegisterRoutes(router *httprouter.Router) {
	router.Handle(h.method, h.path, func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		w.WriteHeader(h.status)
	})
}

func newTestApp(t *testing.T, rateLimit int) *Application {
	t.Helper()
	cfg := &config.Config{
		Port:              "8080",
		RateLimitRequests: rateLimit,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    time.Second,
		IdempotencyTTL:    time.Minute,
		MaxRequestSize:    1024,
		ShutdownTimeout:   time.Second,
		Log:               logger.Discard(),
	}
	a := NewApplication(cfg)
	a.SetApp(
		routeHandler{http.MethodGet, "/health", http.StatusOK},
		routeHandler{http.MethodGet, "/users", http.StatusOK},
		routeHandler{http.MethodPost, "/items", http.StatusCreated},
	)
	t.Cleanup(func() {
		a.idempotencyStore.Stop()
		a.rateLimiter.Stop()
	})
	return a
}

func TestApplication_Routing(t *testing.T) {
	a := newTestApp(t, 100)

	tests := []struct {
		name string
		req  func() *http.Request
		want int
	}{
		{"health", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/health", nil) }, http.StatusOK},
		{"domain route", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/users", nil) }, http.StatusOK},
		{"unknown route", func() *http.Request { return httptest.NewRequest(http.MethodGet, "/nope", nil) }, http.StatusNotFound},
		{"missing content type", func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(`{}`))
		}, http.StatusUnsupportedMediaType},
		{"oversized body", func() *http.Request {
			req := httptest.NewRequest(http.MethodPost, "/items", strings.NewReader(strings.Repeat("x", 2048)))
			req.Header.Set("Content-Type", "application/json")
			return req
		}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			a.Handler().ServeHTTP(w, tt.req())
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestApplication_HealthSkipsRateLimit(t *testing.T) {
	a := newTestApp(t, 2)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		a.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/users", nil)
		req.Header.Set("X-Sharer-User-Id", "1")
		a.Handler().ServeHTTP(w, req)
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Errorf("expected third domain request to be limited, got %d", last)
	}
}
