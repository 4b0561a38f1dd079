package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"shareit/pkg/logger"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		check      Check
		wantStatus int
	}{
		{"health ignores dependency", "/health", func(context.Context) error { return errors.New("down") }, http.StatusOK},
		{"ready", "/ready", func(context.Context) error { return nil }, http.StatusOK},
		{"not ready", "/ready", func(context.Context) error { return errors.New("down") }, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHandler("mongo", tt.check, logger.Discard()).RegisterRoutes(router)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantStatus {
				t.Errorf("expected %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
