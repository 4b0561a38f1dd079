package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestInternal_Unwrap(t *testing.T) {
	originalErr := errors.New("database connection failed")
	wrapped := Internal("internal error", originalErr)

	if wrapped.Err != originalErr {
		t.Errorf("expected wrapped error to contain original error")
	}
	if errors.Unwrap(wrapped) != originalErr {
		t.Errorf("Unwrap() should return original error")
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "item not found"},
			expected: "NOT FOUND: item not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructors_StatusAndLabel(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantStatus int
		wantCode   string
	}{
		{"bad request", BadRequest("end must be after start"), http.StatusBadRequest, CodeBadRequest},
		{"validation", Validation("invalid input", nil), http.StatusBadRequest, CodeBadRequest},
		{"not found", NotFound("Item"), http.StatusNotFound, CodeNotFound},
		{"not found with id", NotFoundWithID("Booking", 7), http.StatusNotFound, CodeNotFound},
		{"conflict", Conflict("email already used"), http.StatusConflict, CodeConflict},
		{"unsupported state", UnsupportedState("BOGUS"), http.StatusInternalServerError, CodeUnsupportedState},
		{"internal", Internal("boom", nil), http.StatusInternalServerError, CodeInternal},
		{"timeout", Timeout("Request timeout"), http.StatusServiceUnavailable, CodeUnavailable},
		{"unavailable", Unavailable("shareit-server"), http.StatusServiceUnavailable, CodeUnavailable},
		{"too many requests", TooManyRequests("slow down"), http.StatusTooManyRequests, CodeTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestUnsupportedState_Message(t *testing.T) {
	err := UnsupportedState("BOGUS")
	if err.Message != "Unknown state: BOGUS" {
		t.Errorf("unexpected message %q", err.Message)
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("User", 42)
	if err.Details["resource"] != "User" {
		t.Errorf("expected resource detail, got %v", err.Details["resource"])
	}
	if err.Details["id"] != int64(42) {
		t.Errorf("expected id detail 42, got %v", err.Details["id"])
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		original := NotFound("Item")
		if AsAppError(original) != original {
			t.Error("expected same AppError instance")
		}
	})

	t.Run("wrapped app error is found", func(t *testing.T) {
		original := Conflict("duplicate")
		wrapped := fmt.Errorf("create user: %w", original)
		if !IsAppError(wrapped) {
			t.Fatal("expected IsAppError to see through wrapping")
		}
		if AsAppError(wrapped) != original {
			t.Error("expected the wrapped AppError")
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsAppError(errors.New("boom"))
		if got.Code != CodeInternal || got.StatusCode() != http.StatusInternalServerError {
			t.Errorf("expected internal error, got %+v", got)
		}
	})
}

func TestWriteError_Body(t *testing.T) {
	w := httptest.NewRecorder()
	if err := WriteError(w, BadRequest("Item is not available")); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != CodeBadRequest {
		t.Errorf("error = %v, want %q", body["error"], CodeBadRequest)
	}
	if body["description"] != "Item is not available" {
		t.Errorf("description = %v", body["description"])
	}
	if _, ok := body["details"]; ok {
		t.Error("details should be omitted when empty")
	}
}
