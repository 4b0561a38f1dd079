package validation

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	apperrors "shareit/pkg/errors"
)

type sample struct {
	Name  string `json:"name" validate:"required,max=5"`
	Email string `json:"email" validate:"required,email"`
}

func TestStruct(t *testing.T) {
	v := New()

	if err := Struct(v, &sample{Name: "ann", Email: "ann@example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := Struct(v, &sample{Name: "too long", Email: "nope"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	if len(verrs) != 2 {
		t.Fatalf("expected 2 errors, got %v", verrs)
	}
	if verrs[0].Field != "name" || verrs[0].Message != "must be at most 5 characters" {
		t.Errorf("unexpected first error %+v", verrs[0])
	}
	if verrs[1].Field != "email" || verrs[1].Message != "must be a valid email address" {
		t.Errorf("unexpected second error %+v", verrs[1])
	}
}

func TestToAppError(t *testing.T) {
	err := ToAppError("User", ValidationErrors{{Field: "name", Message: "must not be blank"}})
	appErr := apperrors.AsAppError(err)
	if appErr == nil {
		t.Fatalf("expected AppError, got %T", err)
	}
	if appErr.HTTPStatus != http.StatusBadRequest || appErr.Code != apperrors.CodeBadRequest {
		t.Errorf("unexpected status/code %d %q", appErr.HTTPStatus, appErr.Code)
	}
	if !strings.Contains(appErr.Message, "name: must not be blank") {
		t.Errorf("unexpected message %q", appErr.Message)
	}

	if ToAppError("User", nil) != nil {
		t.Error("nil error should stay nil")
	}

	single := apperrors.AsAppError(ToAppError("Booking", ValidationError{Field: "end", Message: "must be after start"}))
	if single == nil || !strings.Contains(single.Message, "end: must be after start") {
		t.Errorf("unexpected single error %+v", single)
	}
}
