package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Error labels returned in the "error" field of every error body.
const (
	CodeBadRequest       = "BAD REQUEST"
	CodeNotFound         = "NOT FOUND"
	CodeConflict         = "CONFLICT REQUEST"
	CodeUnsupportedState = "Unknown state: UNSUPPORTED_STATUS"
	CodeInternal         = "INTERNAL ERROR"
	CodeUnavailable      = "SERVICE UNAVAILABLE"
	CodeTooManyRequests  = "TOO MANY REQUESTS"
	CodeUnsupportedMedia = "UNSUPPORTED MEDIA TYPE"
)

type AppError struct {
	Code       string         `json:"error"`
	Message    string         `json:"description"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) StatusCode() int {
	return e.HTTPStatus
}

func (e *AppError) Response() ErrorResponse {
	return ErrorResponse{
		Error:       e.Code,
		Description: e.Message,
		Details:     e.Details,
	}
}

type ErrorResponse struct {
	Error       string         `json:"error"`
	Description string         `json:"description"`
	Details     map[string]any `json:"details,omitempty"`
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message, http.StatusBadRequest)
}

func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NotFoundWithID(resource string, id int64) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s with id=%d not found", resource, id),
		HTTPStatus: http.StatusNotFound,
		Details: map[string]any{
			"resource": resource,
			"id":       id,
		},
	}
}

// Validation reports malformed input. Field level failures go into details.
func Validation(message string, details map[string]any) *AppError {
	return &AppError{
		Code:       CodeBadRequest,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		Details:    details,
	}
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

// UnsupportedState is surfaced as 500 to stay wire compatible with existing clients.
func UnsupportedState(token string) *AppError {
	return New(CodeUnsupportedState, "Unknown state: "+token, http.StatusInternalServerError)
}

func Internal(message string, err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func Timeout(message string) *AppError {
	return New(CodeUnavailable, message, http.StatusServiceUnavailable)
}

func Unavailable(service string) *AppError {
	return New(CodeUnavailable, fmt.Sprintf("%s is temporarily unavailable", service), http.StatusServiceUnavailable)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message, http.StatusTooManyRequests)
}

func UnsupportedMediaType(message string) *AppError {
	return New(CodeUnsupportedMedia, message, http.StatusUnsupportedMediaType)
}

func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

func AsAppError(err error) *AppError {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return Internal("An unexpected error occurred", err)
}
