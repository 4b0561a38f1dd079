package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	apperrors "shareit/pkg/errors"
	"shareit/pkg/model"

	"github.com/julienschmidt/httprouter"
)

// UserIDHeader carries the acting user's id. It is trusted as is.
const UserIDHeader = "X-Sharer-User-Id"

// ExtractPage reads from/size query parameters. from must be >= 0 and size > 0.
func ExtractPage(r *http.Request) (model.Page, error) {
	query := r.URL.Query()
	page := model.DefaultPage()

	if s := query.Get("from"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return page, apperrors.BadRequest("invalid from parameter: " + s)
		}
		if v < 0 {
			return page, apperrors.BadRequest("from must not be negative")
		}
		page.From = v
	}

	if s := query.Get("size"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return page, apperrors.BadRequest("invalid size parameter: " + s)
		}
		if v <= 0 {
			return page, apperrors.BadRequest("size must be positive")
		}
		page.Size = v
	}

	return page, nil
}

// ExtractUserID returns the acting user id from the request header.
func ExtractUserID(r *http.Request) (int64, error) {
	raw := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if raw == "" {
		return 0, apperrors.BadRequest(fmt.Sprintf("header %s is required", UserIDHeader))
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest(fmt.Sprintf("header %s must be a positive number, got: %s", UserIDHeader, raw))
	}
	return id, nil
}

// ExtractOptionalUserID is ExtractUserID for routes where the header may be absent.
func ExtractOptionalUserID(r *http.Request) (int64, bool, error) {
	if strings.TrimSpace(r.Header.Get(UserIDHeader)) == "" {
		return 0, false, nil
	}
	id, err := ExtractUserID(r)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// ParseID reads a positive numeric path parameter.
func ParseID(ps httprouter.Params, name string) (int64, error) {
	raw := ps.ByName(name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.BadRequest(fmt.Sprintf("invalid %s: %s", name, raw))
	}
	return id, nil
}

// ParseBool reads a required boolean query parameter.
func ParseBool(r *http.Request, name string) (bool, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return false, apperrors.BadRequest(fmt.Sprintf("query parameter %s is required", name))
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.BadRequest(fmt.Sprintf("invalid %s parameter: %s", name, raw))
	}
	return v, nil
}

// DecodeJSON decodes the request body into target.
func DecodeJSON(r *http.Request, target any) error {
	if r.Body == nil {
		return apperrors.BadRequest("request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.BadRequest("request body is required")
		}
		return apperrors.BadRequest("Invalid request body")
	}
	return nil
}
