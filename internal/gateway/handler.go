package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"

	bookingvalidator "shareit/internal/bookings/validator"
	itemvalidator "shareit/internal/items/validator"
	requestvalidator "shareit/internal/requests/validator"
	uservalidator "shareit/internal/users/validator"
	"shareit/pkg/client"
	"shareit/pkg/clock"
	apperrors "shareit/pkg/errors"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"
	"shareit/pkg/validation"
)

const upstreamName = "shareit-server"

// Forwarder relays a request to the server tier.
type Forwarder interface {
	Forward(ctx context.Context, r *http.Request, body []byte) (*client.Response, error)
}

// Validators groups the per-domain validators the gateway checks bodies with.
type Validators struct {
	Users    *uservalidator.UserValidator
	Items    *itemvalidator.ItemValidator
	Bookings *bookingvalidator.BookingValidator
	Requests *requestvalidator.RequestValidator
}

func NewValidators() Validators {
	return Validators{
		Users:    uservalidator.NewUserValidator(),
		Items:    itemvalidator.NewItemValidator(),
		Bookings: bookingvalidator.NewBookingValidator(),
		Requests: requestvalidator.NewRequestValidator(),
	}
}

// Handler checks request shape and forwards everything that passes verbatim.
// Domain rules stay with the server.
type Handler struct {
	server     Forwarder
	validators Validators
	clock      clock.Clock
	log        *logger.Logger
}

func NewHandler(server Forwarder, validators Validators, clk clock.Clock, log *logger.Logger) *Handler {
	return &Handler{
		server:     server,
		validators: validators,
		clock:      clk,
		log:        log,
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/users", h.CreateUser)
	router.GET("/users", h.passThrough)
	router.GET("/users/:id", h.withID)
	router.PATCH("/users/:id", h.UpdateUser)
	router.DELETE("/users/:id", h.withID)

	router.POST("/items", h.CreateItem)
	router.GET("/items", h.paged)
	router.GET("/items/:id", h.GetItem)
	router.PATCH("/items/:id", h.UpdateItem)
	router.DELETE("/items/:id", h.withUserAndID)
	router.POST("/items/:id/comment", h.AddComment)

	router.POST("/bookings", h.CreateBooking)
	router.GET("/bookings", h.ListBookings)
	router.GET("/bookings/:id", h.GetBooking)
	router.PATCH("/bookings/:id", h.ApproveBooking)

	router.POST("/requests", h.CreateRequest)
	router.GET("/requests", h.withUser)
	router.GET("/requests/:id", h.GetRequest)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := decodeBody(r, func(u *model.UserCreate) error {
		return validation.ToAppError("User", h.validators.Users.ValidateCreate(u))
	})
	if err != nil {
		h.writeError(w, r, "CreateUser", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := httputil.ParseID(ps, "id"); err != nil {
		h.writeError(w, r, "UpdateUser", err)
		return
	}
	body, err := decodeBody(r, func(u *model.UserUpdate) error {
		return validation.ToAppError("User", h.validators.Users.ValidateUpdate(u))
	})
	if err != nil {
		h.writeError(w, r, "UpdateUser", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := httputil.ExtractUserID(r); err != nil {
		h.writeError(w, r, "CreateItem", err)
		return
	}
	body, err := decodeBody(r, func(i *model.ItemCreate) error {
		return validation.ToAppError("Item", h.validators.Items.ValidateCreate(i))
	})
	if err != nil {
		h.writeError(w, r, "CreateItem", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := requireUserAndID(r, ps); err != nil {
		h.writeError(w, r, "UpdateItem", err)
		return
	}
	body, err := decodeBody(r, func(i *model.ItemUpdate) error {
		return validation.ToAppError("Item", h.validators.Items.ValidateUpdate(i))
	})
	if err != nil {
		h.writeError(w, r, "UpdateItem", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "search" {
		h.SearchItems(w, r, ps)
		return
	}
	h.withUserAndID(w, r, ps)
}

func (h *Handler) SearchItems(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, _, err := httputil.ExtractOptionalUserID(r); err != nil {
		h.writeError(w, r, "SearchItems", err)
		return
	}
	if _, err := httputil.ExtractPage(r); err != nil {
		h.writeError(w, r, "SearchItems", err)
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := requireUserAndID(r, ps); err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}
	body, err := decodeBody(r, func(c *model.CommentCreate) error {
		return validation.ToAppError("Comment", h.validators.Items.ValidateComment(c))
	})
	if err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}
	h.forward(w, r, body)
}

// CreateBooking also requires the window to lie ahead of now.
func (h *Handler) CreateBooking(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := httputil.ExtractUserID(r); err != nil {
		h.writeError(w, r, "CreateBooking", err)
		return
	}
	now := h.clock.Now()
	body, err := decodeBody(r, func(b *model.BookingCreate) error {
		return validation.ToAppError("Booking", h.validators.Bookings.ValidateWindow(b, now))
	})
	if err != nil {
		h.writeError(w, r, "CreateBooking", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) ListBookings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := requirePagedUser(r); err != nil {
		h.writeError(w, r, "ListBookings", err)
		return
	}
	token := r.URL.Query().Get("state")
	if _, ok := model.ParseBookingState(token); !ok {
		h.writeError(w, r, "ListBookings", apperrors.UnsupportedState(token))
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) GetBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "owner" {
		h.ListBookings(w, r, ps)
		return
	}
	h.withUserAndID(w, r, ps)
}

func (h *Handler) ApproveBooking(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := requireUserAndID(r, ps); err != nil {
		h.writeError(w, r, "ApproveBooking", err)
		return
	}
	if _, err := httputil.ParseBool(r, "approved"); err != nil {
		h.writeError(w, r, "ApproveBooking", err)
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) CreateRequest(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := httputil.ExtractUserID(r); err != nil {
		h.writeError(w, r, "CreateRequest", err)
		return
	}
	body, err := decodeBody(r, func(q *model.RequestCreate) error {
		return validation.ToAppError("Request", h.validators.Requests.ValidateCreate(q))
	})
	if err != nil {
		h.writeError(w, r, "CreateRequest", err)
		return
	}
	h.forward(w, r, body)
}

func (h *Handler) GetRequest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == "all" {
		h.paged(w, r, ps)
		return
	}
	h.withUserAndID(w, r, ps)
}

func (h *Handler) passThrough(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.forward(w, r, nil)
}

func (h *Handler) withID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if _, err := httputil.ParseID(ps, "id"); err != nil {
		h.writeError(w, r, "withID", err)
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) withUser(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, err := httputil.ExtractUserID(r); err != nil {
		h.writeError(w, r, "withUser", err)
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) withUserAndID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := requireUserAndID(r, ps); err != nil {
		h.writeError(w, r, "withUserAndID", err)
		return
	}
	h.forward(w, r, nil)
}

func (h *Handler) paged(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := requirePagedUser(r); err != nil {
		h.writeError(w, r, "paged", err)
		return
	}
	h.forward(w, r, nil)
}

// forward relays the server's status, content type and body unchanged.
func (h *Handler) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	resp, err := h.server.Forward(r.Context(), r, body)
	if err != nil {
		h.log.FromContext(r.Context()).Error("Failed to forward request",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		h.writeError(w, r, "forward", apperrors.Unavailable(upstreamName))
		return
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		h.log.FromContext(r.Context()).Warn("Upstream returned server error",
			"method", r.Method,
			"path", r.URL.Path,
			"status", resp.StatusCode,
			"description", client.GetErrorMessage(resp),
		)
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) == 0 {
		return
	}
	if _, err := w.Write(resp.Body); err != nil {
		h.log.FromContext(r.Context()).Error("failed to relay response body", "path", r.URL.Path, "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.FromContext(r.Context()).Error("failed to write error response",
			"handler", handler,
			"operation", "WriteError",
			"error", writeErr,
		)
	}
}

// decodeBody reads the raw body, decodes it into T and runs check on it.
// The raw bytes are returned so the server receives exactly what the client sent.
func decodeBody[T any](r *http.Request, check func(*T) error) ([]byte, error) {
	if r.Body == nil {
		return nil, apperrors.BadRequest("request body is required")
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, apperrors.New("PAYLOAD TOO LARGE", "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return nil, apperrors.BadRequest("failed to read request body")
	}
	if len(raw) == 0 {
		return nil, apperrors.BadRequest("request body is required")
	}

	var target T
	if err := json.Unmarshal(raw, &target); err != nil {
		return nil, apperrors.BadRequest("Invalid request body")
	}
	if err := check(&target); err != nil {
		return nil, err
	}
	return raw, nil
}

func requireUserAndID(r *http.Request, ps httprouter.Params) error {
	if _, err := httputil.ExtractUserID(r); err != nil {
		return err
	}
	_, err := httputil.ParseID(ps, "id")
	return err
}

func requirePagedUser(r *http.Request) error {
	if _, err := httputil.ExtractUserID(r); err != nil {
		return err
	}
	_, err := httputil.ExtractPage(r)
	return err
}
