package handler

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"shareit/internal/bookings/service"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

const ownerSegment = "owner"

type BookingHandler struct {
	service service.BookingService
	log     *logger.Logger
}

func NewBookingHandler(service service.BookingService, log *logger.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log,
	}
}

func (h *BookingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/bookings", h.Create)
	router.GET("/bookings", h.ListByBooker)
	router.GET("/bookings/:id", h.GetByID)
	router.PATCH("/bookings/:id", h.Approve)
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	var input model.BookingCreate
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	booking, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, booking); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *BookingHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Approve", err)
		return
	}
	bookingID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "Approve", err)
		return
	}
	approved, err := httputil.ParseBool(r, "approved")
	if err != nil {
		h.writeError(w, r, "Approve", err)
		return
	}

	booking, err := h.service.Approve(r.Context(), userID, bookingID, approved)
	if err != nil {
		h.writeError(w, r, "Approve", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "Approve", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == ownerSegment {
		h.ListByOwner(w, r, ps)
		return
	}

	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}
	bookingID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	booking, err := h.service.GetByID(r.Context(), userID, bookingID)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, booking); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) ListByBooker(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListByBooker", h.service.ListByBooker)
}

// ListByOwner answers GET /bookings/owner.
func (h *BookingHandler) ListByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.list(w, r, "ListByOwner", h.service.ListByOwner)
}

type listFunc func(ctx context.Context, userID int64, state string, page model.Page) ([]*model.BookingView, error)

func (h *BookingHandler) list(w http.ResponseWriter, r *http.Request, handler string, list listFunc) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, handler, err)
		return
	}
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, r, handler, err)
		return
	}

	bookings, err := list(r.Context(), userID, r.URL.Query().Get("state"), page)
	if err != nil {
		h.writeError(w, r, handler, err)
		return
	}

	if err := httputil.WriteSuccess(w, bookings); err != nil {
		h.log.Error("failed to write success response", "handler", handler, "operation", "WriteSuccess", "error", err)
	}
}

func (h *BookingHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.FromContext(r.Context()).Error("failed to write error response",
			"handler", handler,
			"operation", "WriteError",
			"error", writeErr,
		)
	}
}
