package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"shareit/internal/requests/service"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

const allSegment = "all"

type RequestHandler struct {
	service service.RequestService
	log     *logger.Logger
}

func NewRequestHandler(service service.RequestService, log *logger.Logger) *RequestHandler {
	return &RequestHandler{
		service: service,
		log:     log,
	}
}

func (h *RequestHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/requests", h.Create)
	router.GET("/requests", h.GetOwn)
	router.GET("/requests/:id", h.GetByID)
}

func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	var input model.RequestCreate
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	request, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, request); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *RequestHandler) GetOwn(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetOwn", err)
		return
	}

	requests, err := h.service.GetOwn(r.Context(), userID)
	if err != nil {
		h.writeError(w, r, "GetOwn", err)
		return
	}

	if err := httputil.WriteSuccess(w, requests); err != nil {
		h.log.Error("failed to write success response", "handler", "GetOwn", "operation", "WriteSuccess", "error", err)
	}
}

// GetAll answers GET /requests/all, which shares the :id route.
func (h *RequestHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetAll", err)
		return
	}
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, r, "GetAll", err)
		return
	}

	requests, err := h.service.GetAll(r.Context(), userID, page)
	if err != nil {
		h.writeError(w, r, "GetAll", err)
		return
	}

	if err := httputil.WriteSuccess(w, requests); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RequestHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == allSegment {
		h.GetAll(w, r, ps)
		return
	}

	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}
	requestID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	request, err := h.service.GetByID(r.Context(), userID, requestID)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, request); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *RequestHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.FromContext(r.Context()).Error("failed to write error response",
			"handler", handler,
			"operation", "WriteError",
			"error", writeErr,
		)
	}
}
