package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"shareit/internal/items/service"
	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
	"shareit/pkg/model"
)

// searchSegment shares the :id position; httprouter cannot register both.
const searchSegment = "search"

type ItemHandler struct {
	service service.ItemService
	log     *logger.Logger
}

func NewItemHandler(service service.ItemService, log *logger.Logger) *ItemHandler {
	return &ItemHandler{
		service: service,
		log:     log,
	}
}

func (h *ItemHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/items", h.Create)
	router.GET("/items", h.GetByOwner)
	router.GET("/items/:id", h.GetByID)
	router.PATCH("/items/:id", h.Update)
	router.DELETE("/items/:id", h.Delete)
	router.POST("/items/:id/comment", h.AddComment)
}

func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	var input model.ItemCreate
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	item, err := h.service.Create(r.Context(), userID, &input)
	if err != nil {
		h.writeError(w, r, "Create", err)
		return
	}

	if err := httputil.WriteCreated(w, item); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *ItemHandler) GetByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetByOwner", err)
		return
	}
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, r, "GetByOwner", err)
		return
	}

	items, err := h.service.GetByOwner(r.Context(), userID, page)
	if err != nil {
		h.writeError(w, r, "GetByOwner", err)
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOwner", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if ps.ByName("id") == searchSegment {
		h.Search(w, r, ps)
		return
	}

	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}
	itemID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	item, err := h.service.GetByID(r.Context(), userID, itemID)
	if err != nil {
		h.writeError(w, r, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, item); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// Search answers GET /items/search. The user header is optional here.
func (h *ItemHandler) Search(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if _, _, err := httputil.ExtractOptionalUserID(r); err != nil {
		h.writeError(w, r, "Search", err)
		return
	}
	page, err := httputil.ExtractPage(r)
	if err != nil {
		h.writeError(w, r, "Search", err)
		return
	}

	items, err := h.service.Search(r.Context(), r.URL.Query().Get("text"), page)
	if err != nil {
		h.writeError(w, r, "Search", err)
		return
	}

	if err := httputil.WriteSuccess(w, items); err != nil {
		h.log.Error("failed to write success response", "handler", "Search", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Update", err)
		return
	}
	itemID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	var updates model.ItemUpdate
	if err := httputil.DecodeJSON(r, &updates); err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	item, err := h.service.Update(r.Context(), userID, itemID, &updates)
	if err != nil {
		h.writeError(w, r, "Update", err)
		return
	}

	if err := httputil.WriteSuccess(w, item); err != nil {
		h.log.Error("failed to write success response", "handler", "Update", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "Delete", err)
		return
	}
	itemID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "Delete", err)
		return
	}

	if err := h.service.Delete(r.Context(), userID, itemID); err != nil {
		h.writeError(w, r, "Delete", err)
		return
	}

	httputil.WriteNoContent(w)
}

func (h *ItemHandler) AddComment(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID, err := httputil.ExtractUserID(r)
	if err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}
	itemID, err := httputil.ParseID(ps, "id")
	if err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}

	var input model.CommentCreate
	if err := httputil.DecodeJSON(r, &input); err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}

	comment, err := h.service.AddComment(r.Context(), userID, itemID, &input)
	if err != nil {
		h.writeError(w, r, "AddComment", err)
		return
	}

	if err := httputil.WriteSuccess(w, comment); err != nil {
		h.log.Error("failed to write success response", "handler", "AddComment", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ItemHandler) writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.FromContext(r.Context()).Error("failed to write error response",
			"handler", handler,
			"operation", "WriteError",
			"error", writeErr,
		)
	}
}
