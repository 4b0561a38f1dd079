package health

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"

	httputil "shareit/pkg/http"
	"shareit/pkg/logger"
)

const readyTimeout = 2 * time.Second

type Response struct {
	Status     string `json:"status"`
	Dependency string `json:"dependency,omitempty"`
}

// Check verifies the dependency a process cannot serve without.
type Check func(ctx context.Context) error

type Handler struct {
	dependency string
	check      Check
	log        *logger.Logger
}

func NewHandler(dependency string, check Check, log *logger.Logger) *Handler {
	return &Handler{
		dependency: dependency,
		check:      check,
		log:        log,
	}
}

func MongoCheck(client *mongo.Client) Check {
	return func(ctx context.Context) error {
		return client.Ping(ctx, nil)
	}
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, Response{Status: "ok"}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := h.check(ctx); err != nil {
		h.log.FromContext(r.Context()).Error("Readiness check failed",
			"dependency", h.dependency,
			"error", err,
		)
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, Response{
			Status:     "unavailable",
			Dependency: h.dependency + ": error",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, Response{
		Status:     "ready",
		Dependency: h.dependency + ": ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
