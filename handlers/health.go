package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/actividades-api/database"
	"github.com/sahilchouksey/actividades-api/utils/response"
)

// Pinger is implemented by optional backing services such as the Redis cache
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports database and cache reachability
type HealthHandler struct {
	store database.Storage
	cache Pinger
}

// NewHealthHandler creates a health handler. cache may be nil.
func NewHealthHandler(store database.Storage, cache Pinger) *HealthHandler {
	return &HealthHandler{store: store, cache: cache}
}

// Check handles GET /api/v1/ping
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := fiber.Map{
		"status":   "ok",
		"database": "ok",
		"redis":    "disabled",
		"time":     time.Now().UTC().Format(time.RFC3339),
	}

	if err := h.store.HealthCheck(); err != nil {
		status["status"] = "degraded"
		status["database"] = err.Error()
		return c.Status(fiber.StatusServiceUnavailable).JSON(response.Response{
			Success: false,
			Message: "Database unreachable",
			Data:    status,
			Error:   &response.ErrorDetail{Code: "SERVICE_UNAVAILABLE", Message: "Database unreachable"},
		})
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			status["status"] = "degraded"
			status["redis"] = err.Error()
		} else {
			status["redis"] = "ok"
		}
	}

	return response.Success(c, status)
}
