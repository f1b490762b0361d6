package handler

import (
	"context"
	"time"

	"jobboard/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

const healthPingTimeout = 2 * time.Second

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

// NewHealthHandler reports the database as critical and the cache as
// informational; cache may be nil.
func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
	defer cancel()

	data := map[string]string{"database": "up"}
	status := fiber.StatusOK
	msg := response.MessageOK

	if h.db == nil || h.db.Ping(ctx) != nil {
		data["database"] = "down"
		status = fiber.StatusServiceUnavailable
		msg = "database unavailable"
	}
	if h.cache != nil {
		data["cache"] = "up"
		if err := h.cache.Ping(ctx); err != nil {
			data["cache"] = "down"
		}
	}

	return response.Success(c, status, msg, data)
}
