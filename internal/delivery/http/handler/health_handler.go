package handler

import (
	"context"
	"time"

	"skill-verify/internal/database"
	"skill-verify/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db database.DB
}

func NewHealthHandler(db database.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.GetHealth)
}

func (h *HealthHandler) GetHealth(c fiber.Ctx) error {
	out := fiber.Map{"status": "ok"}

	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			out["database"] = "down"
			return response.Error(c, fiber.StatusServiceUnavailable, response.MessageError, out)
		}
		out["database"] = "up"
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
