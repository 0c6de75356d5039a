package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mybambu/transfer-backend/internal/storage"
)

// HealthHandler reports service health for monitoring
type HealthHandler struct {
	sessions storage.SessionStore
	store    storage.Store
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(sessions storage.SessionStore, store storage.Store) *HealthHandler {
	return &HealthHandler{sessions: sessions, store: store}
}

// Check returns service status and basic counters
// GET /health
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	status := "healthy"
	statusCode := fiber.StatusOK

	transferCount, err := h.store.CountTransfers()
	if err != nil {
		status = "unhealthy"
		statusCode = fiber.StatusServiceUnavailable
	}

	return c.Status(statusCode).JSON(fiber.Map{
		"status":          status,
		"active_sessions": len(h.sessions.Active()),
		"transfers":       transferCount,
	})
}
