package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mybambu/transfer-backend/internal/storage"
)

// AdminHandler exposes monitoring endpoints for operators
type AdminHandler struct {
	sessions storage.SessionStore
	store    storage.Store
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(sessions storage.SessionStore, store storage.Store) *AdminHandler {
	return &AdminHandler{sessions: sessions, store: store}
}

// ListSessions returns all active conversation sessions
// GET /admin/sessions
func (h *AdminHandler) ListSessions(c *fiber.Ctx) error {
	active := h.sessions.Active()

	summaries := make([]fiber.Map, 0, len(active))
	for _, session := range active {
		summaries = append(summaries, fiber.Map{
			"phone_number":  session.PhoneNumber,
			"state":         session.State,
			"amount":        session.Amount,
			"country":       session.Country,
			"currency":      session.Currency,
			"language":      session.Language,
			"last_activity": session.LastActivity,
		})
	}

	return c.JSON(fiber.Map{
		"count":    len(summaries),
		"sessions": summaries,
	})
}

// TransferHistory returns the transfer records for a phone number
// GET /admin/transfers/:phone
func (h *AdminHandler) TransferHistory(c *fiber.Ctx) error {
	phone := c.Params("phone")
	if phone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "phone is required",
		})
	}

	transfers, err := h.store.GetTransfersByPhone(phone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load transfers",
		})
	}

	return c.JSON(fiber.Map{
		"count":     len(transfers),
		"transfers": transfers,
	})
}
