package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mybambu/transfer-backend/internal/services"
)

// VerificationHandler exposes the phone verification API
type VerificationHandler struct {
	verification *services.VerificationService
}

// NewVerificationHandler creates a new verification handler
func NewVerificationHandler(verification *services.VerificationService) *VerificationHandler {
	return &VerificationHandler{verification: verification}
}

type requestCodePayload struct {
	PhoneNumber string `json:"phone_number"`
	Language    string `json:"language"`
}

type verifyCodePayload struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// RequestCode sends a verification code to a phone number
// POST /api/verify/request
func (h *VerificationHandler) RequestCode(c *fiber.Ctx) error {
	var payload requestCodePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if payload.PhoneNumber == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "phone_number is required",
		})
	}

	result, err := h.verification.RequestCode(payload.PhoneNumber, payload.Language)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send verification code",
		})
	}
	if !result.Allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error":       result.Reason,
			"retry_after": result.RetryAfter,
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// CheckCode verifies a submitted code
// POST /api/verify/check
func (h *VerificationHandler) CheckCode(c *fiber.Ctx) error {
	var payload verifyCodePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}
	if payload.PhoneNumber == "" || payload.Code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "phone_number and code are required",
		})
	}

	result, err := h.verification.VerifyCode(payload.PhoneNumber, payload.Code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to verify code",
		})
	}

	if !result.Valid {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"valid":         false,
			"reason":        result.Reason,
			"attempts_left": result.AttemptsLeft,
		})
	}

	return c.JSON(fiber.Map{"valid": true})
}
