package routes

import (
	"log"
	"os"

	"github.com/gofiber/fiber/v2"

	"github.com/mybambu/transfer-backend/internal/handlers"
	"github.com/mybambu/transfer-backend/internal/middleware"
	"github.com/mybambu/transfer-backend/internal/services"
	"github.com/mybambu/transfer-backend/internal/storage"
)

// SetupRoutes configures all API routes
func SetupRoutes(app *fiber.App, sessions storage.SessionStore, store storage.Store,
	dialogue *services.DialogueService, verification *services.VerificationService) {

	whatsappHandler := handlers.NewWhatsAppHandler(dialogue)
	verificationHandler := handlers.NewVerificationHandler(verification)
	adminHandler := handlers.NewAdminHandler(sessions, store)
	healthHandler := handlers.NewHealthHandler(sessions, store)

	// Root endpoint
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "MyBambu Transfer Backend",
			"version": "1.0.0",
			"endpoints": fiber.Map{
				"health":        "/health",
				"webhook":       "/webhook/whatsapp",
				"test_whatsapp": "/test/whatsapp",
				"verify":        "/api/verify",
				"admin":         "/admin",
			},
		})
	})

	app.Get("/health", healthHandler.Check)

	// ========== WEBHOOK ROUTES ==========
	webhooks := app.Group("/webhook")

	// Meta Cloud API verification handshake
	webhooks.Get("/whatsapp", whatsappHandler.HandleCloudVerify)

	if os.Getenv("WHATSAPP_PROVIDER") == "cloud" {
		webhooks.Post("/whatsapp", whatsappHandler.HandleCloudWebhook)
	} else if os.Getenv("ENVIRONMENT") == "development" || os.Getenv("DISABLE_WEBHOOK_VALIDATION") == "true" {
		// Development: skip validation for ngrok
		webhooks.Post("/whatsapp", whatsappHandler.HandleTwilioWebhook)
		log.Println("⚠️  WhatsApp webhook validation DISABLED for development")
	} else {
		webhooks.Post("/whatsapp", middleware.ValidateTwilioSignature(), whatsappHandler.HandleTwilioWebhook)
	}

	// ========== TEST ROUTES (Development Only) ==========
	app.Post("/test/whatsapp", whatsappHandler.HandleTestWebhook)

	// ========== VERIFICATION ROUTES ==========
	verify := app.Group("/api/verify")
	verify.Post("/request", verificationHandler.RequestCode)
	verify.Post("/check", verificationHandler.CheckCode)

	// ========== ADMIN ROUTES ==========
	admin := app.Group("/admin")
	admin.Get("/sessions", adminHandler.ListSessions)
	admin.Get("/transfers/:phone", adminHandler.TransferHistory)
}
