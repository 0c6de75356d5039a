package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/mybambu/transfer-backend/database"
	"github.com/mybambu/transfer-backend/internal/jobs"
	"github.com/mybambu/transfer-backend/internal/models"
	"github.com/mybambu/transfer-backend/internal/routes"
	"github.com/mybambu/transfer-backend/internal/services"
	"github.com/mybambu/transfer-backend/internal/storage"
)

func main() {
	// Load .env file for local development
	if os.Getenv("INSTANCE_CONNECTION_NAME") == "" {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("⚠️  No .env file found - checking environment variables")
		}
	}

	mode := os.Getenv("MODE")
	if mode == "" {
		mode = "DEMO"
	}

	// Initialize storage
	var store storage.Store

	if os.Getenv("USE_MEMORY_STORE") == "true" {
		log.Println("⚠️  Using in-memory storage (not for production!)")
		store = storage.NewMemoryStore()
	} else {
		log.Println("📦 Connecting to PostgreSQL database...")
		database.Connect()

		log.Println("🔄 Running database migrations...")
		err := database.DB.AutoMigrate(
			&models.Transfer{},
			&models.VerificationCode{},
		)
		if err != nil {
			log.Fatal("Failed to migrate database:", err)
		}
		log.Println("✅ Database migrations completed!")

		store = storage.NewDatabaseStore(database.DB)
		log.Println("✅ Using PostgreSQL database storage")
	}

	sessions := storage.NewMemorySessionStore()

	// Pick the WhatsApp provider
	var sender services.MessageSender
	if os.Getenv("WHATSAPP_PROVIDER") == "cloud" {
		cloudService, err := services.NewCloudAPIService()
		if err != nil {
			log.Printf("⚠️  Cloud API sender not initialized: %v", err)
		} else {
			sender = cloudService
			log.Println("✅ WhatsApp Cloud API sender initialized")
		}
	} else {
		twilioService, err := services.NewTwilioService()
		if err != nil {
			log.Printf("⚠️  Twilio sender not initialized: %v", err)
		} else {
			sender = twilioService
			log.Println("✅ Twilio sender initialized")
		}
	}
	if sender == nil {
		log.Println("⚠️  No WhatsApp sender configured - replies only visible on /test/whatsapp")
	}

	// Payments provider is only needed for real transfers
	var wise *services.WiseService
	if mode == "PRODUCTION" {
		var err error
		wise, err = services.NewWiseService()
		if err != nil {
			log.Fatal("MODE=PRODUCTION requires Wise credentials: ", err)
		}
		log.Println("✅ Wise payments client initialized")
	} else {
		log.Println("🎭 Running in DEMO mode - no real transfers")
	}

	// AI fallback is optional
	ai, err := services.NewOpenAIService()
	if err != nil {
		log.Printf("⚠️  AI fallback disabled: %v", err)
		ai = nil
	} else {
		log.Println("✅ AI fallback initialized")
	}

	dialogue := services.NewDialogueService(sessions, store, sender, wise, ai, mode)
	verification := services.NewVerificationService(store, sender)

	cleanupJob := jobs.NewCleanupJob(sessions, verification)
	cleanupJob.Start()

	// Create fiber app
	app := fiber.New(fiber.Config{
		AppName: "MyBambu Transfer Backend v1.0.0",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	routes.SetupRoutes(app, sessions, store, dialogue, verification)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Handle graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("\n🛑 Gracefully shutting down...")
		log.Println("⏹️  Stopping cleanup job...")
		cleanupJob.Stop()
		log.Println("⏹️  Shutting down server...")
		_ = app.Shutdown()
	}()

	log.Println("========================================")
	log.Printf("🚀 MyBambu Transfer Backend starting on port %s", port)
	log.Printf("📊 Storage: %s", storageType())
	log.Printf("💸 Mode: %s", mode)
	log.Printf("📱 WhatsApp provider: %s", providerName())
	log.Println("========================================")

	log.Fatal(app.Listen(":" + port))
}

func storageType() string {
	if os.Getenv("USE_MEMORY_STORE") == "true" {
		return "In-Memory (Testing)"
	}
	return "PostgreSQL Database"
}

func providerName() string {
	if os.Getenv("WHATSAPP_PROVIDER") == "cloud" {
		return "Meta Cloud API"
	}
	return "Twilio"
}
