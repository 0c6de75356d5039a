package handlers

import (
	"log"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/mybambu/transfer-backend/internal/services"
)

// WhatsAppHandler handles inbound WhatsApp webhooks from both providers
type WhatsAppHandler struct {
	dialogue *services.DialogueService
}

// NewWhatsAppHandler creates a new WhatsApp handler
func NewWhatsAppHandler(dialogue *services.DialogueService) *WhatsAppHandler {
	return &WhatsAppHandler{dialogue: dialogue}
}

// TwilioWebhookPayload represents an incoming WhatsApp message from Twilio
type TwilioWebhookPayload struct {
	MessageSid string `form:"MessageSid"`
	AccountSid string `form:"AccountSid"`
	From       string `form:"From"` // whatsapp:+15551234567
	To         string `form:"To"`
	Body       string `form:"Body"`
	NumMedia   string `form:"NumMedia"`
}

// HandleTwilioWebhook processes incoming Twilio WhatsApp messages. The webhook
// is acknowledged immediately; the conversation turn runs in the background so
// slow provider calls never time out the delivery.
func (h *WhatsAppHandler) HandleTwilioWebhook(c *fiber.Ctx) error {
	var payload TwilioWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		log.Printf("Error parsing webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	log.Printf("📱 WhatsApp message from %s: %s", payload.From, payload.Body)

	// Status callbacks arrive on the same URL with no body
	if payload.Body != "" && payload.From != "" {
		from := strings.TrimPrefix(payload.From, "whatsapp:")
		go h.dialogue.HandleIncomingMessage(from, payload.Body)
	}

	return c.SendStatus(fiber.StatusOK)
}

// HandleCloudVerify answers the Meta Cloud API webhook verification handshake
func (h *WhatsAppHandler) HandleCloudVerify(c *fiber.Ctx) error {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == os.Getenv("WHATSAPP_VERIFY_TOKEN") {
		log.Println("✅ Cloud API webhook verified")
		return c.SendString(challenge)
	}

	return c.SendStatus(fiber.StatusForbidden)
}

// cloudWebhookEvent is the Meta Cloud API event envelope (messages only)
type cloudWebhookEvent struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// HandleCloudWebhook processes incoming Meta Cloud API message events
func (h *WhatsAppHandler) HandleCloudWebhook(c *fiber.Ctx) error {
	var event cloudWebhookEvent

	if err := c.BodyParser(&event); err != nil {
		log.Printf("Error parsing cloud webhook: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	for _, entry := range event.Entry {
		for _, change := range entry.Changes {
			for _, message := range change.Value.Messages {
				if message.Type != "text" || message.Text.Body == "" {
					continue
				}
				log.Printf("📱 WhatsApp message from %s: %s", message.From, message.Text.Body)
				from := message.From
				body := message.Text.Body
				go h.dialogue.HandleIncomingMessage(from, body)
			}
		}
	}

	return c.SendStatus(fiber.StatusOK)
}

// TestWebhookPayload drives the conversation without a WhatsApp provider
type TestWebhookPayload struct {
	From    string `json:"from"`
	Message string `json:"message"`
}

// HandleTestWebhook processes a test message and returns the replies inline
func (h *WhatsAppHandler) HandleTestWebhook(c *fiber.Ctx) error {
	var payload TestWebhookPayload

	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid test payload",
		})
	}
	if payload.From == "" || payload.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "from and message are required",
		})
	}

	log.Printf("🧪 Test webhook from %s: %s", payload.From, payload.Message)

	replies := h.dialogue.HandleIncomingMessage(payload.From, payload.Message)

	return c.JSON(fiber.Map{
		"success": true,
		"replies": replies,
	})
}
