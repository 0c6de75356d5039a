package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// CloudAPIService sends WhatsApp messages through the Meta Cloud API
// (WHATSAPP_PROVIDER=cloud)
type CloudAPIService struct {
	token         string
	phoneNumberID string
	baseURL       string
	client        *http.Client
}

type cloudTextMessage struct {
	MessagingProduct string        `json:"messaging_product"`
	To               string        `json:"to"`
	Text             cloudTextBody `json:"text"`
}

type cloudTextBody struct {
	Body string `json:"body"`
}

type cloudAPIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// NewCloudAPIService creates a WhatsApp Cloud API sender
func NewCloudAPIService() (*CloudAPIService, error) {
	token := os.Getenv("WHATSAPP_ACCESS_TOKEN")
	phoneNumberID := os.Getenv("WHATSAPP_PHONE_NUMBER_ID")

	if token == "" || phoneNumberID == "" {
		return nil, fmt.Errorf("missing WhatsApp Cloud API credentials in environment variables")
	}

	return &CloudAPIService{
		token:         token,
		phoneNumberID: phoneNumberID,
		baseURL:       "https://graph.facebook.com/v18.0",
		client:        &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// SendText sends a WhatsApp text message via the Cloud API
func (c *CloudAPIService) SendText(to, body string) error {
	payload := cloudTextMessage{
		MessagingProduct: "whatsapp",
		To:               to,
		Text:             cloudTextBody{Body: body},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("❌ WhatsApp send error: %v", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		var apiErr cloudAPIError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			log.Printf("❌ WhatsApp send error: %s", apiErr.Error.Message)
			return fmt.Errorf("whatsapp api error %d: %s", resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("whatsapp api error %d", resp.StatusCode)
	}

	preview := body
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	log.Printf("📤 Sent to %s: %s", to, preview)
	return nil
}
