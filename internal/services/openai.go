package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	openaiChatURL = "https://api.openai.com/v1/chat/completions"
	openaiModel   = "gpt-4o-mini"
)

// OpenAIService answers free-form questions that the state machine cannot
// interpret. It is only consulted while the session is idle; once a transfer
// is in progress the deterministic handlers own the conversation.
type OpenAIService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// FallbackContext carries the conversational state the model should know about
type FallbackContext struct {
	PhoneNumber    string
	Language       string
	SessionStep    string
	RecentMessages []string
	Amount         float64
	Country        string
	RecipientName  string
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type openaiAPIError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// NewOpenAIService creates the fallback client. Returns an error when the
// API key is missing so the caller can run without the fallback.
func NewOpenAIService() (*OpenAIService, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	return &OpenAIService{
		apiKey:  apiKey,
		baseURL: openaiChatURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}, nil
}

// GenerateFallbackReply asks the model for a support-agent answer to a
// message the state machine could not interpret
func (o *OpenAIService) GenerateFallbackReply(userMessage string, ctx FallbackContext) (string, error) {
	system := buildSystemPrompt(ctx)

	reqBody := chatRequest{
		Model: openaiModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: userMessage},
		},
		MaxTokens:   512,
		Temperature: 0.7,
	}

	data, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, o.baseURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		log.Printf("❌ OpenAI error: %v", err)
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr openaiAPIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error.Message != "" {
			log.Printf("❌ OpenAI error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			return "", fmt.Errorf("openai api error (%d): %s", resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("openai api error (%d)", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty completion")
	}

	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// buildSystemPrompt assembles the bilingual support-agent instructions plus
// whatever partial transfer state the session already holds
func buildSystemPrompt(ctx FallbackContext) string {
	var b strings.Builder

	if ctx.Language == "es" {
		b.WriteString(`Eres un asistente de soporte de MyBambu, una aplicación de transferencias de dinero internacional.

TU ROL:
- Respondes preguntas sobre transferencias, errores, procesos y países
- Eres amigable, profesional y servicial

CÓMO RESPONDER:
- Habla en español, sé claro y útil (2-4 oraciones)
- Usa emojis ocasionalmente pero no en exceso

INFORMACIÓN DEL SERVICIO:
- Transferencias a: México 🇲🇽, Colombia 🇨🇴, Brasil 🇧🇷, Reino Unido 🇬🇧, Europa 🇪🇺
- Tiempo de entrega: 1-3 días hábiles (varía por país)
- Fee típico: ~3% del monto
- Para empezar: "Enviar $100 a México"

COMANDOS ÚTILES:
- "Enviar [monto] a [país]" - Iniciar transferencia
- "Cancelar" - Cancelar transferencia actual
- "Ayuda" - Ver ayuda general
- NUNCA inventes tasas exactas - di "Para ver la tasa actual, inicia una transferencia"`)
	} else {
		b.WriteString(`You are a support agent for MyBambu, an international money transfer app.

YOUR ROLE:
- Answer questions about transfers, errors, processes, and countries
- Be friendly, professional, and helpful

HOW TO RESPOND:
- Speak in English, be clear and helpful (2-4 sentences)
- Use emojis occasionally but not excessively

SERVICE INFORMATION:
- Transfers to: Mexico 🇲🇽, Colombia 🇨🇴, Brazil 🇧🇷, UK 🇬🇧, Europe 🇪🇺
- Delivery time: 1-3 business days (varies by country)
- Typical fee: ~3% of amount
- To start: "Send $100 to Mexico"

USEFUL COMMANDS:
- "Send [amount] to [country]" - Start transfer
- "Cancel" - Cancel current transfer
- "Help" - See general help
- NEVER make up exact rates - say "To see current rate, start a transfer"`)
	}

	if ctx.Amount > 0 || ctx.Country != "" || ctx.RecipientName != "" {
		if ctx.Language == "es" {
			b.WriteString("\n\nCONTEXTO DE TRANSFERENCIA ACTUAL:")
			if ctx.Amount > 0 {
				fmt.Fprintf(&b, "\n- Monto: $%.2f USD", ctx.Amount)
			}
			if ctx.Country != "" {
				fmt.Fprintf(&b, "\n- País: %s", ctx.Country)
			}
			if ctx.RecipientName != "" {
				fmt.Fprintf(&b, "\n- Destinatario: %s", ctx.RecipientName)
			}
		} else {
			b.WriteString("\n\nCURRENT TRANSFER CONTEXT:")
			if ctx.Amount > 0 {
				fmt.Fprintf(&b, "\n- Amount: $%.2f USD", ctx.Amount)
			}
			if ctx.Country != "" {
				fmt.Fprintf(&b, "\n- Country: %s", ctx.Country)
			}
			if ctx.RecipientName != "" {
				fmt.Fprintf(&b, "\n- Recipient: %s", ctx.RecipientName)
			}
		}
	}

	if ctx.SessionStep != "" {
		fmt.Fprintf(&b, "\n\nSESSION STEP: %s", ctx.SessionStep)
	}
	if len(ctx.RecentMessages) > 0 {
		b.WriteString("\n\nRECENT CONVERSATION:\n")
		b.WriteString(strings.Join(ctx.RecentMessages, "\n"))
	}

	return b.String()
}
