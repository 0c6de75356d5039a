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

	"github.com/google/uuid"

	"github.com/mybambu/transfer-backend/internal/models"
)

// ProviderError is a failed payments-API call. Any provider failure other
// than the funding-authorization denial is terminal for the submission
// attempt; the dialogue manager resets the session and shows Message.
type ProviderError struct {
	Status  int
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}

// WiseService talks to the Wise API (quote, recipient, transfer, funding)
type WiseService struct {
	client    *http.Client
	baseURL   string
	apiKey    string
	profileID string
}

// SendMoneyParams carries the validated session fields into the submission
type SendMoneyParams struct {
	Amount           float64
	RecipientName    string
	RecipientCountry string
	TargetCurrency   string
	Reference        string
	BankDetails      map[string]string
}

// Quote is the provider's pricing response
type Quote struct {
	ID                string  `json:"id"`
	Rate              float64 `json:"rate"`
	Fee               float64 `json:"fee"`
	TargetAmount      float64 `json:"targetAmount"`
	EstimatedDelivery string  `json:"estimatedDelivery"`
}

// Recipient is the provider's created recipient account
type Recipient struct {
	ID int64 `json:"id"`
}

// WiseTransfer is the provider's created transfer
type WiseTransfer struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// NewWiseService creates a Wise API client from environment configuration
func NewWiseService() (*WiseService, error) {
	apiKey := os.Getenv("WISE_API_KEY")
	profileID := os.Getenv("WISE_PROFILE_ID")
	apiURL := os.Getenv("WISE_API_URL")
	if apiURL == "" {
		apiURL = "https://api.sandbox.transferwise.tech"
	}

	if apiKey == "" || profileID == "" {
		return nil, fmt.Errorf("missing Wise credentials in environment variables")
	}

	return &WiseService{
		// 15 seconds to stay within the webhook acknowledgement window
		client:    &http.Client{Timeout: 15 * time.Second},
		baseURL:   apiURL,
		apiKey:    apiKey,
		profileID: profileID,
	}, nil
}

// post sends a JSON request and decodes the response into out (may be nil)
func (w *WiseService) post(path string, payload interface{}, out interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, w.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return &ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return &ProviderError{Status: resp.StatusCode, Message: providerMessage(body, resp.StatusCode)}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// providerMessage pulls a readable error out of a Wise error body
func providerMessage(body []byte, status int) string {
	var parsed struct {
		Message string `json:"message"`
		Errors  []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if len(parsed.Errors) > 0 {
			var messages []string
			for _, e := range parsed.Errors {
				messages = append(messages, e.Message)
			}
			return strings.Join(messages, "; ")
		}
	}
	return fmt.Sprintf("provider returned status %d", status)
}

// CreateQuote creates a USD → target pricing quote
func (w *WiseService) CreateQuote(targetCurrency string, sourceAmount float64) (*Quote, error) {
	payload := map[string]interface{}{
		"sourceCurrency": "USD",
		"targetCurrency": targetCurrency,
		"sourceAmount":   sourceAmount,
		"targetAmount":   nil,
		"profile":        w.profileID,
	}

	var quote Quote
	if err := w.post("/v2/quotes", payload, &quote); err != nil {
		log.Printf("❌ Wise quote error: %v", err)
		return nil, err
	}
	return &quote, nil
}

// CreateRecipient creates a recipient account for the target currency
func (w *WiseService) CreateRecipient(currency, recipientType, accountHolderName string, details map[string]interface{}) (*Recipient, error) {
	payload := map[string]interface{}{
		"currency":          currency,
		"type":              recipientType,
		"profile":           w.profileID,
		"accountHolderName": accountHolderName,
		"details":           details,
	}

	var recipient Recipient
	if err := w.post("/v1/accounts", payload, &recipient); err != nil {
		log.Printf("❌ Wise recipient error: %v", err)
		return nil, err
	}
	log.Printf("✅ Recipient created: %d", recipient.ID)
	return &recipient, nil
}

// CreateTransfer creates the transfer against a quote and recipient
func (w *WiseService) CreateTransfer(targetAccount int64, quoteID, reference string) (*WiseTransfer, error) {
	payload := map[string]interface{}{
		"targetAccount":         targetAccount,
		"quoteUuid":             quoteID,
		"customerTransactionId": uuid.NewString(),
		"details": map[string]interface{}{
			"reference":     reference,
			"sourceOfFunds": "verification.source.of.funds.other",
		},
	}

	var transfer WiseTransfer
	if err := w.post("/v1/transfers", payload, &transfer); err != nil {
		log.Printf("❌ Wise transfer error: %v", err)
		return nil, err
	}
	return &transfer, nil
}

// FundTransfer pays for a transfer from the profile balance
func (w *WiseService) FundTransfer(transferID int64) error {
	path := fmt.Sprintf("/v3/profiles/%s/transfers/%d/payments", w.profileID, transferID)
	return w.post(path, map[string]interface{}{"type": "BALANCE"}, nil)
}

// GetTransferStatus fetches the current status of a transfer
func (w *WiseService) GetTransferStatus(transferID int64) (*WiseTransfer, error) {
	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/v1/transfers/%d", w.baseURL, transferID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, &ProviderError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 400 {
		return nil, &ProviderError{Status: resp.StatusCode, Message: providerMessage(body, resp.StatusCode)}
	}

	var transfer WiseTransfer
	if err := json.Unmarshal(body, &transfer); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &transfer, nil
}

// SendMoney composes the full submission: quote → recipient → transfer →
// best-effort funding. A funding-authorization denial (403 class) is
// swallowed - the transfer exists, it just awaits funding. Every other
// provider failure propagates as a ProviderError.
func (w *WiseService) SendMoney(params SendMoneyParams) (*models.TransferResult, error) {
	log.Println("Creating quote...")
	quote, err := w.CreateQuote(params.TargetCurrency, params.Amount)
	if err != nil {
		return nil, err
	}

	log.Println("Creating recipient...")
	recipientType, recipientDetails := recipientPayload(params.TargetCurrency, params.BankDetails)
	recipient, err := w.CreateRecipient(params.TargetCurrency, recipientType, params.RecipientName, recipientDetails)
	if err != nil {
		return nil, err
	}

	log.Println("Creating transfer...")
	transfer, err := w.CreateTransfer(recipient.ID, quote.ID, params.Reference)
	if err != nil {
		return nil, err
	}

	status := transfer.Status
	if err := w.FundTransfer(transfer.ID); err != nil {
		if isFundingDenied(err) {
			// Personal tokens cannot fund due to PSD2; the transfer is
			// created and waits for funding.
			log.Println("⚠️  Funding requires OAuth token; transfer pending funding")
			status = "pending_funding"
		} else {
			return nil, err
		}
	} else {
		log.Println("✅ Transfer funded successfully")
	}

	return &models.TransferResult{
		TransferID:        fmt.Sprintf("%d", transfer.ID),
		Status:            status,
		Amount:            params.Amount,
		TargetAmount:      quote.TargetAmount,
		Rate:              quote.Rate,
		Fee:               quote.Fee,
		EstimatedDelivery: quote.EstimatedDelivery,
		RecipientName:     params.RecipientName,
		RecipientCountry:  params.RecipientCountry,
	}, nil
}

// isFundingDenied reports whether err is the swallowable 403-class funding failure
func isFundingDenied(err error) bool {
	provErr, ok := err.(*ProviderError)
	if !ok {
		return false
	}
	if provErr.Status == http.StatusForbidden {
		return true
	}
	lower := strings.ToLower(provErr.Message)
	return strings.Contains(lower, "403") || strings.Contains(lower, "forbidden")
}

// recipientPayload builds the per-currency recipient details the provider
// expects. Unknown currencies fall back to the generic sort_code shape.
func recipientPayload(currency string, details map[string]string) (string, map[string]interface{}) {
	switch currency {
	case "MXN":
		return "mexican", map[string]interface{}{
			"legalType": "PRIVATE",
			"clabe":     details["clabe"],
		}

	case "BRL":
		return "brazilian", map[string]interface{}{
			"legalType":     "PRIVATE",
			"cpf":           details["cpf"],
			"accountNumber": details["accountNumber"],
			"accountType":   strings.ToLower(orDefault(details["accountType"], "checking")),
			"bankCode":      details["bankCode"],
		}

	case "GBP":
		return "sort_code", map[string]interface{}{
			"legalType":     "PRIVATE",
			"sortCode":      details["sortCode"],
			"accountNumber": details["accountNumber"],
		}

	case "EUR":
		return "iban", map[string]interface{}{
			"legalType": "PRIVATE",
			"iban":      details["iban"],
		}

	case "COP":
		return "colombia", map[string]interface{}{
			"legalType":        "PRIVATE",
			"bankCode":         "COLOCOBM",
			"accountNumber":    details["accountNumber"],
			"accountType":      strings.ToUpper(orDefault(details["accountType"], "SAVINGS")),
			"phoneNumber":      details["phoneNumber"],
			"idDocumentType":   "CC",
			"idDocumentNumber": details["idDocumentNumber"],
			"address": map[string]interface{}{
				"country":   "CO",
				"city":      details["city"],
				"firstLine": details["address"],
				"postCode":  details["postCode"],
			},
		}

	case "CLP":
		return "chile", map[string]interface{}{
			"legalType":     "PRIVATE",
			"bankCode":      details["bankCode"],
			"accountNumber": details["accountNumber"],
			"rut":           details["idDocumentNumber"],
			"accountType":   strings.ToUpper(orDefault(details["accountType"], "CHECKING")),
		}

	case "ARS":
		return "argentina", map[string]interface{}{
			"legalType":        "PRIVATE",
			"accountNumber":    details["accountNumber"],
			"accountType":      strings.ToUpper(orDefault(details["accountType"], "SAVINGS")),
			"phoneNumber":      details["phoneNumber"],
			"idDocumentNumber": details["idDocumentNumber"],
			"address": map[string]interface{}{
				"country": "AR",
				"city":    details["city"],
			},
		}

	default:
		return "sort_code", map[string]interface{}{
			"legalType":     "PRIVATE",
			"accountNumber": details["accountNumber"],
			"bankCode":      details["bankCode"],
		}
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
