package models

import (
	"time"

	"gorm.io/gorm"
)

// Transfer is the stored record of a submitted (or demo-simulated) transfer
type Transfer struct {
	gorm.Model
	TransferID        string    `json:"transfer_id" gorm:"index"` // provider ID, or DEMO reference
	PhoneNumber       string    `json:"phone_number" gorm:"index"`
	Amount            float64   `json:"amount"` // USD
	TargetAmount      float64   `json:"target_amount"`
	Currency          string    `json:"currency"`
	Country           string    `json:"country"`
	RecipientName     string    `json:"recipient_name"`
	Rate              float64   `json:"rate"`
	Fee               float64   `json:"fee"`
	Status            string    `json:"status"`
	Mode              string    `json:"mode"` // DEMO or PRODUCTION
	EstimatedDelivery string    `json:"estimated_delivery"`
	SubmittedAt       time.Time `json:"submitted_at"`
}

// TransferResult is what the submission adapter reports back to the dialogue manager
type TransferResult struct {
	TransferID        string  `json:"transfer_id"`
	Status            string  `json:"status"`
	Amount            float64 `json:"amount"`
	TargetAmount      float64 `json:"target_amount"`
	Rate              float64 `json:"rate"`
	Fee               float64 `json:"fee"`
	EstimatedDelivery string  `json:"estimated_delivery"`
	RecipientName     string  `json:"recipient_name"`
	RecipientCountry  string  `json:"recipient_country"`
}
