package storage

import (
	"github.com/mybambu/transfer-backend/internal/models"
)

// Store defines the interface for record storage. Conversation sessions are
// deliberately not kept here (see SessionStore) - only durable records are:
// submitted transfers and phone verification codes.
type Store interface {
	// Transfer operations
	CreateTransfer(transfer *models.Transfer) (*models.Transfer, error)
	GetTransfersByPhone(phone string) ([]*models.Transfer, error)
	CountTransfers() (int64, error)

	// Verification operations
	CreateVerification(code *models.VerificationCode) (*models.VerificationCode, error)
	GetVerification(phone string) (*models.VerificationCode, error)
	UpdateVerification(code *models.VerificationCode) error
	DeleteVerification(phone string) error
	DeleteExpiredVerifications() (int, error)
}
