package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/mybambu/transfer-backend/internal/models"
)

// MemoryStore holds all records in memory (testing / USE_MEMORY_STORE=true)
type MemoryStore struct {
	transfers     []*models.Transfer
	verifications map[string]*models.VerificationCode

	// Mutexes for thread safety
	transferMu     sync.RWMutex
	verificationMu sync.RWMutex

	transferCounter uint
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		verifications: make(map[string]*models.VerificationCode),
	}
}

// Transfer operations

func (m *MemoryStore) CreateTransfer(transfer *models.Transfer) (*models.Transfer, error) {
	m.transferMu.Lock()
	defer m.transferMu.Unlock()

	m.transferCounter++
	transfer.ID = m.transferCounter
	transfer.CreatedAt = time.Now()
	transfer.UpdatedAt = time.Now()

	m.transfers = append(m.transfers, transfer)
	return transfer, nil
}

func (m *MemoryStore) GetTransfersByPhone(phone string) ([]*models.Transfer, error) {
	m.transferMu.RLock()
	defer m.transferMu.RUnlock()

	var results []*models.Transfer
	for _, t := range m.transfers {
		if t.PhoneNumber == phone {
			results = append(results, t)
		}
	}
	return results, nil
}

func (m *MemoryStore) CountTransfers() (int64, error) {
	m.transferMu.RLock()
	defer m.transferMu.RUnlock()

	return int64(len(m.transfers)), nil
}

// Verification operations

func (m *MemoryStore) CreateVerification(code *models.VerificationCode) (*models.VerificationCode, error) {
	m.verificationMu.Lock()
	defer m.verificationMu.Unlock()

	code.CreatedAt = time.Now()
	code.UpdatedAt = time.Now()
	m.verifications[code.PhoneNumber] = code
	return code, nil
}

func (m *MemoryStore) GetVerification(phone string) (*models.VerificationCode, error) {
	m.verificationMu.RLock()
	defer m.verificationMu.RUnlock()

	code, exists := m.verifications[phone]
	if !exists {
		return nil, fmt.Errorf("verification not found")
	}
	return code, nil
}

func (m *MemoryStore) UpdateVerification(code *models.VerificationCode) error {
	m.verificationMu.Lock()
	defer m.verificationMu.Unlock()

	if _, exists := m.verifications[code.PhoneNumber]; !exists {
		return fmt.Errorf("verification not found")
	}
	code.UpdatedAt = time.Now()
	m.verifications[code.PhoneNumber] = code
	return nil
}

func (m *MemoryStore) DeleteVerification(phone string) error {
	m.verificationMu.Lock()
	defer m.verificationMu.Unlock()

	delete(m.verifications, phone)
	return nil
}

func (m *MemoryStore) DeleteExpiredVerifications() (int, error) {
	m.verificationMu.Lock()
	defer m.verificationMu.Unlock()

	deleted := 0
	for phone, code := range m.verifications {
		if time.Now().After(code.ExpiresAt) {
			delete(m.verifications, phone)
			deleted++
		}
	}
	return deleted, nil
}
