package storage

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/mybambu/transfer-backend/internal/models"
)

// DatabaseStore persists records in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a database-backed store
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

// Transfer operations

func (d *DatabaseStore) CreateTransfer(transfer *models.Transfer) (*models.Transfer, error) {
	if err := d.db.Create(transfer).Error; err != nil {
		return nil, fmt.Errorf("failed to create transfer record: %w", err)
	}
	return transfer, nil
}

func (d *DatabaseStore) GetTransfersByPhone(phone string) ([]*models.Transfer, error) {
	var transfers []*models.Transfer
	if err := d.db.Where("phone_number = ?", phone).Order("created_at desc").Find(&transfers).Error; err != nil {
		return nil, fmt.Errorf("failed to query transfers: %w", err)
	}
	return transfers, nil
}

func (d *DatabaseStore) CountTransfers() (int64, error) {
	var count int64
	if err := d.db.Model(&models.Transfer{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Verification operations

func (d *DatabaseStore) CreateVerification(code *models.VerificationCode) (*models.VerificationCode, error) {
	// One active code per phone number
	d.db.Where("phone_number = ?", code.PhoneNumber).Delete(&models.VerificationCode{})

	if err := d.db.Create(code).Error; err != nil {
		return nil, fmt.Errorf("failed to create verification code: %w", err)
	}
	return code, nil
}

func (d *DatabaseStore) GetVerification(phone string) (*models.VerificationCode, error) {
	var code models.VerificationCode
	if err := d.db.Where("phone_number = ?", phone).Order("created_at desc").First(&code).Error; err != nil {
		return nil, fmt.Errorf("verification not found")
	}
	return &code, nil
}

func (d *DatabaseStore) UpdateVerification(code *models.VerificationCode) error {
	if err := d.db.Save(code).Error; err != nil {
		return fmt.Errorf("failed to update verification code: %w", err)
	}
	return nil
}

func (d *DatabaseStore) DeleteVerification(phone string) error {
	return d.db.Where("phone_number = ?", phone).Delete(&models.VerificationCode{}).Error
}

func (d *DatabaseStore) DeleteExpiredVerifications() (int, error) {
	result := d.db.Where("expires_at < now()").Delete(&models.VerificationCode{})
	if result.Error != nil {
		return 0, result.Error
	}
	return int(result.RowsAffected), nil
}
