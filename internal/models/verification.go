package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationCode stores a phone verification code
type VerificationCode struct {
	gorm.Model
	PhoneNumber string    `json:"phone_number" gorm:"index"`
	Code        string    `json:"code"`
	ExpiresAt   time.Time `json:"expires_at"`
	Attempts    int       `json:"attempts"`
	Verified    bool      `json:"verified"`
}

// Expired reports whether the code is past its expiry
func (v *VerificationCode) Expired() bool {
	return time.Now().After(v.ExpiresAt)
}
