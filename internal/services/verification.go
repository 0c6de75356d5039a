package services

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/mybambu/transfer-backend/internal/models"
	"github.com/mybambu/transfer-backend/internal/storage"
	"github.com/mybambu/transfer-backend/internal/utils"
)

const (
	codeExpiry        = 10 * time.Minute
	maxVerifyAttempts = 3
	maxResendsPerHour = 3
	resendCooldown    = 60 * time.Second
)

// VerifyResult is the outcome of a code check
type VerifyResult struct {
	Valid        bool   `json:"valid"`
	Reason       string `json:"reason,omitempty"`
	AttemptsLeft int    `json:"attempts_left,omitempty"`
}

// RequestResult is the outcome of a code request
type RequestResult struct {
	Allowed    bool   `json:"allowed"`
	Reason     string `json:"reason,omitempty"`
	RetryAfter int    `json:"retry_after,omitempty"` // seconds
}

type resendWindow struct {
	count   int
	resetAt time.Time
}

// VerificationService issues and checks phone verification codes. Codes live
// in the record store; the rate-limit bookkeeping is process-local.
type VerificationService struct {
	store  storage.Store
	sender MessageSender

	mu       sync.Mutex
	resends  map[string]*resendWindow
	lastSend map[string]time.Time
}

// NewVerificationService creates the verification service
func NewVerificationService(store storage.Store, sender MessageSender) *VerificationService {
	return &VerificationService{
		store:    store,
		sender:   sender,
		resends:  make(map[string]*resendWindow),
		lastSend: make(map[string]time.Time),
	}
}

// RequestCode generates a fresh code for the phone number and sends it over
// WhatsApp. Rate limits: 60s between requests, 3 requests per rolling hour.
func (v *VerificationService) RequestCode(phone, language string) (*RequestResult, error) {
	if result := v.checkRateLimit(phone); !result.Allowed {
		return result, nil
	}

	code, err := utils.GenerateSecureCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate code: %w", err)
	}

	// A new request replaces any outstanding code
	if err := v.store.DeleteVerification(phone); err != nil {
		log.Printf("⚠️  Failed to clear previous code for %s: %v", phone, err)
	}

	record := &models.VerificationCode{
		PhoneNumber: phone,
		Code:        code,
		ExpiresAt:   time.Now().Add(codeExpiry),
	}
	if _, err := v.store.CreateVerification(record); err != nil {
		return nil, fmt.Errorf("failed to store code: %w", err)
	}

	v.recordSent(phone)
	log.Printf("📱 Verification code generated for %s (expires in %v)", phone, codeExpiry)

	if v.sender != nil {
		if err := v.sender.SendText(phone, verificationMessage(code, language)); err != nil {
			log.Printf("❌ Failed to send verification code to %s: %v", phone, err)
			return nil, err
		}
	}

	return &RequestResult{Allowed: true}, nil
}

// VerifyCode checks a submitted code. A code survives at most 3 attempts;
// exceeding them or expiring invalidates it.
func (v *VerificationService) VerifyCode(phone, code string) (*VerifyResult, error) {
	stored, err := v.store.GetVerification(phone)
	if err != nil || stored == nil {
		return &VerifyResult{Valid: false, Reason: "No verification code found. Please request a new code."}, nil
	}

	if stored.Expired() {
		_ = v.store.DeleteVerification(phone)
		return &VerifyResult{Valid: false, Reason: "Code expired. Please request a new code."}, nil
	}

	if stored.Verified {
		return &VerifyResult{Valid: false, Reason: "Code already used. Please request a new code."}, nil
	}

	stored.Attempts++
	if stored.Attempts > maxVerifyAttempts {
		_ = v.store.DeleteVerification(phone)
		return &VerifyResult{Valid: false, Reason: "Too many failed attempts. Please request a new code."}, nil
	}

	if stored.Code == code {
		stored.Verified = true
		if err := v.store.UpdateVerification(stored); err != nil {
			return nil, fmt.Errorf("failed to update code: %w", err)
		}
		log.Printf("✅ Phone verified: %s", phone)
		return &VerifyResult{Valid: true}, nil
	}

	if err := v.store.UpdateVerification(stored); err != nil {
		return nil, fmt.Errorf("failed to update code: %w", err)
	}

	attemptsLeft := maxVerifyAttempts - stored.Attempts
	plural := "s"
	if attemptsLeft == 1 {
		plural = ""
	}
	return &VerifyResult{
		Valid:        false,
		Reason:       fmt.Sprintf("Invalid code. %d attempt%s remaining.", attemptsLeft, plural),
		AttemptsLeft: attemptsLeft,
	}, nil
}

// Cleanup removes expired codes from the store
func (v *VerificationService) Cleanup() int {
	cleaned, err := v.store.DeleteExpiredVerifications()
	if err != nil {
		log.Printf("❌ Verification cleanup failed: %v", err)
		return 0
	}
	if cleaned > 0 {
		log.Printf("🧹 Cleaned up %d expired verification code(s)", cleaned)
	}
	return cleaned
}

func (v *VerificationService) checkRateLimit(phone string) *RequestResult {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()

	if last, ok := v.lastSend[phone]; ok {
		elapsed := now.Sub(last)
		if elapsed < resendCooldown {
			retryAfter := int(math.Ceil((resendCooldown - elapsed).Seconds()))
			return &RequestResult{
				Allowed:    false,
				Reason:     fmt.Sprintf("Please wait %d seconds before requesting another code", retryAfter),
				RetryAfter: retryAfter,
			}
		}
	}

	if window, ok := v.resends[phone]; ok {
		if now.After(window.resetAt) {
			delete(v.resends, phone)
		} else if window.count >= maxResendsPerHour {
			minutes := int(math.Ceil(window.resetAt.Sub(now).Minutes()))
			return &RequestResult{
				Allowed:    false,
				Reason:     fmt.Sprintf("Too many requests. Try again in %d minutes", minutes),
				RetryAfter: minutes * 60,
			}
		}
	}

	return &RequestResult{Allowed: true}
}

func (v *VerificationService) recordSent(phone string) {
	v.mu.Lock()
	defer v.mu.Unlock()

	now := time.Now()
	v.lastSend[phone] = now

	if window, ok := v.resends[phone]; ok && now.Before(window.resetAt) {
		window.count++
		return
	}
	v.resends[phone] = &resendWindow{count: 1, resetAt: now.Add(time.Hour)}
}

func verificationMessage(code, language string) string {
	if language == "es" {
		return "🔐 *Verificación de Teléfono MyBambu*\n\n" +
			"Tu código de verificación es:\n\n" +
			"*" + code + "*\n\n" +
			"⏱️ Este código expira en 10 minutos.\n\n" +
			"🔒 Nunca compartas este código con nadie, incluyendo el personal de MyBambu.\n\n" +
			"Si no solicitaste este código, por favor ignora este mensaje."
	}
	return "🔐 *MyBambu Phone Verification*\n\n" +
		"Your verification code is:\n\n" +
		"*" + code + "*\n\n" +
		"⏱️ This code expires in 10 minutes.\n\n" +
		"🔒 Never share this code with anyone, including MyBambu staff.\n\n" +
		"If you didn't request this code, please ignore this message."
}
