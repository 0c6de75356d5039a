package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybambu/transfer-backend/internal/models"
	"github.com/mybambu/transfer-backend/internal/storage"
)

func newTestVerification() (*VerificationService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	return NewVerificationService(store, nil), store
}

func TestRequestAndVerifyCode(t *testing.T) {
	svc, store := newTestVerification()
	phone := "+15551234567"

	result, err := svc.RequestCode(phone, "en")
	require.NoError(t, err)
	assert.True(t, result.Allowed)

	stored, err := store.GetVerification(phone)
	require.NoError(t, err)
	require.Len(t, stored.Code, 6)

	check, err := svc.VerifyCode(phone, stored.Code)
	require.NoError(t, err)
	assert.True(t, check.Valid)
}

func TestVerifyWrongCode(t *testing.T) {
	svc, store := newTestVerification()
	phone := "+15551234567"

	_, err := svc.RequestCode(phone, "en")
	require.NoError(t, err)

	check, err := svc.VerifyCode(phone, "000000")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, 2, check.AttemptsLeft)

	check, _ = svc.VerifyCode(phone, "000000")
	assert.Equal(t, 1, check.AttemptsLeft)

	check, _ = svc.VerifyCode(phone, "000000")
	assert.Equal(t, 0, check.AttemptsLeft)

	// Fourth attempt invalidates the code entirely, even with the right value
	stored, err := store.GetVerification(phone)
	require.NoError(t, err)
	check, _ = svc.VerifyCode(phone, stored.Code)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "Too many failed attempts")
}

func TestVerifyWithoutRequest(t *testing.T) {
	svc, _ := newTestVerification()

	check, err := svc.VerifyCode("+15550000000", "123456")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "No verification code found")
}

func TestVerifyExpiredCode(t *testing.T) {
	svc, store := newTestVerification()
	phone := "+15551234567"

	_, err := store.CreateVerification(&models.VerificationCode{
		PhoneNumber: phone,
		Code:        "123456",
		ExpiresAt:   time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)

	check, err := svc.VerifyCode(phone, "123456")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "expired")
}

func TestVerifiedCodeCannotBeReused(t *testing.T) {
	svc, store := newTestVerification()
	phone := "+15551234567"

	_, err := svc.RequestCode(phone, "en")
	require.NoError(t, err)

	stored, err := store.GetVerification(phone)
	require.NoError(t, err)

	check, _ := svc.VerifyCode(phone, stored.Code)
	require.True(t, check.Valid)

	check, _ = svc.VerifyCode(phone, stored.Code)
	assert.False(t, check.Valid)
	assert.Contains(t, check.Reason, "already used")
}

func TestResendCooldown(t *testing.T) {
	svc, _ := newTestVerification()
	phone := "+15551234567"

	first, err := svc.RequestCode(phone, "en")
	require.NoError(t, err)
	require.True(t, first.Allowed)

	second, err := svc.RequestCode(phone, "en")
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Greater(t, second.RetryAfter, 0)
	assert.Contains(t, second.Reason, "wait")
}

func TestCleanupRemovesExpired(t *testing.T) {
	svc, store := newTestVerification()

	_, err := store.CreateVerification(&models.VerificationCode{
		PhoneNumber: "+15550000001",
		Code:        "111111",
		ExpiresAt:   time.Now().Add(-time.Minute),
	})
	require.NoError(t, err)
	_, err = store.CreateVerification(&models.VerificationCode{
		PhoneNumber: "+15550000002",
		Code:        "222222",
		ExpiresAt:   time.Now().Add(time.Minute),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Cleanup())

	_, err = store.GetVerification("+15550000002")
	assert.NoError(t, err)
}
