package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mybambu/transfer-backend/internal/models"
)

func TestGetOrCreate(t *testing.T) {
	store := NewMemorySessionStore()

	session := store.GetOrCreate("+15551234567")
	require.NotNil(t, session)
	assert.Equal(t, models.StateIdle, session.State)
	assert.Equal(t, "+15551234567", session.PhoneNumber)

	// Same phone returns the same session
	session.State = models.StateCollectingAmount
	again := store.GetOrCreate("+15551234567")
	assert.Equal(t, models.StateCollectingAmount, again.State)
}

func TestGetAndDelete(t *testing.T) {
	store := NewMemorySessionStore()

	_, ok := store.Get("+15551234567")
	assert.False(t, ok)

	store.GetOrCreate("+15551234567")
	_, ok = store.Get("+15551234567")
	assert.True(t, ok)

	store.Delete("+15551234567")
	_, ok = store.Get("+15551234567")
	assert.False(t, ok)
}

func TestSweepExpired(t *testing.T) {
	store := NewMemorySessionStore()

	stale := store.GetOrCreate("+15550000001")
	stale.LastActivity = time.Now().Add(-time.Hour)

	fresh := store.GetOrCreate("+15550000002")
	fresh.LastActivity = time.Now()

	removed := store.SweepExpired(30 * time.Minute)
	assert.Equal(t, 1, removed)

	_, ok := store.Get("+15550000001")
	assert.False(t, ok)
	_, ok = store.Get("+15550000002")
	assert.True(t, ok)
}

func TestActive(t *testing.T) {
	store := NewMemorySessionStore()
	assert.Empty(t, store.Active())

	store.GetOrCreate("+15550000001")
	store.GetOrCreate("+15550000002")
	assert.Len(t, store.Active(), 2)
}

func TestMemoryStoreTransfers(t *testing.T) {
	store := NewMemoryStore()

	created, err := store.CreateTransfer(&models.Transfer{
		TransferID:  "DEMO123",
		PhoneNumber: "+15551234567",
		Amount:      100,
		Currency:    "MXN",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	_, err = store.CreateTransfer(&models.Transfer{
		TransferID:  "DEMO124",
		PhoneNumber: "+15559999999",
		Amount:      50,
		Currency:    "COP",
	})
	require.NoError(t, err)

	transfers, err := store.GetTransfersByPhone("+15551234567")
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "DEMO123", transfers[0].TransferID)

	count, err := store.CountTransfers()
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
