package services

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWise(t *testing.T, handler http.Handler) *WiseService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &WiseService{
		client:    srv.Client(),
		baseURL:   srv.URL,
		apiKey:    "test-key",
		profileID: "12345",
	}
}

// wiseMux serves the happy quote/recipient/transfer flow; the funding step
// responds with the given status and body
func wiseMux(fundingStatus int, fundingBody string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/quotes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"q-42","rate":17.25,"fee":3.50,"targetAmount":1664.63,"estimatedDelivery":"1-2 business days"}`)
	})
	mux.HandleFunc("/v1/accounts", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":101}`)
	})
	mux.HandleFunc("/v1/transfers", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":555,"status":"incoming_payment_waiting"}`)
	})
	mux.HandleFunc("/v3/profiles/12345/transfers/555/payments", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(fundingStatus)
		fmt.Fprint(w, fundingBody)
	})
	return mux
}

func testSendParams() SendMoneyParams {
	return SendMoneyParams{
		Amount:           100,
		RecipientName:    "Maria Garcia Lopez",
		RecipientCountry: "Mexico",
		TargetCurrency:   "MXN",
		Reference:        "MyBambu transfer",
		BankDetails:      map[string]string{"clabe": "032180000118359719"},
	}
}

func TestSendMoneyFundedFromBalance(t *testing.T) {
	wise := newTestWise(t, wiseMux(http.StatusCreated, `{"type":"BALANCE","status":"COMPLETED"}`))

	result, err := wise.SendMoney(testSendParams())

	require.NoError(t, err)
	assert.Equal(t, "555", result.TransferID)
	assert.Equal(t, "incoming_payment_waiting", result.Status)
	assert.Equal(t, 100.0, result.Amount)
	assert.Equal(t, 1664.63, result.TargetAmount)
	assert.Equal(t, 17.25, result.Rate)
	assert.Equal(t, 3.50, result.Fee)
}

func TestSendMoneyFundingDeniedIsPending(t *testing.T) {
	wise := newTestWise(t, wiseMux(http.StatusForbidden,
		`{"message":"You are not authorized to access this resource"}`))

	result, err := wise.SendMoney(testSendParams())

	// The transfer exists; the denied funding step must not fail the submission
	require.NoError(t, err)
	assert.Equal(t, "pending_funding", result.Status)
	assert.Equal(t, "555", result.TransferID)
}

func TestSendMoneyFundingErrorPropagates(t *testing.T) {
	wise := newTestWise(t, wiseMux(http.StatusInternalServerError,
		`{"message":"balance unavailable"}`))

	result, err := wise.SendMoney(testSendParams())

	require.Error(t, err)
	assert.Nil(t, result)

	provErr, ok := err.(*ProviderError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, provErr.Status)
	assert.Equal(t, "balance unavailable", provErr.Message)
}

func TestSendMoneyQuoteRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/quotes", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		fmt.Fprint(w, `{"errors":[{"message":"target currency is not supported"}]}`)
	})
	wise := newTestWise(t, mux)

	result, err := wise.SendMoney(testSendParams())

	require.Error(t, err)
	assert.Nil(t, result)

	provErr, ok := err.(*ProviderError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnprocessableEntity, provErr.Status)
	assert.Equal(t, "target currency is not supported", provErr.Message)
}

func TestIsFundingDenied(t *testing.T) {
	assert.True(t, isFundingDenied(&ProviderError{Status: http.StatusForbidden, Message: "nope"}))
	assert.True(t, isFundingDenied(&ProviderError{Message: "403 Forbidden"}))
	assert.False(t, isFundingDenied(&ProviderError{Status: http.StatusInternalServerError, Message: "boom"}))
	assert.False(t, isFundingDenied(fmt.Errorf("plain error")))
}
