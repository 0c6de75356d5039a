package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   float64
		wantOK bool
	}{
		{"dollar sign", "Send $100 to Mexico", 100, true},
		{"dollar sign with space", "$ 250", 250, true},
		{"decimal", "$99.50 to Colombia", 99.50, true},
		{"usd suffix", "100 USD to Brazil", 100, true},
		{"dollars word", "send 75 dollars", 75, true},
		{"spanish dolares", "enviar 50 dólares a México", 50, true},
		{"verb prefix", "send 100 please", 100, true},
		{"enviar verb", "enviar 200", 200, true},
		{"preposition", "100 to Mexico", 100, true},
		{"bare number", "150", 150, true},
		{"bare with sign", "  $45  ", 45, true},
		{"no amount", "I want to send money", 0, false},
		{"number inside word context", "my account is great", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractAmount(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestExtractCountry(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"Send $100 to Mexico", "Mexico", true},
		{"enviar dinero a méxico", "Mexico", true},
		{"a mejico por favor", "Mexico", true},
		{"transfer to colombia", "Colombia", true},
		{"send to Brazil", "Brazil", true},
		{"para brasil", "Brazil", true},
		{"to the UK please", "United Kingdom", true},
		{"United Kingdom", "United Kingdom", true},
		{"al reino unido", "United Kingdom", true},
		{"somewhere in Europe", "Europe", true},
		{"a europa", "Europe", true},
		{"send to Japan", "", false},
		{"just some text", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractCountry(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractBankDetailsMexico(t *testing.T) {
	reqs := BankRequirements("MXN")
	require.NotNil(t, reqs)

	t.Run("labeled clabe", func(t *testing.T) {
		details := ExtractBankDetails("CLABE: 032180000118359719", reqs, nil)
		assert.Equal(t, "032180000118359719", details["clabe"])
	})

	t.Run("bare 18 digit fallback", func(t *testing.T) {
		details := ExtractBankDetails("here it is 032180000118359719 thanks", reqs, nil)
		assert.Equal(t, "032180000118359719", details["clabe"])
	})

	t.Run("too short for fallback", func(t *testing.T) {
		details := ExtractBankDetails("12345678", reqs, nil)
		assert.Empty(t, details["clabe"])
	})
}

func TestExtractBankDetailsColombia(t *testing.T) {
	reqs := BankRequirements("COP")
	require.NotNil(t, reqs)

	t.Run("full multiline message", func(t *testing.T) {
		text := "Bank account number: 78800058952\n" +
			"Account type: SAVINGS\n" +
			"Phone: 3136379718 - Cedula: 1002296221\n" +
			"City: Medellin\n" +
			"Address: Calle 110 #45-47\n" +
			"Post code: 050001"

		details := ExtractBankDetails(text, reqs, nil)

		assert.Equal(t, "78800058952", details["accountNumber"])
		assert.Equal(t, "SAVINGS", details["accountType"])
		assert.Equal(t, "3136379718", details["phoneNumber"])
		assert.Equal(t, "1002296221", details["idDocumentNumber"])
		assert.Equal(t, "Medellin", details["city"])
		assert.Equal(t, "Calle 110 #45-47", details["address"])
		assert.Equal(t, "050001", details["postCode"])
	})

	t.Run("dash separated single line", func(t *testing.T) {
		details := ExtractBankDetails("Phone: 3136379718 - Cedula: 1002296221", reqs, nil)
		assert.Equal(t, "3136379718", details["phoneNumber"])
		assert.Equal(t, "1002296221", details["idDocumentNumber"])
	})

	t.Run("three fields dash separated", func(t *testing.T) {
		details := ExtractBankDetails("Phone: 3136379718 - Cedula: 123456789 - Account type: SAVINGS", reqs, nil)
		assert.Equal(t, "3136379718", details["phoneNumber"])
		assert.Equal(t, "123456789", details["idDocumentNumber"])
		assert.Equal(t, "SAVINGS", details["accountType"])
		assert.Empty(t, details["accountNumber"])
	})

	t.Run("no space around separators", func(t *testing.T) {
		details := ExtractBankDetails("Phone:3136379718-Cedula:1002296221", reqs, nil)
		assert.Equal(t, "3136379718", details["phoneNumber"])
		assert.Equal(t, "1002296221", details["idDocumentNumber"])
	})

	t.Run("comma separated", func(t *testing.T) {
		details := ExtractBankDetails("City: Medellin, Phone: 3136379718", reqs, nil)
		assert.Equal(t, "Medellin", details["city"])
		assert.Equal(t, "3136379718", details["phoneNumber"])
	})

	t.Run("internal hyphen in address survives", func(t *testing.T) {
		details := ExtractBankDetails("Address: Calle 110 #45-47 - Phone: 3136379718", reqs, nil)
		assert.Equal(t, "Calle 110 #45-47", details["address"])
		assert.Equal(t, "3136379718", details["phoneNumber"])
	})

	t.Run("trailing dash stripped", func(t *testing.T) {
		details := ExtractBankDetails("Account type: SAVINGS   -", reqs, nil)
		assert.Equal(t, "SAVINGS", details["accountType"])
	})

	t.Run("dash before newline", func(t *testing.T) {
		text := "Bank account number: 78800058952   -\nAccount type: SAVINGS"
		details := ExtractBankDetails(text, reqs, nil)
		assert.Equal(t, "78800058952", details["accountNumber"])
		assert.Equal(t, "SAVINGS", details["accountType"])
	})

	t.Run("alias inside another label is rejected", func(t *testing.T) {
		// "Account" must not swallow "Account type: SAVINGS"
		details := ExtractBankDetails("Account type: SAVINGS", reqs, nil)
		assert.Empty(t, details["accountNumber"])
		assert.Equal(t, "SAVINGS", details["accountType"])
	})

	t.Run("already filled fields are not overwritten", func(t *testing.T) {
		existing := map[string]string{"city": "Bogota"}
		details := ExtractBankDetails("City: Medellin", reqs, existing)
		assert.Equal(t, "Bogota", details["city"])
	})

	t.Run("rerun over same text is a no-op", func(t *testing.T) {
		text := "Phone: 3136379718 - Cedula: 1002296221"
		details := ExtractBankDetails(text, reqs, nil)
		again := ExtractBankDetails(text, reqs, details)
		assert.Equal(t, details, again)
	})
}

func TestExtractBankDetailsBrazil(t *testing.T) {
	reqs := BankRequirements("BRL")
	require.NotNil(t, reqs)

	text := "CPF: 12345678901, Account: 12345678, Type: checking, Bank code: 001"
	details := ExtractBankDetails(text, reqs, nil)

	assert.Equal(t, "12345678901", details["cpf"])
	assert.Equal(t, "12345678", details["accountNumber"])
	assert.Equal(t, "checking", details["accountType"])
	assert.Equal(t, "001", details["bankCode"])
}

func TestExtractBankDetailsUK(t *testing.T) {
	reqs := BankRequirements("GBP")
	require.NotNil(t, reqs)

	details := ExtractBankDetails("Sort Code: 231470\nAccount Number: 31926819", reqs, nil)

	assert.Equal(t, "231470", details["sortCode"])
	assert.Equal(t, "31926819", details["accountNumber"])
}

func TestExtractBankDetailsNilRequirements(t *testing.T) {
	details := ExtractBankDetails("anything", nil, nil)
	assert.NotNil(t, details)
	assert.Empty(t, details)
}
