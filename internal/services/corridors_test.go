package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCorridor(t *testing.T) {
	tests := []struct {
		key      string
		country  string
		currency string
	}{
		{"mexico", "Mexico", "MXN"},
		{"MÉXICO", "Mexico", "MXN"},
		{"mejico", "Mexico", "MXN"},
		{"colombia", "Colombia", "COP"},
		{"brasil", "Brazil", "BRL"},
		{"uk", "United Kingdom", "GBP"},
		{"reino unido", "United Kingdom", "GBP"},
		{"europa", "Europe", "EUR"},
	}

	for _, tt := range tests {
		corridor, ok := ResolveCorridor(tt.key)
		require.True(t, ok, tt.key)
		assert.Equal(t, tt.country, corridor.Country)
		assert.Equal(t, tt.currency, corridor.Currency)
	}

	_, ok := ResolveCorridor("japan")
	assert.False(t, ok)
}

func TestCorridorForCountry(t *testing.T) {
	corridor, ok := CorridorForCountry("Brazil")
	require.True(t, ok)
	assert.Equal(t, "BRL", corridor.Currency)
	assert.NotEmpty(t, corridor.DeliveryTime)

	_, ok = CorridorForCountry("Atlantis")
	assert.False(t, ok)
}

func TestSupportedCountries(t *testing.T) {
	assert.Equal(t, []string{"Mexico", "Colombia", "Brazil", "United Kingdom", "Europe"}, SupportedCountries("en"))
	assert.Equal(t, []string{"México", "Colombia", "Brasil", "Reino Unido", "Europa"}, SupportedCountries("es"))
}

func TestLocalizedCountryName(t *testing.T) {
	assert.Equal(t, "México", LocalizedCountryName("Mexico", "es"))
	assert.Equal(t, "Mexico", LocalizedCountryName("Mexico", "en"))
	assert.Equal(t, "Colombia", LocalizedCountryName("Colombia", "es"))
}

func TestCountryFlag(t *testing.T) {
	assert.Equal(t, "🇲🇽", CountryFlag("MXN"))
	assert.Equal(t, "🌍", CountryFlag("JPY"))
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"hola, quiero enviar dinero", "es"},
		{"¿Cuánto cuesta?", "es"},
		{"enviar $100 a mexico", "es"},
		{"Send $100 to Mexico", "en"},
		{"what's the rate", "en"},
		{"María", "es"}, // diacritic
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.text), tt.text)
	}
}
