package services

import (
	"strings"

	"github.com/mybambu/transfer-backend/internal/models"
)

// corridorEntry binds a match key to its corridor. The table is an ordered
// slice, not a map: country extraction scans keys in declared order and the
// first containment match wins, so precedence is part of the data.
type corridorEntry struct {
	Key      string
	Corridor models.Corridor
}

var corridorTable = []corridorEntry{
	{"mexico", models.Corridor{Country: "Mexico", Currency: "MXN", DeliveryTime: "1-2 business days"}},
	{"méxico", models.Corridor{Country: "Mexico", Currency: "MXN", DeliveryTime: "1-2 business days"}},
	{"mejico", models.Corridor{Country: "Mexico", Currency: "MXN", DeliveryTime: "1-2 business days"}},
	{"colombia", models.Corridor{Country: "Colombia", Currency: "COP", DeliveryTime: "1-3 business days"}},
	{"brazil", models.Corridor{Country: "Brazil", Currency: "BRL", DeliveryTime: "1-3 business days"}},
	{"brasil", models.Corridor{Country: "Brazil", Currency: "BRL", DeliveryTime: "1-3 business days"}},
	{"uk", models.Corridor{Country: "United Kingdom", Currency: "GBP", DeliveryTime: "Same day"}},
	{"united kingdom", models.Corridor{Country: "United Kingdom", Currency: "GBP", DeliveryTime: "Same day"}},
	{"reino unido", models.Corridor{Country: "United Kingdom", Currency: "GBP", DeliveryTime: "Same day"}},
	{"europe", models.Corridor{Country: "Europe", Currency: "EUR", DeliveryTime: "1 business day"}},
	{"europa", models.Corridor{Country: "Europe", Currency: "EUR", DeliveryTime: "1 business day"}},
}

// ResolveCorridor looks up a corridor by match key (lowercase)
func ResolveCorridor(key string) (models.Corridor, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, entry := range corridorTable {
		if entry.Key == key {
			return entry.Corridor, true
		}
	}
	return models.Corridor{}, false
}

// CorridorForCountry looks up a corridor by its display country name
func CorridorForCountry(country string) (models.Corridor, bool) {
	for _, entry := range corridorTable {
		if entry.Corridor.Country == country {
			return entry.Corridor, true
		}
	}
	return models.Corridor{}, false
}

// SupportedCountries returns the distinct destination names for user-facing lists
func SupportedCountries(language string) []string {
	if language == "es" {
		return []string{"México", "Colombia", "Brasil", "Reino Unido", "Europa"}
	}
	return []string{"Mexico", "Colombia", "Brazil", "United Kingdom", "Europe"}
}

// LocalizedCountryName translates a display country name for a session language
func LocalizedCountryName(country, language string) string {
	if language != "es" {
		return country
	}
	switch country {
	case "Mexico":
		return "México"
	case "Brazil":
		return "Brasil"
	case "United Kingdom":
		return "Reino Unido"
	case "Europe":
		return "Europa"
	default:
		return country
	}
}

// CountryFlag returns the flag emoji for a currency code
func CountryFlag(currency string) string {
	switch currency {
	case "MXN":
		return "🇲🇽"
	case "COP":
		return "🇨🇴"
	case "BRL":
		return "🇧🇷"
	case "GBP":
		return "🇬🇧"
	case "EUR":
		return "🇪🇺"
	default:
		return "🌍"
	}
}
