package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mybambu/transfer-backend/internal/models"
)

// Amount patterns, tried in order: explicit currency markers, transfer verbs,
// prepositions, then a bare standalone number. First match wins.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$\s*(\d+(?:\.\d{2})?)`),                                      // $100 or $100.00
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s*(?:dollars|dólares|dolares|usd)`),     // 100 dollars / 100 USD
	regexp.MustCompile(`(?i)\b(?:send|enviar|transferir|mandar)\s+\$?(\d+(?:\.\d{2})?)`), // send 100 / enviar 100
	regexp.MustCompile(`(?i)(\d+(?:\.\d{2})?)\s+(?:to|a|para)\b`),                     // 100 to Mexico
	regexp.MustCompile(`(?i)^\s*\$?(\d+(?:\.\d{2})?)\s*$`),                            // bare number
}

// Spanish spellings checked before the corridor key scan
var spanishCountryNames = []struct {
	Key     string
	Country string
}{
	{"méxico", "Mexico"},
	{"mejico", "Mexico"},
	{"brasil", "Brazil"},
	{"reino unido", "United Kingdom"},
	{"europa", "Europe"},
}

// clabePattern is the MXN fallback: a bare 18-digit run is taken as the CLABE
// when no labeled value was found.
var clabePattern = regexp.MustCompile(`\d{18}`)

// boundaryPattern marks the end of a captured field value: an optional run of
// whitespace, a hyphen or comma, optional whitespace (line breaks included),
// then a letter. A hyphen inside a digit or word run ("45-47") is not a
// boundary because no letter follows the separator.
var boundaryPattern = regexp.MustCompile(`^\s*[-,]\s*[A-Za-z]`)

// trailingJunk strips separator runs left at the end of a captured value
var trailingJunk = regexp.MustCompile(`[\s\-,;]+$`)

// ExtractAmount pulls a USD amount out of free text. Returns false when no
// pattern matches; range checking is the caller's concern.
func ExtractAmount(text string) (float64, bool) {
	for _, pattern := range amountPatterns {
		if match := pattern.FindStringSubmatch(text); match != nil {
			amount, err := strconv.ParseFloat(match[1], 64)
			if err != nil {
				continue
			}
			return amount, true
		}
	}
	return 0, false
}

// ExtractCountry finds a supported destination mentioned in free text.
// Spanish spellings are checked first, then the corridor keys in declared
// order; the first case-insensitive substring containment wins.
func ExtractCountry(text string) (string, bool) {
	lower := strings.ToLower(text)

	for _, entry := range spanishCountryNames {
		if strings.Contains(lower, entry.Key) {
			return entry.Country, true
		}
	}

	for _, entry := range corridorTable {
		if strings.Contains(lower, entry.Key) {
			return entry.Corridor.Country, true
		}
	}
	return "", false
}

// ExtractBankDetails scans free text for the currency's outstanding required
// fields and fills them into details (created if nil). Fields are tried in
// catalog order and identifiers within a field in [name, label, aliases...]
// order; already-filled fields are skipped, so re-running over the same text
// is a no-op. Returns the details map.
func ExtractBankDetails(text string, requirements *models.CurrencyRequirements, details map[string]string) map[string]string {
	if details == nil {
		details = make(map[string]string)
	}
	if requirements == nil {
		return details
	}

	for _, field := range requirements.Fields {
		if details[field.Name] != "" {
			continue
		}

		identifiers := make([]string, 0, len(field.Aliases)+2)
		identifiers = append(identifiers, field.Name, field.Label)
		identifiers = append(identifiers, field.Aliases...)

		for _, identifier := range identifiers {
			if value := extractLabeledValue(text, identifier); value != "" {
				details[field.Name] = value
				break
			}
		}
	}

	// Standalone-value fallback: an unlabeled 18-digit run is a CLABE
	if requirements.Currency == "MXN" && details["clabe"] == "" {
		if match := clabePattern.FindString(text); match != "" {
			details["clabe"] = match
		}
	}

	return details
}

// extractLabeledValue captures the value following "<identifier>:" (colon
// optional) up to the next field boundary. Capture stops at the boundary
// pattern, a newline, or end of text; hitting a colon first means the
// identifier matched inside someone else's "label: value" pair, so that
// occurrence is rejected and the next one is tried.
func extractLabeledValue(text, identifier string) string {
	prefix, err := regexp.Compile(`(?i)` + regexp.QuoteMeta(identifier) + `\s*:?\s*`)
	if err != nil {
		return ""
	}

	offset := 0
	for offset < len(text) {
		loc := prefix.FindStringIndex(text[offset:])
		if loc == nil {
			return ""
		}

		raw, ok := captureValue(text[offset+loc[1]:])
		if ok {
			if cleaned := cleanValue(raw); cleaned != "" {
				return cleaned
			}
		}

		offset += loc[0] + 1
	}
	return ""
}

// captureValue takes the run of characters forming a field value. ok is false
// when the run is empty or terminated by a colon.
func captureValue(text string) (string, bool) {
	for i := 0; i < len(text); i++ {
		if i > 0 && boundaryPattern.MatchString(text[i:]) {
			return text[:i], true
		}
		switch text[i] {
		case ':':
			return "", false
		case '\n':
			if i == 0 {
				return "", false
			}
			return text[:i], true
		}
	}
	if len(text) == 0 {
		return "", false
	}
	return text, true
}

// cleanValue trims the capture and strips trailing separator runs
func cleanValue(raw string) string {
	value := strings.TrimSpace(raw)
	value = trailingJunk.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}
