package services

import "regexp"

// Spanish function words and transfer vocabulary. Presence of any of these,
// or of Spanish-only characters, marks the message as Spanish.
var spanishPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(hola|buenos|buenas|días|tardes|noches|gracias|por favor|ayuda|necesito|quiero|cuánto|dónde|cómo|qué|enviar|dinero|transferencia|pesos|sí|no)\b`),
	regexp.MustCompile(`(?i)[áéíóúñ¿¡]`),
}

// DetectLanguage classifies a message as "es" or "en". The dialogue manager
// calls it once per session, on the first message, and the result sticks.
func DetectLanguage(text string) string {
	for _, pattern := range spanishPatterns {
		if pattern.MatchString(text) {
			return "es"
		}
	}
	return "en"
}
