package services

import (
	"fmt"
	"strings"

	"github.com/mybambu/transfer-backend/internal/models"
)

// All user-facing text, per language. The dialogue manager never builds
// sentences inline; every reply comes from here so both languages stay in
// sync with the flow.

func countryListText(language string) string {
	var lines []string
	for _, country := range SupportedCountries(language) {
		lines = append(lines, "• "+country)
	}
	return strings.Join(lines, "\n")
}

func msgWelcome(language string) string {
	if language == "es" {
		return "👋 *¡Bienvenido a MyBambu!*\n\n" +
			"Te ayudo a enviar dinero internacionalmente con buenas tasas.\n\n" +
			"🌎 Países soportados:\n" + countryListText("es") + "\n\n" +
			"Prueba: \"Enviar $100 a México\""
	}
	return "👋 *Welcome to MyBambu!*\n\n" +
		"I help you send money internationally with great rates.\n\n" +
		"🌎 Supported countries:\n" + countryListText("en") + "\n\n" +
		"Try: \"Send $100 to Mexico\""
}

func msgHelp(language string) string {
	if language == "es" {
		return "💡 *Ayuda MyBambu*\n\n" +
			"Puedo ayudarte a enviar dinero a:\n" + countryListText("es") + "\n\n" +
			"Prueba:\n" +
			"• \"Enviar $100 a México\"\n" +
			"• \"¿Cuál es la tasa a Colombia?\"\n" +
			"• \"Enviar dinero a mi familia\"\n\n" +
			"Escribe \"cancelar\" en cualquier momento para detener."
	}
	return "💡 *MyBambu Help*\n\n" +
		"I can help you send money to:\n" + countryListText("en") + "\n\n" +
		"Try:\n" +
		"• \"Send $100 to Mexico\"\n" +
		"• \"What's the rate to Colombia?\"\n" +
		"• \"Send money to my family\"\n\n" +
		"Say \"cancel\" anytime to stop."
}

func msgCancelled(language string) string {
	if language == "es" {
		return "🔄 Transferencia cancelada. Di \"hola\" para empezar de nuevo."
	}
	return "🔄 Transfer cancelled. Say \"hello\" to start again."
}

func msgFallback(language string) string {
	if language == "es" {
		return "👋 ¡Puedo ayudarte a enviar dinero internacionalmente!\n\n" +
			"Prueba:\n" +
			"• \"Enviar $100 a México\"\n" +
			"• \"Ver tasa a Colombia\"\n" +
			"• \"Ayuda\""
	}
	return "👋 I can help you send money internationally!\n\n" +
		"Try:\n" +
		"• \"Send $100 to Mexico\"\n" +
		"• \"Check rate to Colombia\"\n" +
		"• \"Help\""
}

func msgRate(country, currency string, rate float64, language string) string {
	localized := LocalizedCountryName(country, language)
	if language == "es" {
		return fmt.Sprintf("💱 *Tasa de Cambio*\n\n1 USD = %v %s\n\n¿Listo para enviar? Prueba \"Enviar $100 a %s\"",
			rate, currency, localized)
	}
	return fmt.Sprintf("💱 *Exchange Rate*\n\n1 USD = %v %s\n\nReady to send? Try \"Send $100 to %s\"",
		rate, currency, localized)
}

func msgRateWhichCountry(language string) string {
	if language == "es" {
		return "🌎 ¿A qué país? (México, Colombia, Brasil, Reino Unido o Europa)"
	}
	return "🌎 Which country? (Mexico, Colombia, Brazil, UK, or Europe)"
}

func msgAskAmount(language string) string {
	if language == "es" {
		return "💰 ¿Cuánto te gustaría enviar? (en USD)"
	}
	return "💰 How much would you like to send? (in USD)"
}

func msgInvalidAmount(language string) string {
	if language == "es" {
		return "❌ Por favor ingresa un monto válido entre $1 y $10,000\n\nEjemplo: \"$100\" o \"100\""
	}
	return "❌ Please enter a valid amount between $1 and $10,000\n\nExample: \"$100\" or \"100\""
}

func msgAskCountry(amount float64, language string) string {
	if language == "es" {
		return fmt.Sprintf("✅ Enviando *$%v USD*\n\n🌎 ¿A qué país?\n%s", amount, countryListText("es"))
	}
	return fmt.Sprintf("✅ Sending *$%v USD*\n\n🌎 Which country?\n%s", amount, countryListText("en"))
}

func msgUnsupportedCountry(language string) string {
	if language == "es" {
		return "❌ Por favor elige un país soportado:\n" + countryListText("es")
	}
	return "❌ Please choose a supported country:\n" + countryListText("en")
}

func msgCountryConfirmed(session *models.Session, language string) string {
	rate := ExchangeRate(session.Currency)
	_, estimated := EstimateDelivery(session.Amount, session.Currency)
	localized := LocalizedCountryName(session.Country, language)

	if language == "es" {
		return fmt.Sprintf("✅ Destino: *%s* %s\n💱 Tasa: 1 USD = %v %s\n📩 Recibirán: ~%.2f %s\n\n📝 ¿Cuál es el nombre completo del destinatario?",
			localized, CountryFlag(session.Currency), rate, session.Currency, estimated, session.Currency)
	}
	return fmt.Sprintf("✅ Destination: *%s* %s\n💱 Rate: 1 USD = %v %s\n📩 They'll receive: ~%.2f %s\n\n📝 What's the recipient's full name?",
		localized, CountryFlag(session.Currency), rate, session.Currency, estimated, session.Currency)
}

func msgGotAmountAndCountry(amount float64, country, language string) string {
	localized := LocalizedCountryName(country, language)
	if language == "es" {
		return fmt.Sprintf("✅ ¡Entendido! Enviando *$%v USD* a *%s*\n\n📝 ¿Cuál es el nombre completo del destinatario?", amount, localized)
	}
	return fmt.Sprintf("✅ Got it! Sending *$%v USD* to *%s*\n\n📝 What's the recipient's full name?", amount, localized)
}

func msgInvalidName(language string) string {
	if language == "es" {
		return "❌ Por favor ingresa el nombre completo del destinatario (nombre y apellido)"
	}
	return "❌ Please enter the recipient's full name (first and last name)"
}

func msgBankDetailsPrompt(recipientName string, requirements *models.CurrencyRequirements, language string) string {
	var fieldLines []string
	for _, field := range requirements.Fields {
		fieldLines = append(fieldLines, fmt.Sprintf("• *%s*: %s\n  %s: %s",
			field.Label, field.Description, exampleWord(language), field.Example))
	}
	fieldsText := strings.Join(fieldLines, "\n\n")

	if language == "es" {
		return fmt.Sprintf("✅ Destinatario: *%s*\n\n📋 Ahora necesito sus datos bancarios:\n\n%s\n\nℹ️ Envíalos uno por uno o todos juntos.",
			recipientName, fieldsText)
	}
	return fmt.Sprintf("✅ Recipient: *%s*\n\n📋 Now I need their bank details:\n\n%s\n\nℹ️ Send them one at a time or all together.",
		recipientName, fieldsText)
}

func exampleWord(language string) string {
	if language == "es" {
		return "Ejemplo"
	}
	return "Example"
}

func msgMissingFields(missing []string, language string) string {
	var lines []string
	for _, label := range missing {
		lines = append(lines, "• "+label)
	}
	missingText := strings.Join(lines, "\n")

	if language == "es" {
		return fmt.Sprintf("❌ Todavía necesito:\n\n%s\n\nPor favor envía la información que falta.", missingText)
	}
	return fmt.Sprintf("❌ Still need:\n\n%s\n\nPlease provide the missing information.", missingText)
}

func msgConfirmSummary(session *models.Session, language string) string {
	rate := ExchangeRate(session.Currency)
	fee, recipientAmount := EstimateDelivery(session.Amount, session.Currency)
	localized := LocalizedCountryName(session.Country, language)

	deliveryTime := ""
	if corridor, ok := CorridorForCountry(session.Country); ok {
		deliveryTime = corridor.DeliveryTime
	}

	if language == "es" {
		return fmt.Sprintf("✅ *¡Listo para Enviar!*\n\n"+
			"💰 Tú envías: $%v USD\n"+
			"💵 Comisión: ~$%.2f USD\n"+
			"💱 Tasa: %v %s/USD\n"+
			"📩 %s recibe: ~%.2f %s\n"+
			"🌎 País: %s\n\n"+
			"⏱️ Entrega: %s\n\n"+
			"Escribe *\"CONFIRMAR\"* para enviar, o \"cancelar\" para detener.",
			session.Amount, fee, rate, session.Currency, session.RecipientName,
			recipientAmount, session.Currency, localized, deliveryTime)
	}
	return fmt.Sprintf("✅ *Ready to Send!*\n\n"+
		"💰 You send: $%v USD\n"+
		"💵 Fee: ~$%.2f USD\n"+
		"💱 Rate: %v %s/USD\n"+
		"📩 %s receives: ~%.2f %s\n"+
		"🌎 Country: %s\n\n"+
		"⏱️ Delivery: %s\n\n"+
		"Type *\"CONFIRM\"* to send, or \"cancel\" to stop.",
		session.Amount, fee, rate, session.Currency, session.RecipientName,
		recipientAmount, session.Currency, localized, deliveryTime)
}

func msgConfirmReprompt(language string) string {
	if language == "es" {
		return "Escribe *\"CONFIRMAR\"* para proceder con la transferencia,\no \"cancelar\" para detener."
	}
	return "Type *\"CONFIRM\"* to proceed with the transfer,\nor \"cancel\" to stop."
}

func msgProcessing(language string) string {
	if language == "es" {
		return "⏳ Procesando tu transferencia..."
	}
	return "⏳ Processing your transfer..."
}

func msgTransferSent(result *models.TransferResult, currency, language string) string {
	if language == "es" {
		return fmt.Sprintf("✅ *¡Transferencia Enviada!*\n\n"+
			"💰 Enviado: $%v USD\n"+
			"📩 Recibe: %.2f %s\n"+
			"💱 Tasa: %.4f\n"+
			"💵 Comisión: $%.2f\n"+
			"⏱️ Entrega: %s\n"+
			"🆔 ID de transferencia: %s\n\n"+
			"Di \"hola\" para enviar otra transferencia!",
			result.Amount, result.TargetAmount, currency, result.Rate, result.Fee,
			result.EstimatedDelivery, result.TransferID)
	}
	return fmt.Sprintf("✅ *Transfer Sent!*\n\n"+
		"💰 Sent: $%v USD\n"+
		"📩 Receives: %.2f %s\n"+
		"💱 Rate: %.4f\n"+
		"💵 Fee: $%.2f\n"+
		"⏱️ Delivery: %s\n"+
		"🆔 Transfer ID: %s\n\n"+
		"Say \"hello\" to send another transfer!",
		result.Amount, result.TargetAmount, currency, result.Rate, result.Fee,
		result.EstimatedDelivery, result.TransferID)
}

func msgTransferDemo(amount float64, currency string, language string) string {
	rate := ExchangeRate(currency)
	fee, recipientAmount := EstimateDelivery(amount, currency)

	if language == "es" {
		return fmt.Sprintf("✅ *Transferencia Demo*\n\n"+
			"💰 Enviado: $%v USD\n"+
			"📩 Recibe: ~%.2f %s\n"+
			"💱 Tasa: ~%v\n"+
			"💵 Comisión: ~$%.2f\n\n"+
			"🎭 Esto es una DEMO. No se envió dinero real.\n"+
			"Configura MODE=PRODUCTION en .env para transferencias reales.\n\n"+
			"Di \"hola\" para probar otra transferencia!",
			amount, recipientAmount, currency, rate, fee)
	}
	return fmt.Sprintf("✅ *Transfer Demo*\n\n"+
		"💰 Sent: $%v USD\n"+
		"📩 Receives: ~%.2f %s\n"+
		"💱 Rate: ~%v\n"+
		"💵 Fee: ~$%.2f\n\n"+
		"🎭 This is a DEMO. No real money sent.\n"+
		"Set MODE=PRODUCTION in .env for real transfers.\n\n"+
		"Say \"hello\" to try another transfer!",
		amount, recipientAmount, currency, rate, fee)
}

func msgTransferFailed(providerMessage, language string) string {
	if language == "es" {
		return fmt.Sprintf("❌ *Transferencia Fallida*\n\nError: %s\n\nPor favor intenta de nuevo o contacta soporte.", providerMessage)
	}
	return fmt.Sprintf("❌ *Transfer Failed*\n\nError: %s\n\nPlease try again or contact support.", providerMessage)
}

func msgUnsupportedCurrency(language string) string {
	if language == "es" {
		return "❌ Error: Moneda no soportada"
	}
	return "❌ Error: Unsupported currency"
}

func msgStaticFallback(language string) string {
	if language == "es" {
		return "❌ Disculpa, tuve un problema. ¿Puedes intentar de nuevo?\n\nPara enviar dinero, escribe: *Enviar $100 a México*"
	}
	return "❌ Sorry, I had an issue. Can you try again?\n\nTo send money, type: *Send $100 to Mexico*"
}
