package services

// Demo/fallback exchange rates, USD to target currency. Production quotes
// come from the payments provider; these only back the demo mode and the
// rate-lookup side channel.
var exchangeRates = map[string]float64{
	"MXN": 17.2,
	"COP": 3750,
	"BRL": 5.1,
	"GBP": 0.79,
	"EUR": 0.92,
}

// demoFeeRate is the indicative fee used for estimates and demo transfers
const demoFeeRate = 0.03

// ExchangeRate returns the demo rate for a currency (0 if unknown)
func ExchangeRate(currency string) float64 {
	return exchangeRates[currency]
}

// EstimateDelivery computes the demo-mode quote: fee, net and recipient amount
func EstimateDelivery(amount float64, currency string) (fee, recipientAmount float64) {
	rate := ExchangeRate(currency)
	fee = amount * demoFeeRate
	recipientAmount = (amount - fee) * rate
	return fee, recipientAmount
}
