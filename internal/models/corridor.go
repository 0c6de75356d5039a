package models

// Corridor is a supported (country, currency) transfer destination
type Corridor struct {
	Country      string `json:"country"`  // display name, e.g. "Mexico"
	Currency     string `json:"currency"` // settlement currency, e.g. "MXN"
	DeliveryTime string `json:"delivery_time"`
}

// BankField describes one required recipient field for a currency.
// Name is the canonical key used in Session.BankDetails; Label is what the
// user sees. Aliases are alternate spellings the extractor should accept,
// tried after Name and Label in declaration order.
type BankField struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Example     string   `json:"example"`
	Aliases     []string `json:"aliases,omitempty"`
}

// CurrencyRequirements is the ordered bank-field catalog entry for a currency
type CurrencyRequirements struct {
	Country      string      `json:"country"`
	Currency     string      `json:"currency"`
	AccountType  string      `json:"account_type"` // Wise recipient type
	Fields       []BankField `json:"fields"`
	Instructions string      `json:"instructions"`
}
