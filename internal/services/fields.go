package services

import (
	"strings"

	"github.com/mybambu/transfer-backend/internal/models"
)

// bankRequirements lists the required recipient fields per currency, in the
// order they are asked for and extracted. Field order and the
// [name, label, aliases...] identifier order are the extractor's precedence
// rules, so the declarations below are behavior, not just data.
var bankRequirements = map[string]*models.CurrencyRequirements{
	"MXN": {
		Country:     "Mexico",
		Currency:    "MXN",
		AccountType: "mexican",
		Fields: []models.BankField{
			{
				Name:        "clabe",
				Label:       "CLABE Number",
				Description: "Mexican standardized 18-digit bank account number",
				Example:     "032180000118359719",
			},
		},
		Instructions: "For Mexico, we need the recipient's CLABE number (18 digits). This is the standardized Mexican bank account number. The recipient can find it on their bank statement or by calling their bank.",
	},

	"BRL": {
		Country:     "Brazil",
		Currency:    "BRL",
		AccountType: "brazilian",
		Fields: []models.BankField{
			{
				Name:        "cpf",
				Label:       "CPF",
				Description: "Brazilian tax ID (11 digits)",
				Example:     "12345678901",
				Aliases:     []string{"Tax ID", "Cadastro de Pessoas Físicas", "Documento"},
			},
			{
				Name:        "accountNumber",
				Label:       "Account Number",
				Description: "Bank account number",
				Example:     "12345678",
				Aliases:     []string{"Account number", "Account", "Número da conta", "Numero da conta", "Conta"},
			},
			{
				Name:        "accountType",
				Label:       "Account Type",
				Description: "checking or savings",
				Example:     "checking",
				Aliases:     []string{"Account type", "Type", "Tipo de conta", "Tipo", "Corrente", "Poupança", "Poupanca"},
			},
			{
				Name:        "bankCode",
				Label:       "Bank Code",
				Description: "3-digit bank code",
				Example:     "001",
				Aliases:     []string{"Bank code", "Code", "Código do banco", "Codigo do banco", "Banco"},
			},
		},
		Instructions: "For Brazil, we need the recipient's CPF (tax ID), bank account number, account type (checking or savings), and the 3-digit bank code.",
	},

	"GBP": {
		Country:     "United Kingdom",
		Currency:    "GBP",
		AccountType: "sort_code",
		Fields: []models.BankField{
			{
				Name:        "sortCode",
				Label:       "Sort Code",
				Description: "6-digit UK bank sort code",
				Example:     "231470",
			},
			{
				Name:        "accountNumber",
				Label:       "Account Number",
				Description: "8-digit UK account number",
				Example:     "31926819",
			},
		},
		Instructions: "For UK transfers, we need the recipient's 6-digit sort code and 8-digit account number. These can be found on their bank statement or card.",
	},

	"EUR": {
		Country:     "Europe",
		Currency:    "EUR",
		AccountType: "iban",
		Fields: []models.BankField{
			{
				Name:        "iban",
				Label:       "IBAN",
				Description: "International Bank Account Number",
				Example:     "DE89370400440532013000",
			},
		},
		Instructions: "For European transfers, we need the recipient's IBAN (International Bank Account Number). This can be found on their bank statement.",
	},

	"ARS": {
		Country:     "Argentina",
		Currency:    "ARS",
		AccountType: "argentina",
		Fields: []models.BankField{
			{
				Name:        "accountNumber",
				Label:       "CBU/CVU Number",
				Description: "Argentine bank account number (22 digits)",
				Example:     "0170099520000006542386",
				Aliases:     []string{"CBU", "CVU", "Account number", "Número de cuenta", "Numero de cuenta", "Cuenta"},
			},
			{
				Name:        "accountType",
				Label:       "Account Type",
				Description: "CHECKING (cuenta corriente) or SAVINGS (caja de ahorro)",
				Example:     "SAVINGS",
				Aliases:     []string{"Account type", "Type", "Tipo de cuenta", "Tipo", "Cuenta corriente", "Caja de ahorro"},
			},
			{
				Name:        "phoneNumber",
				Label:       "Phone Number",
				Description: "Argentine phone number (10-20 digits)",
				Example:     "1145678901",
				Aliases:     []string{"Phone", "Phone number", "Teléfono", "Telefono"},
			},
			{
				Name:        "idDocumentNumber",
				Label:       "DNI/CUIT/CUIL",
				Description: "Argentine national ID (DNI), CUIT, or CUIL",
				Example:     "12345678",
				Aliases:     []string{"DNI", "CUIT", "CUIL", "ID", "Documento", "Identification"},
			},
			{
				Name:        "city",
				Label:       "City",
				Description: "City where recipient lives",
				Example:     "Buenos Aires",
				Aliases:     []string{"Ciudad"},
			},
		},
		Instructions: "For Argentina, we need the recipient's CBU or CVU (22-digit bank account number), account type (CHECKING or SAVINGS), phone number, DNI/CUIT/CUIL, and city.",
	},

	"CLP": {
		Country:     "Chile",
		Currency:    "CLP",
		AccountType: "chile",
		Fields: []models.BankField{
			{
				Name:        "accountNumber",
				Label:       "Account Number",
				Description: "Chilean bank account number",
				Example:     "1234567890",
				Aliases:     []string{"Account number", "Account", "Número de cuenta", "Numero de cuenta", "Cuenta"},
			},
			{
				Name:        "accountType",
				Label:       "Account Type",
				Description: "CHECKING (cuenta corriente) or SAVINGS (cuenta de ahorro)",
				Example:     "CHECKING",
				Aliases:     []string{"Account type", "Type", "Tipo de cuenta", "Tipo", "Cuenta corriente", "Cuenta de ahorro"},
			},
			{
				Name:        "bankCode",
				Label:       "Bank Code",
				Description: "Chilean bank code (e.g., BCHICLRM for Banco de Chile)",
				Example:     "BCHICLRM",
				Aliases:     []string{"Bank code", "Code", "Código del banco", "Codigo del banco", "Banco", "SWIFT", "BIC"},
			},
			{
				Name:        "idDocumentNumber",
				Label:       "RUT",
				Description: "Chilean RUT (Rol Único Tributario)",
				Example:     "12345678-9",
				Aliases:     []string{"Rol Unico Tributario", "ID", "Documento"},
			},
		},
		Instructions: "For Chile, we need the recipient's bank account number, account type (CHECKING or SAVINGS), bank code (SWIFT/BIC), and RUT (Chilean ID).",
	},

	"COP": {
		Country:     "Colombia",
		Currency:    "COP",
		AccountType: "colombia",
		Fields: []models.BankField{
			{
				Name:        "accountNumber",
				Label:       "Account Number",
				Description: "Bank account number (4-20 characters)",
				Example:     "00012345678",
				Aliases:     []string{"Bank account number", "Account number", "Account"},
			},
			{
				Name:        "accountType",
				Label:       "Account Type",
				Description: "CURRENT (checking) or SAVINGS",
				Example:     "SAVINGS",
				Aliases:     []string{"Account type", "Type", "Tipo de cuenta"},
			},
			{
				Name:        "phoneNumber",
				Label:       "Phone Number",
				Description: "Colombian phone number (7-20 digits)",
				Example:     "3001234567",
				Aliases:     []string{"Phone", "Phone number", "Teléfono", "Telefono"},
			},
			{
				Name:        "idDocumentNumber",
				Label:       "Cédula Number",
				Description: "Colombian national ID number (Cédula de Ciudadanía)",
				Example:     "1234567890",
				Aliases:     []string{"Cédula", "Cedula", "Cédula number", "Cedula number", "ID", "CC"},
			},
			{
				Name:        "city",
				Label:       "City",
				Description: "City where recipient lives",
				Example:     "Bogotá",
				Aliases:     []string{"Ciudad"},
			},
			{
				Name:        "address",
				Label:       "Street Address",
				Description: "Recipient's street address",
				Example:     "Calle 123 #45-67",
				Aliases:     []string{"Address", "Street address", "Dirección", "Direccion"},
			},
			{
				Name:        "postCode",
				Label:       "Post Code",
				Description: "Postal code",
				Example:     "110111",
				Aliases:     []string{"Post code", "Postcode", "Postal code", "Zip code", "Zip", "Código postal", "Codigo postal"},
			},
		},
		Instructions: "For Colombia, we need the recipient's bank account number, account type (CURRENT for checking or SAVINGS), phone number, Cédula number (Colombian national ID), and complete address (city, street address, and postal code).",
	},
}

// BankRequirements returns the field catalog for a currency, or nil
func BankRequirements(currency string) *models.CurrencyRequirements {
	return bankRequirements[currency]
}

// ValidateBankDetails checks a details map against a currency's requirements.
// Missing field labels come back in catalog order for user-facing messaging.
func ValidateBankDetails(currency string, details map[string]string) (bool, []string) {
	requirements := BankRequirements(currency)
	if requirements == nil {
		return false, []string{"Unknown currency"}
	}

	var missing []string
	for _, field := range requirements.Fields {
		if strings.TrimSpace(details[field.Name]) == "" {
			missing = append(missing, field.Label)
		}
	}
	return len(missing) == 0, missing
}

// FormatBankDetails renders collected details for the confirmation summary
func FormatBankDetails(currency string, details map[string]string) string {
	requirements := BankRequirements(currency)
	if requirements == nil {
		return ""
	}

	var lines []string
	for _, field := range requirements.Fields {
		if value := details[field.Name]; value != "" {
			lines = append(lines, field.Label+": "+value)
		}
	}
	return strings.Join(lines, "\n")
}
