package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when an invoice draft names no currency
const DefaultCurrency = "GBP"

// CURRENCY_CODES_SYMBOLS is a map of 3 digit ISO currency codes to their symbols
var CURRENCY_CODES_SYMBOLS = map[string]string{
	"gbp": "£",
	"eur": "€",
	"usd": "$",
}

// GetCurrencySymbol returns the symbol for a given currency code.
// Unknown codes render as the code followed by a space.
func GetCurrencySymbol(code string) string {
	if symbol, ok := CURRENCY_CODES_SYMBOLS[strings.ToLower(code)]; ok {
		return symbol
	}
	return strings.ToUpper(code) + " "
}

// FormatAmount renders an amount with its currency symbol and two decimals, e.g. £600.00
func FormatAmount(currency string, amount decimal.Decimal) string {
	return GetCurrencySymbol(currency) + amount.StringFixed(2)
}

// NormalizeCurrency upper-cases a code and falls back to DefaultCurrency
func NormalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}
