package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		currency string
		amount   string
		expected string
	}{
		{currency: "GBP", amount: "600", expected: "£600.00"},
		{currency: "gbp", amount: "0.1", expected: "£0.10"},
		{currency: "EUR", amount: "1234.5", expected: "€1234.50"},
		{currency: "USD", amount: "50.005", expected: "$50.01"},
		{currency: "chf", amount: "10", expected: "CHF 10.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.currency+"_"+tc.amount, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatAmount(tc.currency, decimal.RequireFromString(tc.amount)))
		})
	}
}

func TestNormalizeCurrency(t *testing.T) {
	assert.Equal(t, "GBP", NormalizeCurrency(""))
	assert.Equal(t, "GBP", NormalizeCurrency("   "))
	assert.Equal(t, "EUR", NormalizeCurrency(" eur "))
}
