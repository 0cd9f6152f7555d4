package email

import (
	"testing"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInvoiceData(currency string) InvoiceEmailData {
	due := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	return InvoiceEmailData{
		Invoice: &invoice.Invoice{
			ID:            "inv_1",
			InvoiceNumber: "INV-0007",
			ClientName:    "Globex Corporation",
			ClientEmail:   lo.ToPtr("ap@globex.test"),
			Currency:      currency,
			Subtotal:      decimal.RequireFromString("600"),
			Tax:           decimal.Zero,
			Total:         decimal.RequireFromString("600"),
			DueDate:       &due,
		},
		Items: []*invoice.InvoiceItem{
			{
				Description: "Web design",
				Quantity:    decimal.RequireFromString("10"),
				UnitPrice:   decimal.RequireFromString("50"),
				Total:       decimal.RequireFromString("500"),
			},
			{
				Description: "Hosting",
				Quantity:    decimal.RequireFromString("1.5"),
				UnitPrice:   decimal.RequireFromString("66.666"),
				Total:       decimal.RequireFromString("100"),
			},
		},
	}
}

func TestSubject(t *testing.T) {
	data := testInvoiceData("GBP")
	assert.Equal(t, "Invoice INV-0007 from Your Company", Subject(data))

	data.Company = &company.Company{Name: "Acme Studio"}
	assert.Equal(t, "Invoice INV-0007 from Acme Studio", Subject(data))

	data.Company = &company.Company{Name: "   "}
	assert.Equal(t, "Invoice INV-0007 from Your Company", Subject(data))
}

func TestRenderInvoiceHTML(t *testing.T) {
	data := testInvoiceData("GBP")
	data.Company = &company.Company{
		Name:      "Acme Studio",
		Address:   lo.ToPtr("1 High Street"),
		City:      lo.ToPtr("Leeds"),
		Country:   lo.ToPtr("UK"),
		Email:     lo.ToPtr("billing@acme.test"),
		TaxNumber: lo.ToPtr("GB123456789"),
		LogoURL:   lo.ToPtr("https://acme.test/logo.png"),
	}
	data.Invoice.Notes = lo.ToPtr("Payment within 30 days")

	html, err := RenderInvoiceHTML(data)
	require.NoError(t, err)

	for _, want := range []string{
		"Invoice INV-0007",
		"From Acme Studio",
		"Dear Globex Corporation,",
		"1 High Street, Leeds, UK",
		"Email: billing@acme.test",
		"Tax/VAT: GB123456789",
		`src="https://acme.test/logo.png"`,
		"Web design",
		"£50.00",
		"£500.00",
		"1.5",
		"£66.67",
		"£600.00",
		"<strong>Due Date:</strong> 15 March 2026",
		"<strong>Notes:</strong> Payment within 30 days",
		"This invoice was generated by InvoiceAI",
	} {
		assert.Contains(t, html, want)
	}

	assert.NotContains(t, html, "Subtotal:")
	assert.NotContains(t, html, "Tax:</td>")
	assert.NotContains(t, html, "Phone:")
}

func TestRenderInvoiceHTMLWithoutCompany(t *testing.T) {
	data := testInvoiceData("GBP")
	data.Invoice.DueDate = nil

	html, err := RenderInvoiceHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, "From Your Company")
	assert.NotContains(t, html, "Tax/VAT:")
	assert.NotContains(t, html, "Due Date:")
	assert.NotContains(t, html, "Notes:")
}

func TestRenderInvoiceHTMLTotals(t *testing.T) {
	data := testInvoiceData("EUR")
	data.Invoice.Tax = decimal.RequireFromString("120")
	data.Invoice.Total = decimal.RequireFromString("720")

	html, err := RenderInvoiceHTML(data)
	require.NoError(t, err)

	assert.Contains(t, html, "Subtotal:")
	assert.Contains(t, html, "€600.00")
	assert.Contains(t, html, "€120.00")
	assert.Contains(t, html, "€720.00")
}

func TestRenderInvoiceHTMLEscapesInput(t *testing.T) {
	data := testInvoiceData("GBP")
	data.Invoice.ClientName = "<script>alert(1)</script>"

	html, err := RenderInvoiceHTML(data)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestRenderInvoiceText(t *testing.T) {
	testCases := []struct {
		name     string
		currency string
		want     []string
	}{
		{
			name:     "known currency",
			currency: "USD",
			want:     []string{"- Web design x 10 @ $50.00 = $500.00", "Total: $600.00"},
		},
		{
			name:     "unknown currency",
			currency: "CHF",
			want:     []string{"- Hosting x 1.5 @ CHF 66.67 = CHF 100.00", "Total: CHF 600.00"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := RenderInvoiceText(testInvoiceData(tc.currency))
			require.NoError(t, err)
			assert.Contains(t, text, "Invoice INV-0007 from Your Company")
			assert.Contains(t, text, "Due Date: 15 March 2026")
			for _, want := range tc.want {
				assert.Contains(t, text, want)
			}
		})
	}
}
