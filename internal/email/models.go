package email

import (
	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
)

// NotConfiguredMessage is reported when no transport API key is set
const NotConfiguredMessage = "Email service not configured. Please add RESEND_API_KEY to enable email sending."

// DefaultCompanyName is printed when the tenant has no company yet
const DefaultCompanyName = "Your Company"

// InvoiceEmailData is everything needed to render and address an invoice email
type InvoiceEmailData struct {
	Invoice *invoice.Invoice
	Items   []*invoice.InvoiceItem
	// Company is nil when the tenant has not set one up
	Company *company.Company
}

// SendEmailResponse is the tagged result of a send. Expected failures are
// reported through Success and Error, never as a Go error.
type SendEmailResponse struct {
	MessageID string
	Success   bool
	Error     string
}
