package types

import (
	"strings"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

// InvoiceStatus is the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusSent      InvoiceStatus = "sent"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"

	// InvoiceStatusAll is the list filter sentinel that disables status filtering
	InvoiceStatusAll InvoiceStatus = "all"
)

// InvoiceNumberFormat formats the per-tenant sequence into an invoice number
const InvoiceNumberFormat = "INV-%04d"

func (s InvoiceStatus) String() string {
	return string(s)
}

func (s InvoiceStatus) Validate() error {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled:
		return nil
	default:
		return ierr.NewError("invalid invoice status").
			WithHint("Status must be one of: draft, sent, paid, cancelled").
			WithValidationErrors([]string{"status: invalid value " + string(s)}).
			Mark(ierr.ErrValidation)
	}
}

// InvoiceFilter narrows a tenant's invoice list
type InvoiceFilter struct {
	Status InvoiceStatus `json:"status,omitempty" form:"status"`
	Search string        `json:"search,omitempty" form:"search"`
}

// StatusFilter returns the status to match exactly, or empty when the filter is off.
func (f *InvoiceFilter) StatusFilter() InvoiceStatus {
	if f == nil || f.Status == "" || f.Status == InvoiceStatusAll {
		return ""
	}
	return f.Status
}

// SearchText returns the trimmed client name search term.
func (f *InvoiceFilter) SearchText() string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(f.Search)
}
