package invoice

import (
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

func NewInvoiceNotFoundError(id string) error {
	return ierr.NewError("invoice not found").
		WithHintf("Invoice %s was not found", id).
		WithReportableDetails(map[string]any{"invoice_id": id}).
		Mark(ierr.ErrNotFound)
}

func NewInvoiceForbiddenError(id string) error {
	return ierr.NewError("invoice belongs to another tenant").
		WithHint("You do not have access to this invoice").
		WithReportableDetails(map[string]any{"invoice_id": id}).
		Mark(ierr.ErrForbidden)
}
