package types

import (
	"fmt"
	"testing"

	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/stretchr/testify/assert"
)

func TestInvoiceStatusValidate(t *testing.T) {
	for _, s := range []InvoiceStatus{InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusCancelled} {
		assert.NoError(t, s.Validate(), s)
	}

	for _, s := range []InvoiceStatus{"", InvoiceStatusAll, "overdue", "PAID"} {
		err := s.Validate()
		assert.True(t, ierr.IsValidation(err), s)
	}
}

func TestInvoiceFilter(t *testing.T) {
	var nilFilter *InvoiceFilter
	assert.Empty(t, nilFilter.StatusFilter())
	assert.Empty(t, nilFilter.SearchText())

	assert.Empty(t, (&InvoiceFilter{Status: InvoiceStatusAll}).StatusFilter())
	assert.Equal(t, InvoiceStatusPaid, (&InvoiceFilter{Status: InvoiceStatusPaid}).StatusFilter())
	assert.Equal(t, "acme", (&InvoiceFilter{Search: "  acme "}).SearchText())
}

func TestInvoiceNumberFormat(t *testing.T) {
	assert.Equal(t, "INV-0001", fmt.Sprintf(InvoiceNumberFormat, 1))
	assert.Equal(t, "INV-12345", fmt.Sprintf(InvoiceNumberFormat, 12345))
}

func TestActivityForInvoiceStatus(t *testing.T) {
	assert.Equal(t, ActivityAction("invoice_paid"), ActivityForInvoiceStatus(InvoiceStatusPaid))
	assert.Equal(t, ActivityAction("invoice_cancelled"), ActivityForInvoiceStatus(InvoiceStatusCancelled))
}
