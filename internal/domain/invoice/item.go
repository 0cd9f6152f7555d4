package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem is a line of an invoice. Total is Quantity times UnitPrice.
type InvoiceItem struct {
	ID          string          `db:"id" json:"id"`
	InvoiceID   string          `db:"invoice_id" json:"invoiceId"`
	Description string          `db:"description" json:"description"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unitPrice"`
	Total       decimal.Decimal `db:"total" json:"total"`
	CreatedAt   time.Time       `db:"created_at" json:"createdAt"`
}

// InvoiceWithItems is an invoice together with its line items
type InvoiceWithItems struct {
	Invoice *Invoice
	Items   []*InvoiceItem
}
