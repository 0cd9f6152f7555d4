package invoice

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/shopspring/decimal"
)

// Invoice belongs to exactly one tenant and to the user who created it.
// Total equals Subtotal plus Tax at creation time.
type Invoice struct {
	ID            string              `db:"id" json:"id"`
	TenantID      string              `db:"tenant_id" json:"tenantId"`
	UserID        string              `db:"user_id" json:"userId"`
	InvoiceNumber string              `db:"invoice_number" json:"invoiceNumber"`
	ClientName    string              `db:"client_name" json:"clientName"`
	ClientEmail   *string             `db:"client_email" json:"clientEmail,omitempty"`
	ClientAddress *string             `db:"client_address" json:"clientAddress,omitempty"`
	Status        types.InvoiceStatus `db:"status" json:"status"`
	Currency      string              `db:"currency" json:"currency"`
	Subtotal      decimal.Decimal     `db:"subtotal" json:"subtotal"`
	Tax           decimal.Decimal     `db:"tax" json:"tax"`
	Total         decimal.Decimal     `db:"total" json:"total"`
	Notes         *string             `db:"notes" json:"notes,omitempty"`
	IssuedDate    time.Time           `db:"issued_date" json:"issuedDate"`
	DueDate       *time.Time          `db:"due_date" json:"dueDate,omitempty"`
	SentAt        *time.Time          `db:"sent_at" json:"sentAt,omitempty"`
	PaidAt        *time.Time          `db:"paid_at" json:"paidAt,omitempty"`
	CreatedAt     time.Time           `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updatedAt"`
}

// HasClientEmail reports whether the invoice can be emailed
func (i *Invoice) HasClientEmail() bool {
	return i.ClientEmail != nil && *i.ClientEmail != ""
}

// InvoiceUpdate is a partial update. Nil fields are left untouched.
// SentAt and PaidAt are only written when the stored value is unset.
type InvoiceUpdate struct {
	Status        *types.InvoiceStatus
	ClientName    *string
	ClientEmail   *string
	ClientAddress *string
	Notes         *string
	DueDate       *time.Time
	SentAt        *time.Time
	PaidAt        *time.Time
}

// Apply merges u into inv and stamps UpdatedAt
func (u *InvoiceUpdate) Apply(inv *Invoice, now time.Time) {
	if u.Status != nil {
		inv.Status = *u.Status
	}
	if u.ClientName != nil {
		inv.ClientName = *u.ClientName
	}
	if u.ClientEmail != nil {
		inv.ClientEmail = u.ClientEmail
	}
	if u.ClientAddress != nil {
		inv.ClientAddress = u.ClientAddress
	}
	if u.Notes != nil {
		inv.Notes = u.Notes
	}
	if u.DueDate != nil {
		inv.DueDate = u.DueDate
	}
	if u.SentAt != nil && inv.SentAt == nil {
		inv.SentAt = u.SentAt
	}
	if u.PaidAt != nil && inv.PaidAt == nil {
		inv.PaidAt = u.PaidAt
	}
	inv.UpdatedAt = now
}

// StatusTransition builds the update for moving inv into status at time now.
// The first entry into sent or paid stamps the matching timestamp.
func StatusTransition(inv *Invoice, status types.InvoiceStatus, now time.Time) *InvoiceUpdate {
	update := &InvoiceUpdate{Status: &status}
	switch status {
	case types.InvoiceStatusSent:
		if inv.SentAt == nil {
			update.SentAt = &now
		}
	case types.InvoiceStatusPaid:
		if inv.PaidAt == nil {
			update.PaidAt = &now
		}
	}
	return update
}
