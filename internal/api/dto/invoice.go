package dto

import (
	"strings"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/invoiceai/invoiceai/internal/validator"
	"github.com/samber/lo"
)

// GenerateInvoiceRequest is the free-text input of invoice generation.
// ClientName and ClientEmail are hints passed to the model.
type GenerateInvoiceRequest struct {
	Description string `json:"description"`
	ClientName  string `json:"clientName,omitempty"`
	ClientEmail string `json:"clientEmail,omitempty" validate:"omitempty,email"`
}

func (r *GenerateInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.Description) == "" {
		return ierr.NewError("description is required").
			WithHint("Description is required").
			WithValidationErrors([]string{"description: is required"}).
			Mark(ierr.ErrValidation)
	}
	return validator.ValidateRequest(r)
}

// UpdateInvoiceStatusRequest moves an invoice to a new status
type UpdateInvoiceStatusRequest struct {
	Status types.InvoiceStatus `json:"status" validate:"required"`
}

func (r *UpdateInvoiceStatusRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	return r.Status.Validate()
}

// ListInvoicesQuery is bound from the query string of the invoice list
type ListInvoicesQuery struct {
	Status string `form:"status"`
	Search string `form:"search"`
}

// ToFilter converts the query into a store filter
func (q *ListInvoicesQuery) ToFilter() *types.InvoiceFilter {
	return &types.InvoiceFilter{
		Status: types.InvoiceStatus(strings.TrimSpace(q.Status)),
		Search: q.Search,
	}
}

type InvoiceResponse struct {
	ID            string              `json:"id"`
	TenantID      string              `json:"tenantId"`
	UserID        string              `json:"userId"`
	InvoiceNumber string              `json:"invoiceNumber"`
	ClientName    string              `json:"clientName"`
	ClientEmail   *string             `json:"clientEmail"`
	ClientAddress *string             `json:"clientAddress"`
	Status        types.InvoiceStatus `json:"status"`
	Currency      string              `json:"currency"`
	Subtotal      string              `json:"subtotal"`
	Tax           string              `json:"tax"`
	Total         string              `json:"total"`
	Notes         *string             `json:"notes"`
	IssuedDate    string              `json:"issuedDate"`
	DueDate       *string             `json:"dueDate"`
	SentAt        *string             `json:"sentAt"`
	PaidAt        *string             `json:"paidAt"`
	CreatedAt     string              `json:"createdAt"`
	UpdatedAt     string              `json:"updatedAt"`
}

type InvoiceItemResponse struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoiceId"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitPrice   string `json:"unitPrice"`
	Total       string `json:"total"`
	CreatedAt   string `json:"createdAt"`
}

// GenerateInvoiceResponse is the persisted result of a generation
type GenerateInvoiceResponse struct {
	Invoice *InvoiceResponse       `json:"invoice"`
	Items   []*InvoiceItemResponse `json:"items"`
}

// InvoiceDetailResponse is an invoice with its items inlined
type InvoiceDetailResponse struct {
	*InvoiceResponse
	Items []*InvoiceItemResponse `json:"items"`
}

type SendInvoiceResponse struct {
	Success bool             `json:"success"`
	Invoice *InvoiceResponse `json:"invoice"`
}

func NewInvoiceResponse(inv *invoice.Invoice) *InvoiceResponse {
	if inv == nil {
		return nil
	}
	return &InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		UserID:        inv.UserID,
		InvoiceNumber: inv.InvoiceNumber,
		ClientName:    inv.ClientName,
		ClientEmail:   inv.ClientEmail,
		ClientAddress: inv.ClientAddress,
		Status:        inv.Status,
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal.StringFixed(2),
		Tax:           inv.Tax.StringFixed(2),
		Total:         inv.Total.StringFixed(2),
		Notes:         inv.Notes,
		IssuedDate:    formatTime(inv.IssuedDate),
		DueDate:       formatTimePtr(inv.DueDate),
		SentAt:        formatTimePtr(inv.SentAt),
		PaidAt:        formatTimePtr(inv.PaidAt),
		CreatedAt:     formatTime(inv.CreatedAt),
		UpdatedAt:     formatTime(inv.UpdatedAt),
	}
}

func NewInvoiceItemResponse(item *invoice.InvoiceItem) *InvoiceItemResponse {
	return &InvoiceItemResponse{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		Description: item.Description,
		Quantity:    item.Quantity.String(),
		UnitPrice:   item.UnitPrice.StringFixed(2),
		Total:       item.Total.StringFixed(2),
		CreatedAt:   formatTime(item.CreatedAt),
	}
}

func NewInvoiceItemResponses(items []*invoice.InvoiceItem) []*InvoiceItemResponse {
	return lo.Map(items, func(item *invoice.InvoiceItem, _ int) *InvoiceItemResponse {
		return NewInvoiceItemResponse(item)
	})
}

func NewInvoiceListResponse(invoices []*invoice.Invoice) []*InvoiceResponse {
	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *InvoiceResponse {
		return NewInvoiceResponse(inv)
	})
}
