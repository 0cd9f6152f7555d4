package invoice

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/shopspring/decimal"
)

// Repository defines the interface for invoice persistence operations.
// Lookups by id are tenant-agnostic; callers check ownership.
type Repository interface {
	// Create creates a new invoice
	Create(ctx context.Context, invoice *Invoice) error

	// Get retrieves an invoice by ID
	Get(ctx context.Context, id string) (*Invoice, error)

	// Update merges the non-nil fields and returns the stored record
	Update(ctx context.Context, id string, update *InvoiceUpdate) (*Invoice, error)

	// List returns the tenant's invoices, newest first
	List(ctx context.Context, tenantID string, filter *types.InvoiceFilter) ([]*Invoice, error)

	// CountByTenant returns how many invoices the tenant has
	CountByTenant(ctx context.Context, tenantID string) (int, error)

	// CountByTenantAndStatus returns the tenant's invoice count per status
	CountByTenantAndStatus(ctx context.Context, tenantID string) (map[types.InvoiceStatus]int, error)

	// SumTotalByTenantAndStatus adds up the totals of the tenant's invoices in status
	SumTotalByTenantAndStatus(ctx context.Context, tenantID string, status types.InvoiceStatus) (decimal.Decimal, error)

	// CreateItems inserts a batch of line items
	CreateItems(ctx context.Context, items []*InvoiceItem) error

	// ListItems returns the invoice's line items in insertion order
	ListItems(ctx context.Context, invoiceID string) ([]*InvoiceItem, error)
}
