package testutil

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// InMemoryInvoiceStore keeps invoices and their items. Stored records are
// copies, so callers mutating a returned invoice do not change the store.
type InMemoryInvoiceStore struct {
	*InMemoryStore[*invoice.Invoice]

	itemsMu sync.RWMutex
	items   map[string][]*invoice.InvoiceItem
}

func NewInMemoryInvoiceStore() *InMemoryInvoiceStore {
	return &InMemoryInvoiceStore{
		InMemoryStore: NewInMemoryStore[*invoice.Invoice](),
		items:         make(map[string][]*invoice.InvoiceItem),
	}
}

func (s *InMemoryInvoiceStore) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv == nil {
		return ierr.NewError("invoice cannot be nil").Mark(ierr.ErrValidation)
	}

	// (tenant_id, invoice_number) is unique
	_, taken := s.InMemoryStore.Find(ctx, func(_ context.Context, existing *invoice.Invoice) bool {
		return existing.TenantID == inv.TenantID && existing.InvoiceNumber == inv.InvoiceNumber
	})
	if taken {
		return ierr.NewError("invoice number already used").
			WithHint("invoice already exists").
			Mark(ierr.ErrAlreadyExists)
	}

	stored := *inv
	return s.InMemoryStore.Create(ctx, inv.ID, &stored)
}

func (s *InMemoryInvoiceStore) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	inv, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, invoice.NewInvoiceNotFoundError(id)
	}
	out := *inv
	return &out, nil
}

func (s *InMemoryInvoiceStore) Update(ctx context.Context, id string, update *invoice.InvoiceUpdate) (*invoice.Invoice, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	update.Apply(existing, time.Now().UTC())
	stored := *existing
	if err := s.InMemoryStore.Update(ctx, id, &stored); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *InMemoryInvoiceStore) List(ctx context.Context, tenantID string, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	status := filter.StatusFilter()
	search := strings.ToLower(filter.SearchText())

	invoices := s.InMemoryStore.List(ctx, func(_ context.Context, inv *invoice.Invoice) bool {
		if inv.TenantID != tenantID {
			return false
		}
		if status != "" && inv.Status != status {
			return false
		}
		if search != "" && !strings.Contains(strings.ToLower(inv.ClientName), search) {
			return false
		}
		return true
	}, func(a, b *invoice.Invoice) bool {
		return a.CreatedAt.After(b.CreatedAt)
	})

	return lo.Map(invoices, func(inv *invoice.Invoice, _ int) *invoice.Invoice {
		out := *inv
		return &out
	}), nil
}

func (s *InMemoryInvoiceStore) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	return s.InMemoryStore.Count(ctx, invoiceInTenant(tenantID)), nil
}

func (s *InMemoryInvoiceStore) CountByTenantAndStatus(ctx context.Context, tenantID string) (map[types.InvoiceStatus]int, error) {
	counts := make(map[types.InvoiceStatus]int)
	for _, inv := range s.InMemoryStore.List(ctx, invoiceInTenant(tenantID), nil) {
		counts[inv.Status]++
	}
	return counts, nil
}

func (s *InMemoryInvoiceStore) SumTotalByTenantAndStatus(ctx context.Context, tenantID string, status types.InvoiceStatus) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, inv := range s.InMemoryStore.List(ctx, invoiceInTenant(tenantID), nil) {
		if inv.Status == status {
			sum = sum.Add(inv.Total)
		}
	}
	return sum, nil
}

func (s *InMemoryInvoiceStore) CreateItems(ctx context.Context, items []*invoice.InvoiceItem) error {
	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()

	for _, item := range items {
		stored := *item
		s.items[item.InvoiceID] = append(s.items[item.InvoiceID], &stored)
	}
	return nil
}

func (s *InMemoryInvoiceStore) ListItems(ctx context.Context, invoiceID string) ([]*invoice.InvoiceItem, error) {
	s.itemsMu.RLock()
	defer s.itemsMu.RUnlock()

	return lo.Map(s.items[invoiceID], func(item *invoice.InvoiceItem, _ int) *invoice.InvoiceItem {
		out := *item
		return &out
	}), nil
}

// Snapshot covers invoices and their items
func (s *InMemoryInvoiceStore) Snapshot() func() {
	restoreInvoices := s.InMemoryStore.Snapshot()

	s.itemsMu.RLock()
	saved := make(map[string][]*invoice.InvoiceItem, len(s.items))
	for invoiceID, items := range s.items {
		saved[invoiceID] = append([]*invoice.InvoiceItem(nil), items...)
	}
	s.itemsMu.RUnlock()

	return func() {
		restoreInvoices()
		s.itemsMu.Lock()
		defer s.itemsMu.Unlock()
		s.items = saved
	}
}

func (s *InMemoryInvoiceStore) Clear() {
	s.InMemoryStore.Clear()

	s.itemsMu.Lock()
	defer s.itemsMu.Unlock()
	s.items = make(map[string][]*invoice.InvoiceItem)
}

func invoiceInTenant(tenantID string) FilterFunc[*invoice.Invoice] {
	return func(_ context.Context, inv *invoice.Invoice) bool {
		return inv.TenantID == tenantID
	}
}
