package testutil

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/company"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemoryCompanyStore struct {
	*InMemoryStore[*company.Company]
}

func NewInMemoryCompanyStore() *InMemoryCompanyStore {
	return &InMemoryCompanyStore{
		InMemoryStore: NewInMemoryStore[*company.Company](),
	}
}

func (s *InMemoryCompanyStore) Create(ctx context.Context, c *company.Company) error {
	if c == nil {
		return ierr.NewError("company cannot be nil").Mark(ierr.ErrValidation)
	}
	if _, err := s.GetByTenant(ctx, c.TenantID); err == nil {
		return ierr.NewError("company already exists").
			WithHint("company already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, c.ID, c)
}

func (s *InMemoryCompanyStore) GetByID(ctx context.Context, id string) (*company.Company, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryCompanyStore) GetByTenant(ctx context.Context, tenantID string) (*company.Company, error) {
	c, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, c *company.Company) bool {
		return c.TenantID == tenantID
	})
	if !ok {
		return nil, ierr.NewError("company not found").
			WithHint("company not found").
			Mark(ierr.ErrNotFound)
	}
	return c, nil
}

func (s *InMemoryCompanyStore) Update(ctx context.Context, c *company.Company) error {
	updated := *c
	updated.UpdatedAt = time.Now().UTC()
	return s.InMemoryStore.Update(ctx, c.ID, &updated)
}
