package testutil

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemoryTenantStore struct {
	*InMemoryStore[*tenant.Tenant]
}

func NewInMemoryTenantStore() *InMemoryTenantStore {
	return &InMemoryTenantStore{
		InMemoryStore: NewInMemoryStore[*tenant.Tenant](),
	}
}

func (s *InMemoryTenantStore) Create(ctx context.Context, t *tenant.Tenant) error {
	if t == nil {
		return ierr.NewError("tenant cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, t.ID, t)
}

func (s *InMemoryTenantStore) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	t, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, tenant.NewTenantNotFoundError(id)
	}
	return t, nil
}

func (s *InMemoryTenantStore) List(ctx context.Context) ([]*tenant.Tenant, error) {
	return s.InMemoryStore.List(ctx, nil, func(a, b *tenant.Tenant) bool {
		return a.CreatedAt.After(b.CreatedAt)
	}), nil
}

// Lock only checks that the tenant exists; the store is already serialized
func (s *InMemoryTenantStore) Lock(ctx context.Context, id string) error {
	_, err := s.GetByID(ctx, id)
	return err
}
