package testutil

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/subscription"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemorySubscriptionStore struct {
	*InMemoryStore[*subscription.Subscription]
}

func NewInMemorySubscriptionStore() *InMemorySubscriptionStore {
	return &InMemorySubscriptionStore{
		InMemoryStore: NewInMemoryStore[*subscription.Subscription](),
	}
}

func (s *InMemorySubscriptionStore) Create(ctx context.Context, sub *subscription.Subscription) error {
	if sub == nil {
		return ierr.NewError("subscription cannot be nil").Mark(ierr.ErrValidation)
	}
	if _, err := s.GetByTenant(ctx, sub.TenantID); err == nil {
		return ierr.NewError("subscription already exists").
			WithHint("subscription already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, sub.ID, sub)
}

func (s *InMemorySubscriptionStore) GetByTenant(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	sub, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, sub *subscription.Subscription) bool {
		return sub.TenantID == tenantID
	})
	if !ok {
		return nil, ierr.NewError("subscription not found").
			WithHint("subscription not found").
			Mark(ierr.ErrNotFound)
	}
	return sub, nil
}
