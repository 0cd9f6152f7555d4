package testutil

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/plan"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemoryPlanStore struct {
	*InMemoryStore[*plan.Plan]
}

func NewInMemoryPlanStore() *InMemoryPlanStore {
	return &InMemoryPlanStore{
		InMemoryStore: NewInMemoryStore[*plan.Plan](),
	}
}

// Upsert keys plans by name, keeping the id of an existing row
func (s *InMemoryPlanStore) Upsert(ctx context.Context, p *plan.Plan) error {
	if p == nil {
		return ierr.NewError("plan cannot be nil").Mark(ierr.ErrValidation)
	}

	if existing, err := s.GetByName(ctx, p.Name); err == nil {
		updated := *p
		updated.ID = existing.ID
		updated.CreatedAt = existing.CreatedAt
		return s.InMemoryStore.Update(ctx, existing.ID, &updated)
	}
	return s.InMemoryStore.Create(ctx, p.ID, p)
}

func (s *InMemoryPlanStore) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryPlanStore) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	p, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, p *plan.Plan) bool {
		return p.Name == name
	})
	if !ok {
		return nil, ierr.NewError("plan not found").
			WithHintf("Plan %s was not found", name).
			Mark(ierr.ErrNotFound)
	}
	return p, nil
}

func (s *InMemoryPlanStore) List(ctx context.Context) ([]*plan.Plan, error) {
	return s.InMemoryStore.List(ctx, nil, func(a, b *plan.Plan) bool {
		return a.Price.LessThan(b.Price)
	}), nil
}
