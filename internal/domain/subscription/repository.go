package subscription

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, sub *Subscription) error
	// GetByTenant returns ErrNotFound when the tenant has no subscription
	GetByTenant(ctx context.Context, tenantID string) (*Subscription, error)
}
