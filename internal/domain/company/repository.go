package company

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, company *Company) error
	GetByID(ctx context.Context, id string) (*Company, error)
	// GetByTenant returns ErrNotFound when the tenant has no company yet
	GetByTenant(ctx context.Context, tenantID string) (*Company, error)
	Update(ctx context.Context, company *Company) error
}
