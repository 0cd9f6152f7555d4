package tenant

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, tenant *Tenant) error
	GetByID(ctx context.Context, id string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	// Lock takes a row lock on the tenant for the rest of the current
	// transaction. It serializes per-tenant sequences such as invoice numbers.
	Lock(ctx context.Context, id string) error
}
