package user

import (
	"context"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*User, error)
	CountByTenant(ctx context.Context, tenantID string) (int, error)
	Update(ctx context.Context, id string, update *UserUpdate) (*User, error)
}
