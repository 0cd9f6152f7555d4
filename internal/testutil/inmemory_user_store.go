package testutil

import (
	"context"
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/user"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemoryUserStore struct {
	*InMemoryStore[*user.User]
}

func NewInMemoryUserStore() *InMemoryUserStore {
	return &InMemoryUserStore{
		InMemoryStore: NewInMemoryStore[*user.User](),
	}
}

func (s *InMemoryUserStore) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return ierr.NewError("user cannot be nil").Mark(ierr.ErrValidation)
	}
	if _, err := s.GetByEmail(ctx, u.Email); err == nil {
		return ierr.NewError("user already exists").
			WithHint("user already exists").
			Mark(ierr.ErrAlreadyExists)
	}
	return s.InMemoryStore.Create(ctx, u.ID, u)
}

func (s *InMemoryUserStore) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.InMemoryStore.Get(ctx, id)
}

func (s *InMemoryUserStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	email = strings.TrimSpace(email)
	u, ok := s.InMemoryStore.Find(ctx, func(_ context.Context, u *user.User) bool {
		return strings.EqualFold(u.Email, email)
	})
	if !ok {
		return nil, ierr.NewError("user not found").
			WithHint("user not found").
			Mark(ierr.ErrNotFound)
	}
	return u, nil
}

func (s *InMemoryUserStore) List(ctx context.Context) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, nil, newestUserFirst), nil
}

func (s *InMemoryUserStore) ListByTenant(ctx context.Context, tenantID string) ([]*user.User, error) {
	return s.InMemoryStore.List(ctx, userInTenant(tenantID), newestUserFirst), nil
}

func (s *InMemoryUserStore) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	return s.InMemoryStore.Count(ctx, userInTenant(tenantID)), nil
}

func (s *InMemoryUserStore) Update(ctx context.Context, id string, update *user.UserUpdate) (*user.User, error) {
	existing, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updated := *existing
	if update.TenantID != nil {
		tenantID := *update.TenantID
		updated.TenantID = &tenantID
	}
	if update.Role != nil {
		updated.Role = *update.Role
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := s.InMemoryStore.Update(ctx, id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func userInTenant(tenantID string) FilterFunc[*user.User] {
	return func(_ context.Context, u *user.User) bool {
		return u.GetTenantID() == tenantID
	}
}

func newestUserFirst(a, b *user.User) bool {
	return a.CreatedAt.After(b.CreatedAt)
}
