package service

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/auth"
	"github.com/invoiceai/invoiceai/internal/cache"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

// TenantDirectory turns an authenticated principal into the tenant scope
// every tenant-bound operation runs under.
type TenantDirectory interface {
	Resolve(ctx context.Context, principal auth.Principal) (types.TenantScope, error)
	// InvalidateUser drops the cached record so the next Resolve reloads it
	InvalidateUser(ctx context.Context, userID string)
}

type tenantDirectory struct {
	ServiceParams
}

func NewTenantDirectory(params ServiceParams) TenantDirectory {
	return &tenantDirectory{
		ServiceParams: params,
	}
}

func (d *tenantDirectory) Resolve(ctx context.Context, principal auth.Principal) (types.TenantScope, error) {
	if principal == nil || principal.Subject() == "" {
		return types.TenantScope{}, ierr.NewError("no principal").
			WithHint("Not authenticated").
			Mark(ierr.ErrUnauthenticated)
	}

	u, err := d.loadUser(ctx, principal)
	if err != nil {
		return types.TenantScope{}, err
	}

	tenantID := u.GetTenantID()
	if tenantID == "" {
		return types.TenantScope{}, ierr.NewError("user has no tenant").
			WithHint("No tenant associated with user").
			WithReportableDetails(map[string]any{"user_id": u.ID}).
			Mark(ierr.ErrNoTenant)
	}

	return types.TenantScope{
		TenantID: tenantID,
		UserID:   u.ID,
		Role:     u.Role,
	}, nil
}

func (d *tenantDirectory) InvalidateUser(ctx context.Context, userID string) {
	d.Cache.Delete(ctx, cache.GenerateKey(cache.PrefixUser, userID))
}

func (d *tenantDirectory) loadUser(ctx context.Context, principal auth.Principal) (*user.User, error) {
	key := cache.GenerateKey(cache.PrefixUser, principal.Subject())
	if cached, found := d.Cache.Get(ctx, key); found {
		if u, ok := cached.(*user.User); ok {
			return u, nil
		}
	}

	u, err := d.UserRepo.GetByID(ctx, principal.Subject())
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		u, err = d.provisionUnknown(ctx, principal)
		if err != nil {
			return nil, err
		}
	}

	d.Cache.Set(ctx, key, u, cache.ExpiryDefaultInMemory)
	return u, nil
}

// provisionUnknown handles a principal with no user record. Hosted sessions
// are provisioned on first sight; our own email sessions must have a record.
func (d *tenantDirectory) provisionUnknown(ctx context.Context, principal auth.Principal) (*user.User, error) {
	switch p := principal.(type) {
	case *auth.HostedSession:
		// an earlier login may have created the user under another id
		if existing, err := d.UserRepo.GetByEmail(ctx, p.Email); err == nil {
			return existing, nil
		} else if !ierr.IsNotFound(err) {
			return nil, err
		}
		return provisionUser(ctx, d.ServiceParams, provisionUserParams{
			UserID:          p.UserID,
			Email:           p.Email,
			FirstName:       p.FirstName,
			LastName:        p.LastName,
			ProfileImageURL: p.ProfileImageURL,
		})
	default:
		return nil, ierr.NewError("user not found for session").
			WithHint("Not authenticated").
			WithReportableDetails(map[string]any{"user_id": principal.Subject()}).
			Mark(ierr.ErrUnauthenticated)
	}
}
