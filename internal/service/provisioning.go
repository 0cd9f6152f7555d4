package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/domain/subscription"
	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
)

// provisionUserParams describes a user seen for the first time.
// UserID is kept when the identity provider already assigned one.
type provisionUserParams struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
}

// provisionUser creates a tenant, the user, the tenant's company and a trial
// subscription to the free plan in one transaction.
func provisionUser(ctx context.Context, p ServiceParams, params provisionUserParams) (*user.User, error) {
	email := strings.ToLower(strings.TrimSpace(params.Email))
	if email == "" {
		return nil, ierr.NewError("cannot provision a user without an email").
			WithHint("Your account has no email address").
			Mark(ierr.ErrUnauthenticated)
	}

	role := types.UserRoleMember
	if p.Config.Auth.IsAdminEmail(email) {
		role = types.UserRoleAdmin
	}

	now := time.Now().UTC()
	u := user.NewUser(email, role)
	if params.UserID != "" {
		u.ID = params.UserID
	}
	u.FirstName = lo.EmptyableToPtr(strings.TrimSpace(params.FirstName))
	u.LastName = lo.EmptyableToPtr(strings.TrimSpace(params.LastName))
	u.ProfileImageURL = lo.EmptyableToPtr(strings.TrimSpace(params.ProfileImageURL))

	t := &tenant.Tenant{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:      fmt.Sprintf("%s's Company", u.DisplayName()),
		Shard:     tenant.DefaultShard,
		CreatedAt: now,
		UpdatedAt: now,
	}
	u.TenantID = lo.ToPtr(t.ID)

	err := p.DB.WithTx(ctx, func(ctx context.Context) error {
		if err := p.TenantRepo.Create(ctx, t); err != nil {
			return err
		}
		if err := p.UserRepo.Create(ctx, u); err != nil {
			return err
		}
		if err := p.CompanyRepo.Create(ctx, company.NewCompany(t.ID, t.Name)); err != nil {
			return err
		}

		freePlan, err := p.PlanRepo.GetByName(ctx, types.DefaultPlanName)
		if err != nil {
			if ierr.IsNotFound(err) {
				p.Logger.Warnw("free plan missing, tenant provisioned without subscription",
					"tenant_id", t.ID,
				)
				return nil
			}
			return err
		}
		return p.SubscriptionRepo.Create(ctx, subscription.NewTrial(t.ID, freePlan.ID, now))
	})
	if err != nil {
		return nil, err
	}

	if err := p.AuthProvider.AssignUserToTenant(ctx, u.ID, t.ID); err != nil {
		p.Logger.Errorw("failed to record tenant with identity provider",
			"user_id", u.ID,
			"tenant_id", t.ID,
			"error", err,
		)
	}

	p.Logger.Infow("provisioned new user",
		"user_id", u.ID,
		"tenant_id", t.ID,
		"role", role,
	)

	return u, nil
}
