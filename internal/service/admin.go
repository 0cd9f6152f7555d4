package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
	"github.com/sourcegraph/conc/pool"
)

// adminFanOut bounds the per-tenant lookups of the admin views
const adminFanOut = 8

type AdminService interface {
	ListTenantMetrics(ctx context.Context, scope types.TenantScope) ([]*dto.TenantMetricsResponse, error)
	ListActivity(ctx context.Context, scope types.TenantScope, filter *types.ActivityFilter) ([]*dto.ActivityFeedEntry, error)
	ListUsers(ctx context.Context, scope types.TenantScope) ([]*dto.UserResponse, error)
	UpdateUser(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
}

type adminService struct {
	ServiceParams
	directory TenantDirectory
	activity  ActivityService
}

func NewAdminService(params ServiceParams, directory TenantDirectory, activity ActivityService) AdminService {
	return &adminService{
		ServiceParams: params,
		directory:     directory,
		activity:      activity,
	}
}

func requireAdmin(scope types.TenantScope) error {
	if !scope.IsAdmin() {
		return ierr.NewError("admin role required").
			WithHint("Admin access required").
			Mark(ierr.ErrPermissionDenied)
	}
	return nil
}

func (s *adminService) ListTenantMetrics(ctx context.Context, scope types.TenantScope) ([]*dto.TenantMetricsResponse, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}

	tenants, err := s.TenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	metrics := make([]*dto.TenantMetricsResponse, len(tenants))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(adminFanOut)
	for i, t := range tenants {
		p.Go(func(ctx context.Context) error {
			m, err := s.tenantMetrics(ctx, t)
			if err != nil {
				return err
			}
			metrics[i] = m
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return metrics, nil
}

func (s *adminService) tenantMetrics(ctx context.Context, t *tenant.Tenant) (*dto.TenantMetricsResponse, error) {
	m := &dto.TenantMetricsResponse{
		TenantID:     t.ID,
		TenantName:   t.Name,
		PlanName:     types.DefaultPlanName,
		InvoiceLimit: types.DefaultInvoiceLimit,
	}

	userCount, err := s.UserRepo.CountByTenant(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	m.UserCount = userCount

	invoiceCount, err := s.InvoiceRepo.CountByTenant(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	m.InvoiceCount = invoiceCount

	sub, err := s.SubscriptionRepo.GetByTenant(ctx, t.ID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if sub != nil {
		pl, err := s.PlanRepo.GetByID(ctx, sub.PlanID)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
		if pl != nil {
			m.PlanName = pl.Name
			m.InvoiceLimit = pl.InvoiceLimit
		}
	}

	lastActive, err := s.ActivityRepo.LastActivityAt(ctx, t.ID)
	if err != nil {
		return nil, err
	}
	if lastActive == nil {
		lastActive = &t.UpdatedAt
	}
	m.LastActive = lo.ToPtr(lastActive.UTC().Format(time.RFC3339))

	return m, nil
}

func (s *adminService) ListActivity(ctx context.Context, scope types.TenantScope, filter *types.ActivityFilter) ([]*dto.ActivityFeedEntry, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if filter == nil {
		filter = &types.ActivityFilter{}
	}

	tenants, err := s.TenantRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	perTenant := make([][]*activity.ActivityLog, len(tenants))
	p := pool.New().WithErrors().WithContext(ctx).WithMaxGoroutines(adminFanOut)
	for i, t := range tenants {
		p.Go(func(ctx context.Context) error {
			logs, err := s.ActivityRepo.ListByTenant(ctx, t.ID, strings.TrimSpace(filter.Action), types.ActivityFeedLimitPerTenant)
			if err != nil {
				return err
			}
			perTenant[i] = logs
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	emails := lo.SliceToMap(users, func(u *user.User) (string, string) {
		return u.ID, u.Email
	})
	names := lo.SliceToMap(tenants, func(t *tenant.Tenant) (string, string) {
		return t.ID, t.Name
	})

	logs := lo.Flatten(perTenant)
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	entries := make([]*dto.ActivityFeedEntry, 0, len(logs))
	for _, log := range logs {
		entry := dto.NewActivityFeedEntry(log)
		if log.UserID != nil {
			if email, ok := emails[*log.UserID]; ok {
				entry.User = &dto.ActivityUserRef{Email: email}
			}
		}
		if name, ok := names[log.TenantID]; ok {
			entry.Tenant = &dto.ActivityTenantRef{Name: name}
		}
		if search != "" && !activityMatches(entry, search) {
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// activityMatches checks the lower-cased term against action, entity type,
// user email and tenant name
func activityMatches(entry *dto.ActivityFeedEntry, term string) bool {
	fields := []string{string(entry.Action)}
	if entry.EntityType != nil {
		fields = append(fields, string(*entry.EntityType))
	}
	if entry.User != nil {
		fields = append(fields, entry.User.Email)
	}
	if entry.Tenant != nil {
		fields = append(fields, entry.Tenant.Name)
	}
	return lo.SomeBy(fields, func(f string) bool {
		return strings.Contains(strings.ToLower(f), term)
	})
}

func (s *adminService) ListUsers(ctx context.Context, scope types.TenantScope) ([]*dto.UserResponse, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}

	users, err := s.UserRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *user.User, _ int) *dto.UserResponse {
		return dto.NewUserResponse(u)
	}), nil
}

func (s *adminService) UpdateUser(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(scope); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.TenantID == nil && req.Role == nil {
		return nil, ierr.NewError("nothing to update").
			WithHint("Provide a tenantId or role to update").
			WithValidationErrors([]string{"tenantId: or role is required"}).
			Mark(ierr.ErrValidation)
	}

	if req.TenantID != nil {
		if _, err := s.TenantRepo.GetByID(ctx, *req.TenantID); err != nil {
			if ierr.IsNotFound(err) {
				return nil, tenant.NewTenantNotFoundError(*req.TenantID)
			}
			return nil, err
		}
	}

	updated, err := s.UserRepo.Update(ctx, id, &user.UserUpdate{
		TenantID: req.TenantID,
		Role:     req.Role,
	})
	if err != nil {
		return nil, err
	}

	s.directory.InvalidateUser(ctx, updated.ID)

	if req.TenantID != nil {
		if err := s.AuthProvider.AssignUserToTenant(ctx, updated.ID, *req.TenantID); err != nil {
			s.Logger.Errorw("failed to record tenant with identity provider",
				"user_id", updated.ID,
				"tenant_id", *req.TenantID,
				"error", err,
			)
		}
	}

	if err := s.activity.Record(ctx, scope, RecordActivityParams{
		Action:     types.ActivityUserUpdated,
		EntityType: types.EntityTypeUser,
		EntityID:   updated.ID,
		Metadata: map[string]any{
			"tenantId": updated.GetTenantID(),
			"role":     updated.Role,
		},
	}); err != nil {
		s.Logger.Warnw("user update not recorded", "user_id", updated.ID, "error", err)
	}

	s.Logger.Infow("user updated by admin",
		"admin_id", scope.UserID,
		"user_id", updated.ID,
		"tenant_id", updated.GetTenantID(),
		"role", updated.Role,
	)

	return dto.NewUserResponse(updated), nil
}
