package service

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/auth"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

type AuthService interface {
	// Login finds or provisions the user for an email and issues a session token
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Me(ctx context.Context, scope types.TenantScope) (*dto.MeResponse, error)
	// Logout is stateless; it only records the action
	Logout(ctx context.Context, scope types.TenantScope) (*dto.SuccessResponse, error)
}

type authService struct {
	ServiceParams
	activity ActivityService
}

func NewAuthService(params ServiceParams, activity ActivityService) AuthService {
	return &authService{
		ServiceParams: params,
		activity:      activity,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.AuthProvider.GetProvider() != types.AuthProviderEmail {
		return nil, ierr.NewError("email login disabled").
			WithHint("Email login is not enabled").
			Mark(ierr.ErrInvalidOperation)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		u, err = provisionUser(ctx, s.ServiceParams, provisionUserParams{Email: req.Email})
		if err != nil {
			return nil, err
		}
	}

	token, err := s.AuthProvider.IssueToken(ctx, auth.TokenRequest{
		UserID:   u.ID,
		Email:    u.Email,
		TenantID: u.GetTenantID(),
	})
	if err != nil {
		return nil, err
	}

	s.recordUserActivity(ctx, u, types.ActivityUserLogin)

	return &dto.LoginResponse{
		Token:     token.Token,
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
		User:      dto.NewUserResponse(u),
	}, nil
}

func (s *authService) Me(ctx context.Context, scope types.TenantScope) (*dto.MeResponse, error) {
	u, err := s.UserRepo.GetByID(ctx, scope.UserID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{User: dto.NewUserResponse(u)}, nil
}

func (s *authService) Logout(ctx context.Context, scope types.TenantScope) (*dto.SuccessResponse, error) {
	if err := s.activity.Record(ctx, scope, RecordActivityParams{
		Action:     types.ActivityUserLogout,
		EntityType: types.EntityTypeUser,
		EntityID:   scope.UserID,
	}); err != nil {
		s.Logger.Warnw("logout not recorded", "user_id", scope.UserID, "error", err)
	}
	return &dto.SuccessResponse{Success: true}, nil
}

// recordUserActivity logs failures instead of returning them
func (s *authService) recordUserActivity(ctx context.Context, u *user.User, action types.ActivityAction) {
	tenantID := u.GetTenantID()
	if tenantID == "" {
		return
	}
	scope := types.TenantScope{TenantID: tenantID, UserID: u.ID, Role: u.Role}
	if err := s.activity.Record(ctx, scope, RecordActivityParams{
		Action:     action,
		EntityType: types.EntityTypeUser,
		EntityID:   u.ID,
	}); err != nil {
		s.Logger.Warnw("user activity not recorded", "user_id", u.ID, "action", action, "error", err)
	}
}
