package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/nedpals/supabase-go"
)

type supabaseAuth struct {
	AuthConfig config.AuthConfig
	client     *supabase.Client
	logger     *logger.Logger
}

func NewSupabaseAuth(cfg *config.Configuration, log *logger.Logger) Provider {
	client := supabase.CreateClient(cfg.Auth.Supabase.BaseURL, cfg.Auth.Supabase.ServiceKey)
	if client == nil {
		log.Fatalf("failed to create Supabase client")
	}

	return &supabaseAuth{
		AuthConfig: cfg.Auth,
		client:     client,
		logger:     log,
	}
}

func (s *supabaseAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}

func (s *supabaseAuth) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	return nil, ierr.NewError("email login is disabled").
		WithHint("Sign in through the hosted login page").
		Mark(ierr.ErrInvalidOperation)
}

func (s *supabaseAuth) ValidateToken(ctx context.Context, token string) (Principal, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired session").
			Mark(ierr.ErrUnauthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid or expired session").
			Mark(ierr.ErrUnauthenticated)
	}

	return hostedSessionFromClaims(claims)
}

func hostedSessionFromClaims(claims jwt.MapClaims) (*HostedSession, error) {
	userID, ok := claims["sub"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Invalid or expired session").
			Mark(ierr.ErrUnauthenticated)
	}

	session := &HostedSession{UserID: userID}
	session.Email, _ = claims["email"].(string)

	if appMetadata, ok := claims["app_metadata"].(map[string]interface{}); ok {
		session.TenantID, _ = appMetadata["tenant_id"].(string)
	}

	if userMetadata, ok := claims["user_metadata"].(map[string]interface{}); ok {
		session.FirstName, _ = userMetadata["first_name"].(string)
		session.LastName, _ = userMetadata["last_name"].(string)
		session.ProfileImageURL, _ = userMetadata["avatar_url"].(string)
	}

	return session, nil
}

func (s *supabaseAuth) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	params := supabase.AdminUserParams{
		AppMetadata: map[string]interface{}{
			"tenant_id": tenantID,
		},
	}

	if _, err := s.client.Admin.UpdateUser(ctx, userID, params); err != nil {
		return ierr.WithError(err).
			WithHint("Failed to assign tenant to user").
			Mark(ierr.ErrHTTPClient)
	}

	s.logger.Debugw("assigned tenant to user",
		"user_id", userID,
		"tenant_id", tenantID,
	)

	return nil
}
