package auth

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/types"
)

// TokenRequest carries the claims of a token issued after email login
type TokenRequest struct {
	UserID   string
	Email    string
	TenantID string
}

// TokenResponse is a freshly issued session token
type TokenResponse struct {
	Token     string
	ExpiresAt time.Time
}

type Provider interface {
	GetProvider() types.AuthProvider
	// ValidateToken verifies a bearer token and returns the session it encodes
	ValidateToken(ctx context.Context, token string) (Principal, error)
	// IssueToken signs a session for an email login. Hosted providers issue
	// their own sessions and return ErrInvalidOperation.
	IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error)
	// AssignUserToTenant records the tenant on the provider side, if the
	// provider keeps one.
	AssignUserToTenant(ctx context.Context, userID string, tenantID string) error
}

func NewProvider(cfg *config.Configuration, log *logger.Logger) Provider {
	switch cfg.Auth.Provider {
	case types.AuthProviderSupabase:
		return NewSupabaseAuth(cfg, log)
	default:
		return NewEmailAuth(cfg)
	}
}
