package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

const defaultTokenTTL = 7 * 24 * time.Hour

type emailAuth struct {
	AuthConfig config.AuthConfig
	now        func() time.Time
}

func NewEmailAuth(cfg *config.Configuration) *emailAuth {
	return &emailAuth{
		AuthConfig: cfg.Auth,
		now:        time.Now,
	}
}

func (e *emailAuth) GetProvider() types.AuthProvider {
	return types.AuthProviderEmail
}

func (e *emailAuth) IssueToken(ctx context.Context, req TokenRequest) (*TokenResponse, error) {
	if req.UserID == "" {
		return nil, ierr.NewError("user id is required").
			WithHint("Cannot issue a session without a user").
			Mark(ierr.ErrValidation)
	}

	ttl := e.AuthConfig.TokenTTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := e.now()
	expiration := now.Add(ttl)

	claims := jwt.MapClaims{
		"user_id":   req.UserID,
		"email":     req.Email,
		"tenant_id": req.TenantID,
		"exp":       expiration.Unix(),
		"iat":       now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(e.AuthConfig.Secret))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &TokenResponse{Token: signed, ExpiresAt: expiration}, nil
}

func (e *emailAuth) ValidateToken(ctx context.Context, token string) (Principal, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(e.AuthConfig.Secret), nil
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

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Invalid or expired session").
			Mark(ierr.ErrUnauthenticated)
	}

	email, _ := claims["email"].(string)
	tenantID, _ := claims["tenant_id"].(string)

	return &EmailSession{UserID: userID, Email: email, TenantID: tenantID}, nil
}

// AssignUserToTenant is a no-op: the tenant lives in our users table and is
// read from there on every request.
func (e *emailAuth) AssignUserToTenant(ctx context.Context, userID string, tenantID string) error {
	return nil
}
