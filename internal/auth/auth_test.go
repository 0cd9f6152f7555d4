package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Configuration {
	cfg := config.GetDefaultConfig()
	cfg.Auth.Secret = "auth-test-secret"
	cfg.Auth.TokenTTL = time.Hour
	return cfg
}

func TestEmailAuthRoundTrip(t *testing.T) {
	provider := NewEmailAuth(testConfig())
	assert.Equal(t, types.AuthProviderEmail, provider.GetProvider())

	token, err := provider.IssueToken(context.Background(), TokenRequest{
		UserID:   "user_1",
		Email:    "owner@acme.test",
		TenantID: "tenant_1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	principal, err := provider.ValidateToken(context.Background(), token.Token)
	require.NoError(t, err)

	session, ok := principal.(*EmailSession)
	require.True(t, ok)
	assert.Equal(t, "user_1", session.Subject())
	assert.Equal(t, "owner@acme.test", session.EmailAddress())
	assert.Equal(t, "tenant_1", session.TenantID)
}

func TestEmailAuthIssueRequiresUser(t *testing.T) {
	_, err := NewEmailAuth(testConfig()).IssueToken(context.Background(), TokenRequest{Email: "a@b.test"})
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestEmailAuthRejects(t *testing.T) {
	cfg := testConfig()
	provider := NewEmailAuth(cfg)

	expired := NewEmailAuth(cfg)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expiredToken, err := expired.IssueToken(context.Background(), TokenRequest{UserID: "user_1"})
	require.NoError(t, err)

	otherCfg := testConfig()
	otherCfg.Auth.Secret = "another-secret"
	foreignToken, err := NewEmailAuth(otherCfg).IssueToken(context.Background(), TokenRequest{UserID: "user_1"})
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "owner@acme.test",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(cfg.Auth.Secret))
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-jwt"},
		{name: "expired", token: expiredToken.Token},
		{name: "wrong_secret", token: foreignToken.Token},
		{name: "missing_user_id", token: noSubject},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			principal, err := provider.ValidateToken(context.Background(), tc.token)
			assert.Nil(t, principal)
			require.Error(t, err)
			assert.True(t, ierr.IsUnauthenticated(err))
			assert.Equal(t, "Invalid or expired session", ierr.DisplayMessage(err))
		})
	}
}

func TestHostedSessionFromClaims(t *testing.T) {
	session, err := hostedSessionFromClaims(jwt.MapClaims{
		"sub":   "9b2f6c1e",
		"email": "jane@acme.test",
		"app_metadata": map[string]interface{}{
			"tenant_id": "tenant_1",
		},
		"user_metadata": map[string]interface{}{
			"first_name": "Jane",
			"last_name":  "Doe",
			"avatar_url": "https://cdn.acme.test/jane.png",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, &HostedSession{
		UserID:          "9b2f6c1e",
		Email:           "jane@acme.test",
		FirstName:       "Jane",
		LastName:        "Doe",
		ProfileImageURL: "https://cdn.acme.test/jane.png",
		TenantID:        "tenant_1",
	}, session)

	_, err = hostedSessionFromClaims(jwt.MapClaims{"email": "jane@acme.test"})
	require.Error(t, err)
	assert.True(t, ierr.IsUnauthenticated(err))
}

func TestPrincipalContext(t *testing.T) {
	assert.Nil(t, PrincipalFromContext(context.Background()))

	ctx := WithPrincipal(context.Background(), &HostedSession{UserID: "u1", Email: "u1@acme.test"})
	principal := PrincipalFromContext(ctx)
	require.NotNil(t, principal)
	assert.Equal(t, "u1", principal.Subject())
	assert.Equal(t, "u1@acme.test", principal.EmailAddress())
}
