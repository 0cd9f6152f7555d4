package auth

import (
	"context"
)

// Principal is the authenticated caller as reported by an auth provider.
// It is one of HostedSession or EmailSession; the tenant directory
// normalizes either into a types.TenantScope.
type Principal interface {
	// Subject is the user id the session belongs to
	Subject() string
	// EmailAddress is the verified email of the session, if known
	EmailAddress() string
	isPrincipal()
}

// HostedSession is a session issued by the hosted identity provider.
// Profile fields come from the token's user_metadata and are used when the
// user is seen for the first time.
type HostedSession struct {
	UserID          string
	Email           string
	FirstName       string
	LastName        string
	ProfileImageURL string
	// TenantID is the tenant recorded in app_metadata, empty before provisioning
	TenantID string
}

func (s *HostedSession) Subject() string      { return s.UserID }
func (s *HostedSession) EmailAddress() string { return s.Email }
func (*HostedSession) isPrincipal()           {}

// EmailSession is a session issued by our own email login.
type EmailSession struct {
	UserID   string
	Email    string
	TenantID string
}

func (s *EmailSession) Subject() string      { return s.UserID }
func (s *EmailSession) EmailAddress() string { return s.Email }
func (*EmailSession) isPrincipal()           {}

type principalKey struct{}

// WithPrincipal stores the authenticated principal on ctx
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFromContext returns the principal set by the auth middleware, or nil
func PrincipalFromContext(ctx context.Context) Principal {
	p, _ := ctx.Value(principalKey{}).(Principal)
	return p
}
