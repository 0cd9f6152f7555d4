package service

import (
	"testing"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/auth"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	testutil.BaseServiceTestSuite
	service AuthService
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}

func (s *AuthServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewAuthService(params, NewActivityService(params))
}

func (s *AuthServiceSuite) TestLogin() {
	resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "  New.User@Example.test "})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)
	s.NotEmpty(resp.ExpiresAt)
	s.Equal("new.user@example.test", resp.User.Email)
	s.Require().NotNil(resp.User.TenantID)

	principal, err := s.GetAuthProvider().ValidateToken(s.GetContext(), resp.Token)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, principal.Subject())

	// logging in again reuses the user
	again, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: "new.user@example.test"})
	s.Require().NoError(err)
	s.Equal(resp.User.ID, again.User.ID)

	logs, err := s.GetStores().ActivityRepo.ListByTenant(s.GetContext(), *resp.User.TenantID, string(types.ActivityUserLogin), 10)
	s.NoError(err)
	s.Len(logs, 2)
}

func (s *AuthServiceSuite) TestLoginInvalidEmail() {
	testCases := []struct {
		name  string
		email string
	}{
		{name: "empty", email: ""},
		{name: "not_an_email", email: "not-an-email"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.Login(s.GetContext(), &dto.LoginRequest{Email: tc.email})
			s.Nil(resp)
			s.True(ierr.IsValidation(err))
		})
	}
}

func (s *AuthServiceSuite) TestLoginDisabledForHostedProvider() {
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	params.AuthProvider = hostedOnlyProvider{Provider: params.AuthProvider}
	svc := NewAuthService(params, NewActivityService(params))

	_, err := svc.Login(s.GetContext(), &dto.LoginRequest{Email: "someone@example.test"})
	s.True(ierr.Is(err, ierr.ErrInvalidOperation))
}

func (s *AuthServiceSuite) TestMeAndLogout() {
	scope := s.CreateTenantWithUser("Acme's Company", "owner@acme.test", types.UserRoleMember)

	me, err := s.service.Me(s.GetContext(), scope)
	s.Require().NoError(err)
	s.Equal("owner@acme.test", me.User.Email)

	out, err := s.service.Logout(s.GetContext(), scope)
	s.Require().NoError(err)
	s.True(out.Success)

	logs, err := s.GetStores().ActivityRepo.ListByTenant(s.GetContext(), scope.TenantID, string(types.ActivityUserLogout), 10)
	s.NoError(err)
	s.Len(logs, 1)
}

// hostedOnlyProvider reports itself as the hosted provider
type hostedOnlyProvider struct {
	auth.Provider
}

func (hostedOnlyProvider) GetProvider() types.AuthProvider {
	return types.AuthProviderSupabase
}
