package service

import (
	"testing"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type InvoiceServiceSuite struct {
	testutil.BaseServiceTestSuite
	service InvoiceService
	scope   types.TenantScope
	other   types.TenantScope
}

func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceSuite))
}

func (s *InvoiceServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewInvoiceService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.scope = s.CreateTenantWithUser("Acme's Company", "owner@acme.test", types.UserRoleMember)
	s.other = s.CreateTenantWithUser("Other's Company", "owner@other.test", types.UserRoleMember)
}

func (s *InvoiceServiceSuite) TestListInvoices() {
	base := time.Now().UTC().Add(-time.Hour)
	seedInvoiceAt(&s.BaseServiceTestSuite, s.scope, "INV-0001", "ACME Ltd", nil, base)
	paid := seedInvoiceAt(&s.BaseServiceTestSuite, s.scope, "INV-0002", "Globex", nil, base.Add(10*time.Minute))
	seedInvoiceAt(&s.BaseServiceTestSuite, s.scope, "INV-0003", "Acme Holdings", nil, base.Add(20*time.Minute))
	seedInvoice(&s.BaseServiceTestSuite, s.other, "INV-0001", "ACME Ltd", nil)

	_, err := s.GetStores().InvoiceRepo.Update(s.GetContext(), paid.ID,
		invoice.StatusTransition(paid, types.InvoiceStatusPaid, time.Now().UTC()))
	s.Require().NoError(err)

	testCases := []struct {
		name     string
		filter   *types.InvoiceFilter
		expected []string
		wantErr  error
	}{
		{name: "no_filter", filter: nil, expected: []string{"INV-0003", "INV-0002", "INV-0001"}},
		{name: "all", filter: &types.InvoiceFilter{Status: types.InvoiceStatusAll}, expected: []string{"INV-0003", "INV-0002", "INV-0001"}},
		{name: "draft", filter: &types.InvoiceFilter{Status: types.InvoiceStatusDraft}, expected: []string{"INV-0003", "INV-0001"}},
		{name: "paid", filter: &types.InvoiceFilter{Status: types.InvoiceStatusPaid}, expected: []string{"INV-0002"}},
		{name: "search_case_insensitive", filter: &types.InvoiceFilter{Search: "acme"}, expected: []string{"INV-0003", "INV-0001"}},
		{name: "search_no_match", filter: &types.InvoiceFilter{Search: "Initech"}, expected: []string{}},
		{name: "invalid_status", filter: &types.InvoiceFilter{Status: "unknown"}, wantErr: ierr.ErrValidation},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			resp, err := s.service.ListInvoices(s.GetContext(), s.scope, tc.filter)
			if tc.wantErr != nil {
				s.True(ierr.Is(err, tc.wantErr))
				return
			}
			s.Require().NoError(err)
			numbers := make([]string, 0, len(resp))
			for _, inv := range resp {
				s.Equal(s.scope.TenantID, inv.TenantID)
				numbers = append(numbers, inv.InvoiceNumber)
			}
			s.Equal(tc.expected, numbers)
		})
	}
}

func (s *InvoiceServiceSuite) TestGetInvoice() {
	inv := seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0001", "ACME Ltd", lo.ToPtr("billing@acme.test"))

	resp, err := s.service.GetInvoice(s.GetContext(), s.scope, inv.ID)
	s.Require().NoError(err)
	s.Equal("INV-0001", resp.InvoiceNumber)
	s.Equal("600.00", resp.Total)
	s.Require().Len(resp.Items, 1)
	s.Equal("Web design", resp.Items[0].Description)

	_, err = s.service.GetInvoice(s.GetContext(), s.other, inv.ID)
	s.True(ierr.IsForbidden(err))

	_, err = s.service.GetInvoice(s.GetContext(), s.scope, "inv_missing")
	s.True(ierr.IsNotFound(err))
}
