package service

import (
	"testing"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/suite"
)

type DashboardServiceSuite struct {
	testutil.BaseServiceTestSuite
	service DashboardService
	scope   types.TenantScope
}

func TestDashboardService(t *testing.T) {
	suite.Run(t, new(DashboardServiceSuite))
}

func (s *DashboardServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewDashboardService(newTestServiceParams(&s.BaseServiceTestSuite))
	s.scope = s.CreateTenantWithUser("Acme's Company", "owner@acme.test", types.UserRoleMember)
}

func (s *DashboardServiceSuite) setStatus(inv *invoice.Invoice, status types.InvoiceStatus) {
	_, err := s.GetStores().InvoiceRepo.Update(s.GetContext(), inv.ID, invoice.StatusTransition(inv, status, time.Now().UTC()))
	s.Require().NoError(err)
}

func (s *DashboardServiceSuite) TestEmptyTenant() {
	stats, err := s.service.GetStats(s.GetContext(), s.scope)
	s.Require().NoError(err)
	s.Equal(0, stats.TotalInvoices)
	s.Equal(0, stats.SentInvoices)
	s.Equal(0, stats.PaidInvoices)
	s.Equal("£0.00", stats.TotalRevenue)
}

func (s *DashboardServiceSuite) TestGetStats() {
	seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0001", "Acme Ltd", nil)
	sent := seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0002", "Globex", nil)
	paidA := seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0003", "Initech", nil)
	paidB := seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0004", "Umbrella", nil)
	cancelled := seedInvoice(&s.BaseServiceTestSuite, s.scope, "INV-0005", "Hooli", nil)

	s.setStatus(sent, types.InvoiceStatusSent)
	s.setStatus(paidA, types.InvoiceStatusPaid)
	s.setStatus(paidB, types.InvoiceStatusPaid)
	s.setStatus(cancelled, types.InvoiceStatusCancelled)

	// another tenant's invoices are not counted
	other := s.CreateTenantWithUser("Other's Company", "owner@other.test", types.UserRoleMember)
	otherPaid := seedInvoice(&s.BaseServiceTestSuite, other, "INV-0001", "Acme Ltd", nil)
	s.setStatus(otherPaid, types.InvoiceStatusPaid)

	stats, err := s.service.GetStats(s.GetContext(), s.scope)
	s.Require().NoError(err)
	s.Equal(5, stats.TotalInvoices)
	s.Equal(3, stats.SentInvoices)
	s.Equal(2, stats.PaidInvoices)
	s.Equal("£1200.00", stats.TotalRevenue)
}
