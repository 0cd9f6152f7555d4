package service

import (
	"testing"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

type PlanServiceSuite struct {
	testutil.BaseServiceTestSuite
	service PlanService
}

func TestPlanService(t *testing.T) {
	suite.Run(t, new(PlanServiceSuite))
}

func (s *PlanServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.service = NewPlanService(newTestServiceParams(&s.BaseServiceTestSuite))
}

func (s *PlanServiceSuite) TestSeedPlansIsIdempotent() {
	s.Require().NoError(s.service.SeedPlans(s.GetContext()))
	first, err := s.service.ListPlans(s.GetContext())
	s.Require().NoError(err)

	s.Require().NoError(s.service.SeedPlans(s.GetContext()))
	second, err := s.service.ListPlans(s.GetContext())
	s.Require().NoError(err)

	s.Len(second, 4)
	ids := func(plans []*dto.PlanResponse) []string {
		return lo.Map(plans, func(p *dto.PlanResponse, _ int) string { return p.ID })
	}
	s.Equal(ids(first), ids(second))
}

func (s *PlanServiceSuite) TestListPlans() {
	s.Require().NoError(s.service.SeedPlans(s.GetContext()))

	plans, err := s.service.ListPlans(s.GetContext())
	s.Require().NoError(err)

	names := lo.Map(plans, func(p *dto.PlanResponse, _ int) string { return p.Name })
	s.Equal([]string{"Free", "Starter", "Professional", "Enterprise"}, names)
	s.Equal("0.00", plans[0].Price)
	s.Equal(5, plans[0].InvoiceLimit)
	s.Equal("99.00", plans[3].Price)
	s.Contains(plans[3].Features, "Unlimited invoices")
}
