package service

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/types"
)

type DashboardService interface {
	GetStats(ctx context.Context, scope types.TenantScope) (*dto.DashboardStatsResponse, error)
}

type dashboardService struct {
	ServiceParams
}

func NewDashboardService(params ServiceParams) DashboardService {
	return &dashboardService{
		ServiceParams: params,
	}
}

func (s *dashboardService) GetStats(ctx context.Context, scope types.TenantScope) (*dto.DashboardStatsResponse, error) {
	counts, err := s.InvoiceRepo.CountByTenantAndStatus(ctx, scope.TenantID)
	if err != nil {
		return nil, err
	}

	revenue, err := s.InvoiceRepo.SumTotalByTenantAndStatus(ctx, scope.TenantID, types.InvoiceStatusPaid)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	paid := counts[types.InvoiceStatusPaid]

	return &dto.DashboardStatsResponse{
		TotalInvoices: total,
		SentInvoices:  counts[types.InvoiceStatusSent] + paid,
		PaidInvoices:  paid,
		// revenue is reported in the default currency regardless of invoice currency
		TotalRevenue: types.FormatAmount(types.DefaultCurrency, revenue),
	}, nil
}
