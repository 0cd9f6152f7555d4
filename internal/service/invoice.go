package service

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

type InvoiceService interface {
	ListInvoices(ctx context.Context, scope types.TenantScope, filter *types.InvoiceFilter) ([]*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, scope types.TenantScope, id string) (*dto.InvoiceDetailResponse, error)
}

type invoiceService struct {
	ServiceParams
}

func NewInvoiceService(params ServiceParams) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
	}
}

func (s *invoiceService) ListInvoices(ctx context.Context, scope types.TenantScope, filter *types.InvoiceFilter) ([]*dto.InvoiceResponse, error) {
	if filter == nil {
		filter = &types.InvoiceFilter{}
	}
	if status := filter.StatusFilter(); status != "" {
		if err := status.Validate(); err != nil {
			return nil, err
		}
	}

	invoices, err := s.InvoiceRepo.List(ctx, scope.TenantID, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceListResponse(invoices), nil
}

func (s *invoiceService) GetInvoice(ctx context.Context, scope types.TenantScope, id string) (*dto.InvoiceDetailResponse, error) {
	inv, err := getOwnedInvoice(ctx, s.InvoiceRepo, scope, id)
	if err != nil {
		return nil, err
	}

	items, err := s.InvoiceRepo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	return &dto.InvoiceDetailResponse{
		InvoiceResponse: dto.NewInvoiceResponse(inv),
		Items:           dto.NewInvoiceItemResponses(items),
	}, nil
}

// getOwnedInvoice loads an invoice and checks it belongs to the scope's tenant
func getOwnedInvoice(ctx context.Context, repo invoice.Repository, scope types.TenantScope, id string) (*invoice.Invoice, error) {
	inv, err := repo.Get(ctx, id)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, invoice.NewInvoiceNotFoundError(id)
		}
		return nil, err
	}
	if !scope.Owns(inv.TenantID) {
		return nil, invoice.NewInvoiceForbiddenError(id)
	}
	return inv, nil
}
