package service

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

type CompanyService interface {
	GetCurrentCompany(ctx context.Context, scope types.TenantScope) (*dto.CompanyResponse, error)
	CreateCompany(ctx context.Context, scope types.TenantScope, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
}

type companyService struct {
	ServiceParams
	activity ActivityService
}

func NewCompanyService(params ServiceParams, activity ActivityService) CompanyService {
	return &companyService{
		ServiceParams: params,
		activity:      activity,
	}
}

func (s *companyService) GetCurrentCompany(ctx context.Context, scope types.TenantScope) (*dto.CompanyResponse, error) {
	c, err := s.CompanyRepo.GetByTenant(ctx, scope.TenantID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Company not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	return dto.NewCompanyResponse(c), nil
}

func (s *companyService) CreateCompany(ctx context.Context, scope types.TenantScope, req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.CompanyRepo.GetByTenant(ctx, scope.TenantID)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewError("company already exists for tenant").
			WithHint("Company already exists").
			WithReportableDetails(map[string]any{"company_id": existing.ID}).
			Mark(ierr.ErrInvalidOperation)
	}

	c := req.ToCompany(scope.TenantID)
	if err := s.CompanyRepo.Create(ctx, c); err != nil {
		// lost a race with a concurrent create
		if ierr.IsAlreadyExists(err) {
			s.Logger.Warnw("concurrent company create", "tenant_id", scope.TenantID, "error", err)
			return nil, ierr.NewError("company already exists for tenant").
				WithHint("Company already exists").
				Mark(ierr.ErrInvalidOperation)
		}
		return nil, err
	}

	if err := s.activity.Record(ctx, scope, RecordActivityParams{
		Action:     types.ActivityCompanyCreated,
		EntityType: types.EntityTypeCompany,
		EntityID:   c.ID,
	}); err != nil {
		s.Logger.Warnw("company creation not recorded", "company_id", c.ID, "error", err)
	}

	return dto.NewCompanyResponse(c), nil
}

func (s *companyService) UpdateCompany(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	c, err := s.CompanyRepo.GetByID(ctx, id)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("Company not found").
				Mark(ierr.ErrNotFound)
		}
		return nil, err
	}
	if !scope.Owns(c.TenantID) {
		return nil, ierr.NewError("company belongs to another tenant").
			WithHint("You do not have access to this company").
			WithReportableDetails(map[string]any{"company_id": id}).
			Mark(ierr.ErrForbidden)
	}

	req.ToUpdate().Apply(c)
	c.UpdatedAt = time.Now().UTC()
	if err := s.CompanyRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if err := s.activity.Record(ctx, scope, RecordActivityParams{
		Action:     types.ActivityCompanyUpdated,
		EntityType: types.EntityTypeCompany,
		EntityID:   c.ID,
	}); err != nil {
		return nil, err
	}

	return dto.NewCompanyResponse(c), nil
}
