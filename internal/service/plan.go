package service

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/plan"
	"github.com/invoiceai/invoiceai/internal/types"
)

type PlanService interface {
	// SeedPlans upserts the reference catalog by name
	SeedPlans(ctx context.Context) error
	ListPlans(ctx context.Context) ([]*dto.PlanResponse, error)
}

type planService struct {
	ServiceParams
}

func NewPlanService(params ServiceParams) PlanService {
	return &planService{
		ServiceParams: params,
	}
}

func (s *planService) SeedPlans(ctx context.Context) error {
	now := time.Now().UTC()
	for _, p := range plan.DefaultPlans() {
		// conflicting rows keep their stored id
		p.ID = types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PLAN)
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := s.PlanRepo.Upsert(ctx, p); err != nil {
			s.Logger.Errorw("failed to seed plan", "plan", p.Name, "error", err)
			return err
		}
	}
	s.Logger.Infow("plans seeded", "count", len(plan.DefaultPlans()))
	return nil
}

func (s *planService) ListPlans(ctx context.Context) ([]*dto.PlanResponse, error) {
	plans, err := s.PlanRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewPlanListResponse(plans), nil
}
