package dto

import (
	"github.com/invoiceai/invoiceai/internal/domain/plan"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
)

type PlanResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Tier         types.PlanTier `json:"tier"`
	InvoiceLimit int            `json:"invoiceLimit"`
	Price        string         `json:"price"`
	Features     []string       `json:"features"`
}

func NewPlanResponse(p *plan.Plan) *PlanResponse {
	features := []string(p.Features)
	if features == nil {
		features = []string{}
	}
	return &PlanResponse{
		ID:           p.ID,
		Name:         p.Name,
		Tier:         p.Tier,
		InvoiceLimit: p.InvoiceLimit,
		Price:        p.Price.StringFixed(2),
		Features:     features,
	}
}

func NewPlanListResponse(plans []*plan.Plan) []*PlanResponse {
	return lo.Map(plans, func(p *plan.Plan, _ int) *PlanResponse {
		return NewPlanResponse(p)
	})
}
