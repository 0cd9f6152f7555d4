package plan

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Plan is read-only reference data describing a tier's limits
type Plan struct {
	ID           string          `db:"id" json:"id"`
	Name         string          `db:"name" json:"name"`
	Tier         types.PlanTier  `db:"tier" json:"tier"`
	InvoiceLimit int             `db:"invoice_limit" json:"invoiceLimit"`
	Price        decimal.Decimal `db:"price" json:"price"`
	Features     pq.StringArray  `db:"features" json:"features"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updatedAt"`
}

// DefaultPlans is the catalog seeded at startup
func DefaultPlans() []*Plan {
	return []*Plan{
		{
			Name:         "Free",
			Tier:         types.PlanTierFree,
			InvoiceLimit: 5,
			Price:        decimal.Zero,
			Features:     pq.StringArray{"5 invoices per month", "AI invoice generation", "Email delivery"},
		},
		{
			Name:         "Starter",
			Tier:         types.PlanTierStarter,
			InvoiceLimit: 50,
			Price:        decimal.NewFromInt(9),
			Features:     pq.StringArray{"50 invoices per month", "AI invoice generation", "Email delivery", "Custom branding"},
		},
		{
			Name:         "Professional",
			Tier:         types.PlanTierProfessional,
			InvoiceLimit: 100,
			Price:        decimal.NewFromInt(29),
			Features:     pq.StringArray{"100 invoices per month", "AI invoice generation", "Email delivery", "Custom branding", "Priority support"},
		},
		{
			Name:         "Enterprise",
			Tier:         types.PlanTierEnterprise,
			InvoiceLimit: 999999,
			Price:        decimal.NewFromInt(99),
			Features:     pq.StringArray{"Unlimited invoices", "AI invoice generation", "Email delivery", "Custom branding", "Priority support", "Dedicated account manager"},
		},
	}
}
