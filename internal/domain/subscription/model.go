package subscription

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
)

// Subscription ties a tenant to a plan. A tenant has at most one.
type Subscription struct {
	ID                 string                   `db:"id" json:"id"`
	TenantID           string                   `db:"tenant_id" json:"tenantId"`
	PlanID             string                   `db:"plan_id" json:"planId"`
	Status             types.SubscriptionStatus `db:"status" json:"status"`
	CurrentPeriodStart *time.Time               `db:"current_period_start" json:"currentPeriodStart,omitempty"`
	CurrentPeriodEnd   *time.Time               `db:"current_period_end" json:"currentPeriodEnd,omitempty"`
	CancelAtPeriodEnd  bool                     `db:"cancel_at_period_end" json:"cancelAtPeriodEnd"`
	CreatedAt          time.Time                `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time                `db:"updated_at" json:"updatedAt"`
}

// NewTrial starts a trial subscription for tenantID on planID
func NewTrial(tenantID, planID string, now time.Time) *Subscription {
	end := now.AddDate(0, 0, types.TrialPeriodDays)
	return &Subscription{
		ID:                 types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SUBSCRIPTION),
		TenantID:           tenantID,
		PlanID:             planID,
		Status:             types.SubscriptionStatusTrialing,
		CurrentPeriodStart: &now,
		CurrentPeriodEnd:   &end,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
