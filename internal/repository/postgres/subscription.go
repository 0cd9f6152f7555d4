package postgres

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/subscription"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

const subscriptionColumns = `id, tenant_id, plan_id, status, current_period_start, current_period_end, cancel_at_period_end, created_at, updated_at`

type subscriptionRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return &subscriptionRepository{db: db, logger: logger}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	ctx, finish := r.db.StartSpan(ctx, "subscription.create", map[string]interface{}{"tenant_id": sub.TenantID})
	defer finish()

	query := `
	INSERT INTO subscriptions (` + subscriptionColumns + `)
	VALUES (:id, :tenant_id, :plan_id, :status, :current_period_start, :current_period_end, :cancel_at_period_end, :created_at, :updated_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, sub)
	return postgres.WrapError(err, "subscription")
}

func (r *subscriptionRepository) GetByTenant(ctx context.Context, tenantID string) (*subscription.Subscription, error) {
	var sub subscription.Subscription
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE tenant_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &sub, query, tenantID); err != nil {
		return nil, postgres.WrapError(err, "subscription")
	}
	return &sub, nil
}
