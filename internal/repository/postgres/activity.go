package postgres

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

const activityColumns = `id, tenant_id, user_id, action, entity_type, entity_id, metadata, created_at`

type activityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return &activityRepository{db: db, logger: logger}
}

func (r *activityRepository) Create(ctx context.Context, log *activity.ActivityLog) error {
	ctx, finish := r.db.StartSpan(ctx, "activity.create", map[string]interface{}{
		"tenant_id": log.TenantID,
		"action":    log.Action,
	})
	defer finish()

	query := `
	INSERT INTO activity_logs (` + activityColumns + `)
	VALUES (:id, :tenant_id, :user_id, :action, :entity_type, :entity_id, :metadata, :created_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, log)
	return postgres.WrapError(err, "activity log")
}

func (r *activityRepository) ListByTenant(ctx context.Context, tenantID string, action string, limit int) ([]*activity.ActivityLog, error) {
	ctx, finish := r.db.StartSpan(ctx, "activity.list_by_tenant", map[string]interface{}{"tenant_id": tenantID})
	defer finish()

	query := `
	SELECT ` + activityColumns + ` FROM activity_logs
	WHERE tenant_id = $1 AND ($2 = '' OR action = $2)
	ORDER BY created_at DESC, id DESC
	LIMIT $3
	`

	var logs []*activity.ActivityLog
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &logs, query, tenantID, action, limit); err != nil {
		return nil, postgres.WrapError(err, "activity log")
	}
	return logs, nil
}

func (r *activityRepository) LastActivityAt(ctx context.Context, tenantID string) (*time.Time, error) {
	var last *time.Time
	query := `SELECT MAX(created_at) FROM activity_logs WHERE tenant_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &last, query, tenantID); err != nil {
		return nil, postgres.WrapError(err, "activity log")
	}
	return last, nil
}
