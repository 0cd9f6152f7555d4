package activity

import (
	"context"
	"time"
)

// Repository is append-only
type Repository interface {
	Create(ctx context.Context, log *ActivityLog) error
	// ListByTenant returns at most limit records, newest first.
	// An empty action matches every action.
	ListByTenant(ctx context.Context, tenantID string, action string, limit int) ([]*ActivityLog, error)
	// LastActivityAt returns the newest record time for the tenant, or nil
	LastActivityAt(ctx context.Context, tenantID string) (*time.Time, error)
}
