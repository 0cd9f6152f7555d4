package activity

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/types"
)

// ActivityLog is an append-only audit record of an action a user performed
// within a tenant against an entity.
type ActivityLog struct {
	ID         string               `db:"id" json:"id"`
	TenantID   string               `db:"tenant_id" json:"tenantId"`
	UserID     *string              `db:"user_id" json:"userId,omitempty"`
	Action     types.ActivityAction `db:"action" json:"action"`
	EntityType *types.EntityType    `db:"entity_type" json:"entityType,omitempty"`
	EntityID   *string              `db:"entity_id" json:"entityId,omitempty"`
	Metadata   Metadata             `db:"metadata" json:"metadata,omitempty"`
	CreatedAt  time.Time            `db:"created_at" json:"createdAt"`
}
