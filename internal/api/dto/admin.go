package dto

import (
	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/invoiceai/invoiceai/internal/validator"
)

// TenantMetricsResponse is one row of the admin tenant overview
type TenantMetricsResponse struct {
	TenantID     string  `json:"tenantId"`
	TenantName   string  `json:"tenantName"`
	UserCount    int     `json:"userCount"`
	PlanName     string  `json:"planName"`
	InvoiceCount int     `json:"invoiceCount"`
	InvoiceLimit int     `json:"invoiceLimit"`
	LastActive   *string `json:"lastActive"`
}

// ActivityUserRef and ActivityTenantRef enrich a feed entry
type ActivityUserRef struct {
	Email string `json:"email"`
}

type ActivityTenantRef struct {
	Name string `json:"name"`
}

type ActivityFeedEntry struct {
	ID         string               `json:"id"`
	TenantID   string               `json:"tenantId"`
	UserID     *string              `json:"userId"`
	Action     types.ActivityAction `json:"action"`
	EntityType *types.EntityType    `json:"entityType"`
	EntityID   *string              `json:"entityId"`
	Metadata   map[string]any       `json:"metadata"`
	CreatedAt  string               `json:"createdAt"`
	User       *ActivityUserRef     `json:"user"`
	Tenant     *ActivityTenantRef   `json:"tenant"`
}

func NewActivityFeedEntry(log *activity.ActivityLog) *ActivityFeedEntry {
	return &ActivityFeedEntry{
		ID:         log.ID,
		TenantID:   log.TenantID,
		UserID:     log.UserID,
		Action:     log.Action,
		EntityType: log.EntityType,
		EntityID:   log.EntityID,
		Metadata:   log.Metadata,
		CreatedAt:  formatTime(log.CreatedAt),
	}
}

// UpdateUserRequest reassigns a user's tenant or role
type UpdateUserRequest struct {
	TenantID *string         `json:"tenantId,omitempty" validate:"omitempty,min=1"`
	Role     *types.UserRole `json:"role,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Role != nil {
		return r.Role.Validate()
	}
	return nil
}
