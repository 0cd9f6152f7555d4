package service

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
)

// RecordActivityParams describes one audited action
type RecordActivityParams struct {
	Action     types.ActivityAction
	EntityType types.EntityType
	EntityID   string
	Metadata   map[string]any
}

// ActivityService appends audit records. Records are never updated or deleted.
type ActivityService interface {
	Record(ctx context.Context, scope types.TenantScope, params RecordActivityParams) error
}

type activityService struct {
	ServiceParams
}

func NewActivityService(params ServiceParams) ActivityService {
	return &activityService{
		ServiceParams: params,
	}
}

func (s *activityService) Record(ctx context.Context, scope types.TenantScope, params RecordActivityParams) error {
	log := &activity.ActivityLog{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_ACTIVITY),
		TenantID:  scope.TenantID,
		Action:    params.Action,
		Metadata:  params.Metadata,
		CreatedAt: time.Now().UTC(),
	}
	if scope.UserID != "" {
		log.UserID = lo.ToPtr(scope.UserID)
	}
	if params.EntityType != "" {
		log.EntityType = lo.ToPtr(params.EntityType)
	}
	if params.EntityID != "" {
		log.EntityID = lo.ToPtr(params.EntityID)
	}

	if err := s.ActivityRepo.Create(ctx, log); err != nil {
		s.Logger.Errorw("failed to record activity",
			"tenant_id", scope.TenantID,
			"action", params.Action,
			"entity_id", params.EntityID,
			"error", err,
		)
		return err
	}
	return nil
}
