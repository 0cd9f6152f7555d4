package testutil

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/activity"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
)

type InMemoryActivityStore struct {
	*InMemoryStore[*activity.ActivityLog]
}

func NewInMemoryActivityStore() *InMemoryActivityStore {
	return &InMemoryActivityStore{
		InMemoryStore: NewInMemoryStore[*activity.ActivityLog](),
	}
}

func (s *InMemoryActivityStore) Create(ctx context.Context, log *activity.ActivityLog) error {
	if log == nil {
		return ierr.NewError("activity log cannot be nil").Mark(ierr.ErrValidation)
	}
	return s.InMemoryStore.Create(ctx, log.ID, log)
}

func (s *InMemoryActivityStore) ListByTenant(ctx context.Context, tenantID string, action string, limit int) ([]*activity.ActivityLog, error) {
	logs := s.InMemoryStore.List(ctx, func(_ context.Context, log *activity.ActivityLog) bool {
		return log.TenantID == tenantID && (action == "" || string(log.Action) == action)
	}, newestActivityFirst)

	if limit > 0 && len(logs) > limit {
		logs = logs[:limit]
	}
	return logs, nil
}

func (s *InMemoryActivityStore) LastActivityAt(ctx context.Context, tenantID string) (*time.Time, error) {
	logs, _ := s.ListByTenant(ctx, tenantID, "", 1)
	if len(logs) == 0 {
		return nil, nil
	}
	at := logs[0].CreatedAt
	return &at, nil
}

// ListAll returns every record, newest first
func (s *InMemoryActivityStore) ListAll(ctx context.Context) []*activity.ActivityLog {
	return s.InMemoryStore.List(ctx, nil, newestActivityFirst)
}

func newestActivityFirst(a, b *activity.ActivityLog) bool {
	if a.CreatedAt.Equal(b.CreatedAt) {
		return a.ID > b.ID
	}
	return a.CreatedAt.After(b.CreatedAt)
}
