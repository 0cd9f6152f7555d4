package plan

import (
	"context"
)

type Repository interface {
	// Upsert inserts the plan or refreshes the row with the same name
	Upsert(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id string) (*Plan, error)
	GetByName(ctx context.Context, name string) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
