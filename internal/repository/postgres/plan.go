package postgres

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/plan"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

const planColumns = `id, name, tier, invoice_limit, price, features, created_at, updated_at`

type planRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return &planRepository{db: db, logger: logger}
}

func (r *planRepository) Upsert(ctx context.Context, p *plan.Plan) error {
	ctx, finish := r.db.StartSpan(ctx, "plan.upsert", map[string]interface{}{"plan": p.Name})
	defer finish()

	query := `
	INSERT INTO plans (` + planColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name) DO UPDATE SET
		tier = EXCLUDED.tier,
		invoice_limit = EXCLUDED.invoice_limit,
		price = EXCLUDED.price,
		features = EXCLUDED.features,
		updated_at = EXCLUDED.updated_at
	RETURNING id
	`

	// the row keeps its original id on conflict
	err := r.db.GetQuerier(ctx).GetContext(ctx, &p.ID, query,
		p.ID,
		p.Name,
		p.Tier,
		p.InvoiceLimit,
		p.Price,
		p.Features,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return postgres.WrapError(err, "plan")
}

func (r *planRepository) GetByID(ctx context.Context, id string) (*plan.Plan, error) {
	var p plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, id); err != nil {
		return nil, postgres.WrapError(err, "plan")
	}
	return &p, nil
}

func (r *planRepository) GetByName(ctx context.Context, name string) (*plan.Plan, error) {
	var p plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans WHERE name = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &p, query, name); err != nil {
		return nil, postgres.WrapError(err, "plan")
	}
	return &p, nil
}

func (r *planRepository) List(ctx context.Context) ([]*plan.Plan, error) {
	var plans []*plan.Plan
	query := `SELECT ` + planColumns + ` FROM plans ORDER BY price ASC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &plans, query); err != nil {
		return nil, postgres.WrapError(err, "plan")
	}
	return plans, nil
}
