package postgres

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

type tenantRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTenantRepository(db *postgres.DB, logger *logger.Logger) tenant.Repository {
	return &tenantRepository{db: db, logger: logger}
}

func (r *tenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	ctx, finish := r.db.StartSpan(ctx, "tenant.create", map[string]interface{}{"tenant_id": t.ID})
	defer finish()

	query := `
	INSERT INTO tenants (id, name, shard, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.GetQuerier(ctx).ExecContext(
		ctx, query,
		t.ID,
		t.Name,
		t.Shard,
		t.CreatedAt,
		t.UpdatedAt,
	)
	return postgres.WrapError(err, "tenant")
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	ctx, finish := r.db.StartSpan(ctx, "tenant.get", map[string]interface{}{"tenant_id": id})
	defer finish()

	query := `SELECT id, name, shard, created_at, updated_at FROM tenants WHERE id = $1`

	var t tenant.Tenant
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &t, query, id); err != nil {
		return nil, postgres.WrapError(err, "tenant")
	}
	return &t, nil
}

func (r *tenantRepository) List(ctx context.Context) ([]*tenant.Tenant, error) {
	ctx, finish := r.db.StartSpan(ctx, "tenant.list", nil)
	defer finish()

	query := `SELECT id, name, shard, created_at, updated_at FROM tenants ORDER BY created_at DESC`

	var tenants []*tenant.Tenant
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &tenants, query); err != nil {
		return nil, postgres.WrapError(err, "tenant")
	}
	return tenants, nil
}

func (r *tenantRepository) Lock(ctx context.Context, id string) error {
	if _, ok := postgres.GetTx(ctx); !ok {
		r.logger.Warnw("tenant lock requested outside a transaction", "tenant_id", id)
	}

	var locked string
	err := r.db.GetQuerier(ctx).GetContext(ctx, &locked, `SELECT id FROM tenants WHERE id = $1 FOR UPDATE`, id)
	return postgres.WrapError(err, "tenant")
}
