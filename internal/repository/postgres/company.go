package postgres

import (
	"context"
	"database/sql"

	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

const companyColumns = `id, tenant_id, name, address, city, state, postal_code, country, tax_number, email, phone, logo_url, created_at, updated_at`

type companyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewCompanyRepository(db *postgres.DB, logger *logger.Logger) company.Repository {
	return &companyRepository{db: db, logger: logger}
}

func (r *companyRepository) Create(ctx context.Context, c *company.Company) error {
	ctx, finish := r.db.StartSpan(ctx, "company.create", map[string]interface{}{"tenant_id": c.TenantID})
	defer finish()

	query := `
	INSERT INTO companies (` + companyColumns + `)
	VALUES (:id, :tenant_id, :name, :address, :city, :state, :postal_code, :country, :tax_number, :email, :phone, :logo_url, :created_at, :updated_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	return postgres.WrapError(err, "company")
}

func (r *companyRepository) GetByID(ctx context.Context, id string) (*company.Company, error) {
	ctx, finish := r.db.StartSpan(ctx, "company.get", map[string]interface{}{"company_id": id})
	defer finish()

	var c company.Company
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, id); err != nil {
		return nil, postgres.WrapError(err, "company")
	}
	return &c, nil
}

func (r *companyRepository) GetByTenant(ctx context.Context, tenantID string) (*company.Company, error) {
	ctx, finish := r.db.StartSpan(ctx, "company.get_by_tenant", map[string]interface{}{"tenant_id": tenantID})
	defer finish()

	var c company.Company
	query := `SELECT ` + companyColumns + ` FROM companies WHERE tenant_id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &c, query, tenantID); err != nil {
		return nil, postgres.WrapError(err, "company")
	}
	return &c, nil
}

func (r *companyRepository) Update(ctx context.Context, c *company.Company) error {
	ctx, finish := r.db.StartSpan(ctx, "company.update", map[string]interface{}{"company_id": c.ID})
	defer finish()

	query := `
	UPDATE companies SET
		name = :name,
		address = :address,
		city = :city,
		state = :state,
		postal_code = :postal_code,
		country = :country,
		tax_number = :tax_number,
		email = :email,
		phone = :phone,
		logo_url = :logo_url,
		updated_at = :updated_at
	WHERE id = :id AND tenant_id = :tenant_id
	`

	res, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, c)
	if err != nil {
		return postgres.WrapError(err, "company")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return postgres.WrapError(sql.ErrNoRows, "company")
	}
	return nil
}
