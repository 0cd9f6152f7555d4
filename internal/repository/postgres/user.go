package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/user"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
)

const userColumns = `id, email, first_name, last_name, profile_image_url, tenant_id, role, created_at, updated_at`

type userRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return &userRepository{db: db, logger: logger}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	ctx, finish := r.db.StartSpan(ctx, "user.create", map[string]interface{}{"user_id": u.ID})
	defer finish()

	query := `
	INSERT INTO users (id, email, first_name, last_name, profile_image_url, tenant_id, role, created_at, updated_at)
	VALUES (:id, :email, :first_name, :last_name, :profile_image_url, :tenant_id, :role, :created_at, :updated_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, u)
	return postgres.WrapError(err, "user")
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	ctx, finish := r.db.StartSpan(ctx, "user.get", map[string]interface{}{"user_id": id})
	defer finish()

	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return &u, nil
}

// GetByEmail is only used by login and provisioning, which run before a tenant is known
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	ctx, finish := r.db.StartSpan(ctx, "user.get_by_email", nil)
	defer finish()

	var u user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1)`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, strings.TrimSpace(email)); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	ctx, finish := r.db.StartSpan(ctx, "user.list", nil)
	defer finish()

	var users []*user.User
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return users, nil
}

func (r *userRepository) ListByTenant(ctx context.Context, tenantID string) ([]*user.User, error) {
	ctx, finish := r.db.StartSpan(ctx, "user.list_by_tenant", map[string]interface{}{"tenant_id": tenantID})
	defer finish()

	var users []*user.User
	query := `SELECT ` + userColumns + ` FROM users WHERE tenant_id = $1 ORDER BY created_at DESC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &users, query, tenantID); err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return users, nil
}

func (r *userRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM users WHERE tenant_id = $1`, tenantID)
	return count, postgres.WrapError(err, "user")
}

func (r *userRepository) Update(ctx context.Context, id string, update *user.UserUpdate) (*user.User, error) {
	ctx, finish := r.db.StartSpan(ctx, "user.update", map[string]interface{}{"user_id": id})
	defer finish()

	query := `
	UPDATE users SET
		tenant_id = COALESCE($2, tenant_id),
		role = COALESCE($3, role),
		updated_at = $4
	WHERE id = $1
	RETURNING ` + userColumns

	var u user.User
	err := r.db.GetQuerier(ctx).GetContext(ctx, &u, query, id, update.TenantID, update.Role, time.Now().UTC())
	if err != nil {
		return nil, postgres.WrapError(err, "user")
	}
	return &u, nil
}
