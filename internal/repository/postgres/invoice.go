package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/shopspring/decimal"
)

const invoiceColumns = `id, tenant_id, user_id, invoice_number, client_name, client_email, client_address,
	status, currency, subtotal, tax, total, notes, issued_date, due_date, sent_at, paid_at, created_at, updated_at`

const invoiceItemColumns = `id, invoice_id, description, quantity, unit_price, total, created_at`

type invoiceRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return &invoiceRepository{db: db, logger: logger}
}

func (r *invoiceRepository) Create(ctx context.Context, inv *invoice.Invoice) error {
	ctx, finish := r.db.StartSpan(ctx, "invoice.create", map[string]interface{}{
		"tenant_id":  inv.TenantID,
		"invoice_id": inv.ID,
	})
	defer finish()

	query := `
	INSERT INTO invoices (` + invoiceColumns + `)
	VALUES (:id, :tenant_id, :user_id, :invoice_number, :client_name, :client_email, :client_address,
		:status, :currency, :subtotal, :tax, :total, :notes, :issued_date, :due_date, :sent_at, :paid_at, :created_at, :updated_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, inv)
	return postgres.WrapError(err, "invoice")
}

func (r *invoiceRepository) Get(ctx context.Context, id string) (*invoice.Invoice, error) {
	ctx, finish := r.db.StartSpan(ctx, "invoice.get", map[string]interface{}{"invoice_id": id})
	defer finish()

	var inv invoice.Invoice
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, query, id); err != nil {
		if isNoRows(err) {
			return nil, invoice.NewInvoiceNotFoundError(id)
		}
		return nil, postgres.WrapError(err, "invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) Update(ctx context.Context, id string, update *invoice.InvoiceUpdate) (*invoice.Invoice, error) {
	ctx, finish := r.db.StartSpan(ctx, "invoice.update", map[string]interface{}{"invoice_id": id})
	defer finish()

	// sent_at and paid_at keep their first value
	query := `
	UPDATE invoices SET
		status = COALESCE($2, status),
		client_name = COALESCE($3, client_name),
		client_email = COALESCE($4, client_email),
		client_address = COALESCE($5, client_address),
		notes = COALESCE($6, notes),
		due_date = COALESCE($7, due_date),
		sent_at = COALESCE(sent_at, $8),
		paid_at = COALESCE(paid_at, $9),
		updated_at = $10
	WHERE id = $1
	RETURNING ` + invoiceColumns

	var inv invoice.Invoice
	err := r.db.GetQuerier(ctx).GetContext(ctx, &inv, query,
		id,
		update.Status,
		update.ClientName,
		update.ClientEmail,
		update.ClientAddress,
		update.Notes,
		update.DueDate,
		update.SentAt,
		update.PaidAt,
		time.Now().UTC(),
	)
	if err != nil {
		if isNoRows(err) {
			return nil, invoice.NewInvoiceNotFoundError(id)
		}
		return nil, postgres.WrapError(err, "invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, tenantID string, filter *types.InvoiceFilter) ([]*invoice.Invoice, error) {
	ctx, finish := r.db.StartSpan(ctx, "invoice.list", map[string]interface{}{"tenant_id": tenantID})
	defer finish()

	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}

	if status := filter.StatusFilter(); status != "" {
		args = append(args, status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if search := filter.SearchText(); search != "" {
		args = append(args, containsPattern(search))
		conditions = append(conditions, fmt.Sprintf("client_name ILIKE $%d", len(args)))
	}

	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE ` +
		strings.Join(conditions, " AND ") +
		` ORDER BY created_at DESC, id DESC`

	var invoices []*invoice.Invoice
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, postgres.WrapError(err, "invoice")
	}
	return invoices, nil
}

func (r *invoiceRepository) CountByTenant(ctx context.Context, tenantID string) (int, error) {
	var count int
	err := r.db.GetQuerier(ctx).GetContext(ctx, &count, `SELECT COUNT(*) FROM invoices WHERE tenant_id = $1`, tenantID)
	return count, postgres.WrapError(err, "invoice")
}

func (r *invoiceRepository) CountByTenantAndStatus(ctx context.Context, tenantID string) (map[types.InvoiceStatus]int, error) {
	ctx, finish := r.db.StartSpan(ctx, "invoice.count_by_status", map[string]interface{}{"tenant_id": tenantID})
	defer finish()

	var rows []struct {
		Status types.InvoiceStatus `db:"status"`
		Count  int                 `db:"count"`
	}
	query := `SELECT status, COUNT(*) AS count FROM invoices WHERE tenant_id = $1 GROUP BY status`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows, query, tenantID); err != nil {
		return nil, postgres.WrapError(err, "invoice")
	}

	counts := make(map[types.InvoiceStatus]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

func (r *invoiceRepository) SumTotalByTenantAndStatus(ctx context.Context, tenantID string, status types.InvoiceStatus) (decimal.Decimal, error) {
	var sum decimal.Decimal
	query := `SELECT COALESCE(SUM(total), 0) FROM invoices WHERE tenant_id = $1 AND status = $2`
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &sum, query, tenantID, status); err != nil {
		return decimal.Zero, postgres.WrapError(err, "invoice")
	}
	return sum, nil
}

func (r *invoiceRepository) CreateItems(ctx context.Context, items []*invoice.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}

	ctx, finish := r.db.StartSpan(ctx, "invoice.create_items", map[string]interface{}{
		"invoice_id": items[0].InvoiceID,
		"count":      len(items),
	})
	defer finish()

	query := `
	INSERT INTO invoice_items (` + invoiceItemColumns + `)
	VALUES (:id, :invoice_id, :description, :quantity, :unit_price, :total, :created_at)
	`

	_, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, items)
	return postgres.WrapError(err, "invoice item")
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID string) ([]*invoice.InvoiceItem, error) {
	ctx, finish := r.db.StartSpan(ctx, "invoice.list_items", map[string]interface{}{"invoice_id": invoiceID})
	defer finish()

	var items []*invoice.InvoiceItem
	query := `SELECT ` + invoiceItemColumns + ` FROM invoice_items WHERE invoice_id = $1 ORDER BY created_at ASC, id ASC`
	if err := r.db.GetQuerier(ctx).SelectContext(ctx, &items, query, invoiceID); err != nil {
		return nil, postgres.WrapError(err, "invoice item")
	}
	return items, nil
}
