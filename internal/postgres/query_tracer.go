package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/types"
)

// slowQueryThreshold promotes a completed query log from debug to warn
const slowQueryThreshold = 500 * time.Millisecond

// queryTrace times one statement and logs it with the request's identity
type queryTrace struct {
	logger *logger.Logger
	query  string
	params any
	txID   string
	start  time.Time
}

func startTrace(logger *logger.Logger, query string, params any, txID string) *queryTrace {
	return &queryTrace{
		logger: logger,
		query:  query,
		params: params,
		txID:   txID,
		start:  time.Now(),
	}
}

func (t *queryTrace) done(ctx context.Context, err error) {
	elapsed := time.Since(t.start)
	fields := []any{
		"duration_ms", elapsed.Milliseconds(),
		"query", t.query,
		"params", fmt.Sprintf("%+v", t.params),
	}
	if t.txID != "" {
		fields = append(fields, "tx_id", t.txID)
	}
	if requestID := types.GetRequestID(ctx); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}
	if tenantID := types.GetTenantID(ctx); tenantID != "" {
		fields = append(fields, "tenant_id", tenantID)
	}

	switch {
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		t.logger.Errorw("database query failed", append(fields, "error", err.Error())...)
	case elapsed >= slowQueryThreshold:
		t.logger.Warnw("slow database query", fields...)
	default:
		t.logger.Debugw("database query completed", fields...)
	}
}

// TracedQuerier logs every statement run through the wrapped Querier
type TracedQuerier struct {
	Querier
	logger *logger.Logger
	txID   string
}

func NewTracedQuerier(q Querier, logger *logger.Logger, txID string) *TracedQuerier {
	return &TracedQuerier{
		Querier: q,
		logger:  logger,
		txID:    txID,
	}
}

func (tq *TracedQuerier) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	t := startTrace(tq.logger, query, args, tq.txID)
	result, err := tq.Querier.ExecContext(ctx, query, args...)
	t.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) NamedExecContext(ctx context.Context, query string, arg any) (sql.Result, error) {
	t := startTrace(tq.logger, query, arg, tq.txID)
	result, err := tq.Querier.NamedExecContext(ctx, query, arg)
	t.done(ctx, err)
	return result, err
}

func (tq *TracedQuerier) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	t := startTrace(tq.logger, query, args, tq.txID)
	rows, err := tq.Querier.QueryContext(ctx, query, args...)
	t.done(ctx, err)
	return rows, err
}

func (tq *TracedQuerier) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	t := startTrace(tq.logger, query, args, tq.txID)
	row := tq.Querier.QueryRowContext(ctx, query, args...)
	t.done(ctx, row.Err())
	return row
}

func (tq *TracedQuerier) GetContext(ctx context.Context, dest any, query string, args ...any) error {
	t := startTrace(tq.logger, query, args, tq.txID)
	err := tq.Querier.GetContext(ctx, dest, query, args...)
	t.done(ctx, err)
	return err
}

func (tq *TracedQuerier) SelectContext(ctx context.Context, dest any, query string, args ...any) error {
	t := startTrace(tq.logger, query, args, tq.txID)
	err := tq.Querier.SelectContext(ctx, dest, query, args...)
	t.done(ctx, err)
	return err
}
