package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// DB wraps sqlx.DB to provide transaction management
type DB struct {
	*sqlx.DB
	logger *logger.Logger
	sentry *sentry.Service
}

// Querier interface defines all database operations
// Both *sqlx.DB and *sqlx.Tx implement these methods
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	NamedExecContext(ctx context.Context, query string, arg interface{}) (sql.Result, error)
	Rebind(query string) string
}

// Transactor runs fn inside a transaction carried by the returned context.
// Services depend on this rather than on *DB so tests can swap it out.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NewDB creates a new DB instance
func NewDB(cfg *config.Configuration, logger *logger.Logger, sentry *sentry.Service) (*DB, error) {
	db, err := sqlx.Connect("postgres", cfg.Postgres.GetDSN())
	if err != nil {
		return nil, err
	}

	if cfg.Postgres.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	}
	if cfg.Postgres.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)
	}
	if cfg.Postgres.ConnMaxLifetimeMinutes > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.Postgres.ConnMaxLifetimeMinutes) * time.Minute)
	}

	logger.Infow("connected to postgres",
		"max_open_conns", cfg.Postgres.MaxOpenConns,
		"max_idle_conns", cfg.Postgres.MaxIdleConns,
	)

	return &DB{DB: db, logger: logger, sentry: sentry}, nil
}

// Close closes the database connection
func (db *DB) Close() {
	if err := db.DB.Close(); err != nil {
		db.logger.Errorw("error closing database", "error", err)
	}
}

// GetQuerier returns either the transaction from context or the base DB
func (db *DB) GetQuerier(ctx context.Context) Querier {
	if tx, ok := GetTx(ctx); ok {
		return NewTracedQuerier(tx.Tx, db.logger, tx.ID)
	}
	return NewTracedQuerier(db.DB, db.logger, "")
}

// StartSpan starts a sentry span for a repository operation.
// The returned finish func is safe to call when sentry is disabled.
func (db *DB) StartSpan(ctx context.Context, operation string, params map[string]interface{}) (context.Context, func()) {
	if db.sentry == nil {
		return ctx, func() {}
	}
	span, spanCtx := db.sentry.StartDBSpan(ctx, operation, params)
	if span == nil {
		return ctx, func() {}
	}
	return spanCtx, span.Finish
}
