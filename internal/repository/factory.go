package repository

import (
	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/domain/plan"
	"github.com/invoiceai/invoiceai/internal/domain/subscription"
	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
	postgresRepo "github.com/invoiceai/invoiceai/internal/repository/postgres"
)

func NewTenantRepository(db *postgres.DB, logger *logger.Logger) tenant.Repository {
	return postgresRepo.NewTenantRepository(db, logger)
}

func NewUserRepository(db *postgres.DB, logger *logger.Logger) user.Repository {
	return postgresRepo.NewUserRepository(db, logger)
}

func NewCompanyRepository(db *postgres.DB, logger *logger.Logger) company.Repository {
	return postgresRepo.NewCompanyRepository(db, logger)
}

func NewInvoiceRepository(db *postgres.DB, logger *logger.Logger) invoice.Repository {
	return postgresRepo.NewInvoiceRepository(db, logger)
}

func NewActivityRepository(db *postgres.DB, logger *logger.Logger) activity.Repository {
	return postgresRepo.NewActivityRepository(db, logger)
}

func NewPlanRepository(db *postgres.DB, logger *logger.Logger) plan.Repository {
	return postgresRepo.NewPlanRepository(db, logger)
}

func NewSubscriptionRepository(db *postgres.DB, logger *logger.Logger) subscription.Repository {
	return postgresRepo.NewSubscriptionRepository(db, logger)
}
