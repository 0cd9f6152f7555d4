package service

import (
	"github.com/invoiceai/invoiceai/internal/auth"
	"github.com/invoiceai/invoiceai/internal/cache"
	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/domain/activity"
	"github.com/invoiceai/invoiceai/internal/domain/company"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/domain/plan"
	"github.com/invoiceai/invoiceai/internal/domain/subscription"
	"github.com/invoiceai/invoiceai/internal/domain/tenant"
	"github.com/invoiceai/invoiceai/internal/domain/user"
	"github.com/invoiceai/invoiceai/internal/email"
	"github.com/invoiceai/invoiceai/internal/llm"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
	"github.com/invoiceai/invoiceai/internal/sentry"
)

// ServiceParams holds common dependencies for services
type ServiceParams struct {
	Logger *logger.Logger
	Config *config.Configuration
	DB     postgres.Transactor
	Cache  cache.Cache
	Sentry *sentry.Service

	// Repositories
	TenantRepo       tenant.Repository
	UserRepo         user.Repository
	CompanyRepo      company.Repository
	InvoiceRepo      invoice.Repository
	ActivityRepo     activity.Repository
	PlanRepo         plan.Repository
	SubscriptionRepo subscription.Repository

	// External collaborators
	AuthProvider auth.Provider
	LLM          llm.Client
	Email        *email.Email
}

// Common service params
func NewServiceParams(
	logger *logger.Logger,
	config *config.Configuration,
	db *postgres.DB,
	cache cache.Cache,
	sentry *sentry.Service,
	tenantRepo tenant.Repository,
	userRepo user.Repository,
	companyRepo company.Repository,
	invoiceRepo invoice.Repository,
	activityRepo activity.Repository,
	planRepo plan.Repository,
	subscriptionRepo subscription.Repository,
	authProvider auth.Provider,
	llmClient llm.Client,
	emailService *email.Email,
) ServiceParams {
	return ServiceParams{
		Logger:           logger,
		Config:           config,
		DB:               db,
		Cache:            cache,
		Sentry:           sentry,
		TenantRepo:       tenantRepo,
		UserRepo:         userRepo,
		CompanyRepo:      companyRepo,
		InvoiceRepo:      invoiceRepo,
		ActivityRepo:     activityRepo,
		PlanRepo:         planRepo,
		SubscriptionRepo: subscriptionRepo,
		AuthProvider:     authProvider,
		LLM:              llmClient,
		Email:            emailService,
	}
}
