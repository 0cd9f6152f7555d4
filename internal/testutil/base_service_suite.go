package testutil

import (
	"context"
	"time"

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
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/invoiceai/invoiceai/internal/validator"
	"github.com/stretchr/testify/suite"
)

// Stores holds all the repository interfaces for testing
type Stores struct {
	TenantRepo       tenant.Repository
	UserRepo         user.Repository
	CompanyRepo      company.Repository
	InvoiceRepo      invoice.Repository
	ActivityRepo     activity.Repository
	PlanRepo         plan.Repository
	SubscriptionRepo subscription.Repository
}

// BaseServiceTestSuite provides common functionality for all service test suites
type BaseServiceTestSuite struct {
	suite.Suite
	ctx          context.Context
	stores       Stores
	db           *MockTransactor
	cache        cache.Cache
	sentry       *sentry.Service
	authProvider auth.Provider
	llm          *MockLLMClient
	emailSender  *MockEmailSender
	email        *email.Email
	logger       *logger.Logger
	config       *config.Configuration
	now          time.Time
}

// SetupSuite is called once before running the tests in the suite
func (s *BaseServiceTestSuite) SetupSuite() {
	// Initialize validator
	validator.NewValidator()

	cfg := &config.Configuration{
		Logging: config.LoggingConfig{
			Level: types.LogLevelInfo,
		},
		Auth: config.AuthConfig{
			Provider:    types.AuthProviderEmail,
			Secret:      "test-secret-for-unit-tests-only",
			TokenTTL:    time.Hour,
			AdminEmails: []string{"admin@invoiceai.test"},
		},
		Email: config.EmailConfig{
			FromAddress: "InvoiceAI <noreply@invoiceai.com>",
		},
		Cache: config.CacheConfig{
			Enabled: true,
		},
	}
	var err error
	s.config = cfg
	s.logger, err = logger.NewLogger(cfg)
	if err != nil {
		s.T().Fatalf("failed to create logger: %v", err)
	}

	s.sentry = sentry.NewSentryService(cfg, s.logger)
	s.authProvider = auth.NewEmailAuth(cfg)
}

// SetupTest is called before each test
func (s *BaseServiceTestSuite) SetupTest() {
	s.setupContext()
	s.setupStores()
	s.now = time.Now().UTC()
}

// TearDownTest is called after each test
func (s *BaseServiceTestSuite) TearDownTest() {
	s.clearStores()
}

func (s *BaseServiceTestSuite) setupContext() {
	s.ctx = SetupContext()
}

func (s *BaseServiceTestSuite) setupStores() {
	s.stores = Stores{
		TenantRepo:       NewInMemoryTenantStore(),
		UserRepo:         NewInMemoryUserStore(),
		CompanyRepo:      NewInMemoryCompanyStore(),
		InvoiceRepo:      NewInMemoryInvoiceStore(),
		ActivityRepo:     NewInMemoryActivityStore(),
		PlanRepo:         NewInMemoryPlanStore(),
		SubscriptionRepo: NewInMemorySubscriptionStore(),
	}

	s.db = NewMockTransactor(
		s.stores.TenantRepo.(*InMemoryTenantStore),
		s.stores.UserRepo.(*InMemoryUserStore),
		s.stores.CompanyRepo.(*InMemoryCompanyStore),
		s.stores.InvoiceRepo.(*InMemoryInvoiceStore),
		s.stores.ActivityRepo.(*InMemoryActivityStore),
		s.stores.PlanRepo.(*InMemoryPlanStore),
		s.stores.SubscriptionRepo.(*InMemorySubscriptionStore),
	)
	s.cache = cache.NewInMemoryCache(s.config, s.logger)
	s.llm = NewMockLLMClient()
	s.emailSender = NewMockEmailSender()
	s.email = email.NewEmail(s.emailSender, s.logger)
}

func (s *BaseServiceTestSuite) clearStores() {
	s.stores.TenantRepo.(*InMemoryTenantStore).Clear()
	s.stores.UserRepo.(*InMemoryUserStore).Clear()
	s.stores.CompanyRepo.(*InMemoryCompanyStore).Clear()
	s.stores.InvoiceRepo.(*InMemoryInvoiceStore).Clear()
	s.stores.ActivityRepo.(*InMemoryActivityStore).Clear()
	s.stores.PlanRepo.(*InMemoryPlanStore).Clear()
	s.stores.SubscriptionRepo.(*InMemorySubscriptionStore).Clear()
	s.cache.Flush(context.Background())
}

func (s *BaseServiceTestSuite) ClearStores() {
	s.clearStores()
}

// CreateTenantWithUser stores a tenant and a user assigned to it and
// returns the scope that user would resolve to
func (s *BaseServiceTestSuite) CreateTenantWithUser(name, emailAddr string, role types.UserRole) types.TenantScope {
	ctx := s.GetContext()

	t := &tenant.Tenant{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_TENANT),
		Name:      name,
		Shard:     tenant.DefaultShard,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.Require().NoError(s.stores.TenantRepo.Create(ctx, t))

	u := user.NewUser(emailAddr, role)
	u.TenantID = &t.ID
	s.Require().NoError(s.stores.UserRepo.Create(ctx, u))

	return types.TenantScope{TenantID: t.ID, UserID: u.ID, Role: role}
}

// GetContext returns the test context
func (s *BaseServiceTestSuite) GetContext() context.Context {
	return s.ctx
}

// GetConfig returns the test configuration
func (s *BaseServiceTestSuite) GetConfig() *config.Configuration {
	return s.config
}

// GetStores returns all test repositories
func (s *BaseServiceTestSuite) GetStores() Stores {
	return s.stores
}

// GetDB returns the test transactor
func (s *BaseServiceTestSuite) GetDB() *MockTransactor {
	return s.db
}

// GetCache returns the test cache
func (s *BaseServiceTestSuite) GetCache() cache.Cache {
	return s.cache
}

// GetSentry returns a disabled sentry service
func (s *BaseServiceTestSuite) GetSentry() *sentry.Service {
	return s.sentry
}

// GetAuthProvider returns the email auth provider
func (s *BaseServiceTestSuite) GetAuthProvider() auth.Provider {
	return s.authProvider
}

// GetLLM returns the fake model client
func (s *BaseServiceTestSuite) GetLLM() *MockLLMClient {
	return s.llm
}

// GetEmailSender returns the fake email transport
func (s *BaseServiceTestSuite) GetEmailSender() *MockEmailSender {
	return s.emailSender
}

// GetEmail returns the email service built on the fake transport
func (s *BaseServiceTestSuite) GetEmail() *email.Email {
	return s.email
}

// GetLogger returns the test logger
func (s *BaseServiceTestSuite) GetLogger() *logger.Logger {
	return s.logger
}

// GetNow returns the current test time
func (s *BaseServiceTestSuite) GetNow() time.Time {
	return s.now.UTC()
}

// GetUUID returns a new UUID string
func (s *BaseServiceTestSuite) GetUUID() string {
	return types.GenerateUUID()
}
