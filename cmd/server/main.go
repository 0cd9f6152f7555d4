package main

import (
	"context"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	_ "github.com/invoiceai/invoiceai/docs/swagger"
	"github.com/invoiceai/invoiceai/internal/api"
	v1 "github.com/invoiceai/invoiceai/internal/api/v1"
	"github.com/invoiceai/invoiceai/internal/auth"
	"github.com/invoiceai/invoiceai/internal/cache"
	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/email"
	"github.com/invoiceai/invoiceai/internal/llm"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/postgres"
	"github.com/invoiceai/invoiceai/internal/repository"
	"github.com/invoiceai/invoiceai/internal/rest/middleware"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/invoiceai/invoiceai/internal/service"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/invoiceai/invoiceai/internal/validator"
	"go.uber.org/fx"
)

// @title InvoiceAI API
// @version 1.0
// @description InvoiceAI API Service
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Enter the token in the format **Bearer &lt;token&gt;**

func init() {
	// Set UTC timezone for the entire application
	time.Local = time.UTC
}

func main() {
	// Initialize Fx application
	var opts []fx.Option

	// Core dependencies
	opts = append(opts,
		fx.Provide(
			// Validator
			validator.NewValidator,

			// Config
			config.NewConfig,

			// Logger
			logger.NewLogger,

			// Monitoring
			sentry.NewSentryService,

			// Cache
			cache.NewInMemoryCache,

			// Postgres
			postgres.NewDB,

			// Repositories
			repository.NewTenantRepository,
			repository.NewUserRepository,
			repository.NewCompanyRepository,
			repository.NewInvoiceRepository,
			repository.NewActivityRepository,
			repository.NewPlanRepository,
			repository.NewSubscriptionRepository,

			// External providers
			auth.NewProvider,
			llm.NewOpenAIClient,
			email.NewEmailClient,
			email.NewEmail,
		),
	)

	// Service layer
	opts = append(opts,
		fx.Provide(
			service.NewServiceParams,

			service.NewActivityService,
			service.NewTenantDirectory,
			service.NewAuthService,
			service.NewInvoiceService,
			service.NewGenerationService,
			service.NewLifecycleService,
			service.NewCompanyService,
			service.NewDashboardService,
			service.NewPlanService,
			service.NewAdminService,
		),
	)

	// API
	opts = append(opts,
		fx.Provide(
			middleware.NewTenantRateLimiter,
			provideHandlers,
			provideRouter,
		),
		fx.Invoke(
			sentry.RegisterHooks,
			prepareDatabase,
			startServer,
		),
	)

	app := fx.New(opts...)
	app.Run()
}

func provideHandlers(
	logger *logger.Logger,
	authService service.AuthService,
	invoiceService service.InvoiceService,
	generationService service.GenerationService,
	lifecycleService service.LifecycleService,
	companyService service.CompanyService,
	dashboardService service.DashboardService,
	planService service.PlanService,
	adminService service.AdminService,
) api.Handlers {
	return api.Handlers{
		Health:    v1.NewHealthHandler(logger),
		Auth:      v1.NewAuthHandler(authService, logger),
		Invoice:   v1.NewInvoiceHandler(invoiceService, generationService, lifecycleService, logger),
		Company:   v1.NewCompanyHandler(companyService, logger),
		Dashboard: v1.NewDashboardHandler(dashboardService, logger),
		Plan:      v1.NewPlanHandler(planService, logger),
		Admin:     v1.NewAdminHandler(adminService, logger),
	}
}

func provideRouter(
	handlers api.Handlers,
	cfg *config.Configuration,
	logger *logger.Logger,
	sentryService *sentry.Service,
	authProvider auth.Provider,
	directory service.TenantDirectory,
	limiter *middleware.TenantRateLimiter,
) *gin.Engine {
	return api.NewRouter(handlers, api.RouterParams{
		Config:       cfg,
		Logger:       logger,
		Sentry:       sentryService,
		AuthProvider: authProvider,
		Directory:    directory,
		RateLimiter:  limiter,
	})
}

// prepareDatabase applies pending migrations when enabled and seeds the plan catalog
func prepareDatabase(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	db *postgres.DB,
	planService service.PlanService,
	log *logger.Logger,
) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Postgres.AutoMigrate {
				if err := postgres.MigrateUp(db, log); err != nil {
					log.Errorw("failed to migrate database", "error", err)
					return err
				}
			}

			if err := planService.SeedPlans(ctx); err != nil {
				log.Errorw("failed to seed plans", "error", err)
				return err
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			db.Close()
			return nil
		},
	})
}

func startServer(
	lc fx.Lifecycle,
	cfg *config.Configuration,
	r *gin.Engine,
	log *logger.Logger,
) {
	mode := cfg.Deployment.Mode
	if mode == "" {
		mode = types.ModeLocal
	}

	switch mode {
	case types.ModeLocal, types.ModeAPI:
		startAPIServer(lc, r, cfg, log)
	case types.ModeAWSLambdaAPI:
		startAWSLambdaAPI(lc, r, log)
	default:
		log.Fatalf("Unknown deployment mode: %s", mode)
	}
}

func startAPIServer(
	lc fx.Lifecycle,
	r *gin.Engine,
	cfg *config.Configuration,
	log *logger.Logger,
) {
	log.Info("Registering API server start hook")
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("Starting API server...", "address", cfg.Server.Address)
			go func() {
				if err := r.Run(cfg.Server.Address); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Shutting down server...")
			return nil
		},
	})
}

func startAWSLambdaAPI(lc fx.Lifecycle, r *gin.Engine, log *logger.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("Starting AWS Lambda API handler...")
			ginLambda := ginadapter.New(r)
			go lambda.Start(ginLambda.ProxyWithContext)
			return nil
		},
	})
}
