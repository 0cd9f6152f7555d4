package api

import (
	"github.com/gin-gonic/gin"
	v1 "github.com/invoiceai/invoiceai/internal/api/v1"
	"github.com/invoiceai/invoiceai/internal/auth"
	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/rest/middleware"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/invoiceai/invoiceai/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type Handlers struct {
	Health    *v1.HealthHandler
	Auth      *v1.AuthHandler
	Invoice   *v1.InvoiceHandler
	Company   *v1.CompanyHandler
	Dashboard *v1.DashboardHandler
	Plan      *v1.PlanHandler
	Admin     *v1.AdminHandler
}

// RouterParams groups what the middleware chain needs besides the handlers
type RouterParams struct {
	Config       *config.Configuration
	Logger       *logger.Logger
	Sentry       *sentry.Service
	AuthProvider auth.Provider
	Directory    service.TenantDirectory
	RateLimiter  *middleware.TenantRateLimiter
}

func NewRouter(handlers Handlers, params RouterParams) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(
		middleware.RequestIDMiddleware,
		middleware.CORSMiddleware,
		middleware.SentryMiddleware(params.Config),
		middleware.ErrorHandler(params.Sentry, params.Logger),
	)

	// Health check
	router.GET("/health", handlers.Health.Health)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api")
	{
		public.GET("/health", handlers.Health.Health)
		public.POST("/auth/login", handlers.Auth.Login)
	}

	private := router.Group("/api")
	private.Use(
		middleware.AuthenticateMiddleware(params.AuthProvider, params.Logger),
		middleware.TenantMiddleware(params.Directory),
	)

	{
		authRoutes := private.Group("/auth")
		{
			authRoutes.GET("/me", handlers.Auth.Me)
			authRoutes.POST("/logout", handlers.Auth.Logout)
		}

		invoices := private.Group("/invoices")
		{
			invoices.POST("/generate", params.RateLimiter.Middleware(), handlers.Invoice.GenerateInvoice)
			invoices.GET("", handlers.Invoice.ListInvoices)
			invoices.GET("/:id", handlers.Invoice.GetInvoice)
			invoices.POST("/:id/send", handlers.Invoice.SendInvoice)
			invoices.PATCH("/:id/status", handlers.Invoice.UpdateInvoiceStatus)
		}

		companies := private.Group("/companies")
		{
			companies.GET("/current", handlers.Company.GetCurrentCompany)
			companies.POST("", handlers.Company.CreateCompany)
			companies.PATCH("/:id", handlers.Company.UpdateCompany)
		}

		private.GET("/dashboard/stats", handlers.Dashboard.GetStats)
		private.GET("/plans", handlers.Plan.ListPlans)

		admin := private.Group("/admin")
		admin.Use(middleware.RequireAdmin)
		{
			admin.GET("/tenants", handlers.Admin.ListTenantMetrics)
			admin.GET("/activity", handlers.Admin.ListActivity)
			admin.GET("/users", handlers.Admin.ListUsers)
			admin.PATCH("/users/:id", handlers.Admin.UpdateUser)
		}
	}

	return router
}
