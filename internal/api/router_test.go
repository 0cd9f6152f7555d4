package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/invoiceai/invoiceai/internal/api/dto"
	v1 "github.com/invoiceai/invoiceai/internal/api/v1"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/rest/middleware"
	"github.com/invoiceai/invoiceai/internal/service"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/suite"
)

const generatedDraft = `{
  "client": {"name": "Globex", "email": "ap@globex.test"},
  "items": [{"description": "Consulting", "quantity": 4, "price": 125}],
  "currency": "EUR",
  "due_date": "2026-12-01"
}`

type RouterSuite struct {
	testutil.BaseServiceTestSuite
	router *gin.Engine
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.router = s.newRouter(middleware.NewTenantRateLimiter(s.GetConfig()))
}

func (s *RouterSuite) newRouter(limiter *middleware.TenantRateLimiter) *gin.Engine {
	stores := s.GetStores()
	params := service.ServiceParams{
		Logger:           s.GetLogger(),
		Config:           s.GetConfig(),
		DB:               s.GetDB(),
		Cache:            s.GetCache(),
		Sentry:           s.GetSentry(),
		TenantRepo:       stores.TenantRepo,
		UserRepo:         stores.UserRepo,
		CompanyRepo:      stores.CompanyRepo,
		InvoiceRepo:      stores.InvoiceRepo,
		ActivityRepo:     stores.ActivityRepo,
		PlanRepo:         stores.PlanRepo,
		SubscriptionRepo: stores.SubscriptionRepo,
		AuthProvider:     s.GetAuthProvider(),
		LLM:              s.GetLLM(),
		Email:            s.GetEmail(),
	}

	activity := service.NewActivityService(params)
	directory := service.NewTenantDirectory(params)
	plans := service.NewPlanService(params)
	s.Require().NoError(plans.SeedPlans(s.GetContext()))

	log := s.GetLogger()
	handlers := Handlers{
		Health: v1.NewHealthHandler(log),
		Auth:   v1.NewAuthHandler(service.NewAuthService(params, activity), log),
		Invoice: v1.NewInvoiceHandler(
			service.NewInvoiceService(params),
			service.NewGenerationService(params, activity),
			service.NewLifecycleService(params, activity),
			log,
		),
		Company:   v1.NewCompanyHandler(service.NewCompanyService(params, activity), log),
		Dashboard: v1.NewDashboardHandler(service.NewDashboardService(params), log),
		Plan:      v1.NewPlanHandler(plans, log),
		Admin:     v1.NewAdminHandler(service.NewAdminService(params, directory, activity), log),
	}

	return NewRouter(handlers, RouterParams{
		Config:       s.GetConfig(),
		Logger:       log,
		Sentry:       s.GetSentry(),
		AuthProvider: s.GetAuthProvider(),
		Directory:    directory,
		RateLimiter:  limiter,
	})
}

func (s *RouterSuite) do(router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&payload).Encode(body))
	}
	req := httptest.NewRequest(method, path, &payload)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(types.HeaderAuthorization, "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func (s *RouterSuite) decode(w *httptest.ResponseRecorder, out any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

func (s *RouterSuite) login(email string) string {
	w := s.do(s.router, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var resp dto.LoginResponse
	s.decode(w, &resp)
	return resp.Token
}

func (s *RouterSuite) TestHealth() {
	for _, path := range []string{"/health", "/api/health"} {
		w := s.do(s.router, http.MethodGet, path, "", nil)
		s.Equal(http.StatusOK, w.Code, path)
		s.JSONEq(`{"status":"ok"}`, w.Body.String())
	}
}

func (s *RouterSuite) TestPrivateRoutesRequireToken() {
	for _, path := range []string{"/api/invoices", "/api/auth/me", "/api/dashboard/stats", "/api/admin/tenants"} {
		w := s.do(s.router, http.MethodGet, path, "", nil)
		s.Equal(http.StatusUnauthorized, w.Code, path)
	}
}

func (s *RouterSuite) TestLoginRejectsBadPayload() {
	w := s.do(s.router, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "nope"})
	s.Equal(http.StatusBadRequest, w.Code)

	var body ierr.ErrorResponse
	s.decode(w, &body)
	s.NotEmpty(body.Errors)
}

func (s *RouterSuite) TestInvoiceFlow() {
	token := s.login("owner@globex-supplier.test")

	w := s.do(s.router, http.MethodGet, "/api/auth/me", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	s.GetLLM().Respond(generatedDraft)
	w = s.do(s.router, http.MethodPost, "/api/invoices/generate", token, dto.GenerateInvoiceRequest{
		Description: "4 hours of consulting for Globex at 125 EUR",
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var generated dto.GenerateInvoiceResponse
	s.decode(w, &generated)
	s.Equal("INV-0001", generated.Invoice.InvoiceNumber)
	s.Equal("500.00", generated.Invoice.Total)
	s.Len(generated.Items, 1)

	w = s.do(s.router, http.MethodGet, "/api/invoices?status=draft&search=glob", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var listed []*dto.InvoiceResponse
	s.decode(w, &listed)
	s.Len(listed, 1)

	w = s.do(s.router, http.MethodGet, "/api/invoices/"+generated.Invoice.ID, token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var detail dto.InvoiceDetailResponse
	s.decode(w, &detail)
	s.Equal(generated.Invoice.ID, detail.ID)
	s.Len(detail.Items, 1)

	w = s.do(s.router, http.MethodPost, "/api/invoices/"+generated.Invoice.ID+"/send", token, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var sent dto.SendInvoiceResponse
	s.decode(w, &sent)
	s.True(sent.Success)
	s.Equal(types.InvoiceStatusSent, sent.Invoice.Status)
	s.Len(s.GetEmailSender().Messages(), 1)

	w = s.do(s.router, http.MethodPatch, "/api/invoices/"+generated.Invoice.ID+"/status", token, dto.UpdateInvoiceStatusRequest{
		Status: types.InvoiceStatus("overdue"),
	})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(s.router, http.MethodPatch, "/api/invoices/"+generated.Invoice.ID+"/status", token, dto.UpdateInvoiceStatusRequest{
		Status: types.InvoiceStatusPaid,
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w = s.do(s.router, http.MethodGet, "/api/dashboard/stats", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"totalInvoices":1,"sentInvoices":1,"paidInvoices":1,"totalRevenue":"£500.00"}`, w.Body.String())
}

func (s *RouterSuite) TestTenantIsolation() {
	owner := s.login("owner@acme.test")
	intruder := s.login("someone@else.test")

	s.GetLLM().Respond(generatedDraft)
	w := s.do(s.router, http.MethodPost, "/api/invoices/generate", owner, dto.GenerateInvoiceRequest{Description: "consulting"})
	s.Require().Equal(http.StatusOK, w.Code)
	var generated dto.GenerateInvoiceResponse
	s.decode(w, &generated)

	w = s.do(s.router, http.MethodGet, "/api/invoices/"+generated.Invoice.ID, intruder, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(s.router, http.MethodGet, "/api/invoices", intruder, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`[]`, w.Body.String())
}

func (s *RouterSuite) TestCompanyRoutes() {
	token := s.login("owner@acme.test")

	// login provisions a company named after the user
	w := s.do(s.router, http.MethodGet, "/api/companies/current", token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var current dto.CompanyResponse
	s.decode(w, &current)
	s.Equal("owner's Company", current.Name)

	w = s.do(s.router, http.MethodPost, "/api/companies", token, dto.CreateCompanyRequest{Name: "Second"})
	s.Equal(http.StatusBadRequest, w.Code)
	var dup ierr.ErrorResponse
	s.decode(w, &dup)
	s.Equal("Company already exists", dup.Message)

	w = s.do(s.router, http.MethodPatch, "/api/companies/"+current.ID, token, map[string]any{"name": "Acme Studio"})
	s.Require().Equal(http.StatusOK, w.Code)
	var updated dto.CompanyResponse
	s.decode(w, &updated)
	s.Equal("Acme Studio", updated.Name)
}

func (s *RouterSuite) TestAdminRoutes() {
	member := s.login("owner@acme.test")
	admin := s.login("admin@invoiceai.test")

	w := s.do(s.router, http.MethodGet, "/api/admin/tenants", member, nil)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.do(s.router, http.MethodGet, "/api/admin/tenants", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var tenants []*dto.TenantMetricsResponse
	s.decode(w, &tenants)
	s.Len(tenants, 2)

	w = s.do(s.router, http.MethodGet, "/api/admin/activity?action=user_login", admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var feed []*dto.ActivityFeedEntry
	s.decode(w, &feed)
	s.Len(feed, 2)

	w = s.do(s.router, http.MethodGet, "/api/plans", member, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var plans []*dto.PlanResponse
	s.decode(w, &plans)
	s.Len(plans, 4)
}

func (s *RouterSuite) TestGenerateIsRateLimited() {
	cfg := *s.GetConfig()
	cfg.RateLimit.GeneratePerMinute = 1
	cfg.RateLimit.Burst = 1
	router := s.newRouter(middleware.NewTenantRateLimiter(&cfg))

	token := s.login("owner@acme.test")
	s.GetLLM().Respond(generatedDraft)

	w := s.do(router, http.MethodPost, "/api/invoices/generate", token, dto.GenerateInvoiceRequest{Description: "consulting"})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.do(router, http.MethodPost, "/api/invoices/generate", token, dto.GenerateInvoiceRequest{Description: "consulting"})
	s.Equal(http.StatusTooManyRequests, w.Code)
	s.NotEmpty(w.Header().Get(types.HeaderRetryAfter))
}
