package service

import (
	"time"

	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/shopspring/decimal"
)

// newTestServiceParams wires ServiceParams onto the suite's in-memory stores and fakes
func newTestServiceParams(s *testutil.BaseServiceTestSuite) ServiceParams {
	stores := s.GetStores()
	return ServiceParams{
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
}

// seedInvoice stores a draft invoice with one line item for scope's tenant
func seedInvoice(s *testutil.BaseServiceTestSuite, scope types.TenantScope, number, clientName string, clientEmail *string) *invoice.Invoice {
	return seedInvoiceAt(s, scope, number, clientName, clientEmail, time.Now().UTC())
}

func seedInvoiceAt(s *testutil.BaseServiceTestSuite, scope types.TenantScope, number, clientName string, clientEmail *string, now time.Time) *invoice.Invoice {
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		TenantID:      scope.TenantID,
		UserID:        scope.UserID,
		InvoiceNumber: number,
		ClientName:    clientName,
		ClientEmail:   clientEmail,
		Status:        types.InvoiceStatusDraft,
		Currency:      types.DefaultCurrency,
		Subtotal:      decimal.NewFromInt(600),
		Tax:           decimal.Zero,
		Total:         decimal.NewFromInt(600),
		IssuedDate:    now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	s.Require().NoError(s.GetStores().InvoiceRepo.Create(s.GetContext(), inv))
	s.Require().NoError(s.GetStores().InvoiceRepo.CreateItems(s.GetContext(), []*invoice.InvoiceItem{{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
		InvoiceID:   inv.ID,
		Description: "Web design",
		Quantity:    decimal.NewFromInt(12),
		UnitPrice:   decimal.NewFromInt(50),
		Total:       decimal.NewFromInt(600),
		CreatedAt:   now,
	}}))
	return inv
}
