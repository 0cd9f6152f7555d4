package service

import (
	"errors"
	"testing"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/activity"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/testutil"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/stretchr/testify/suite"
)

type GenerationServiceSuite struct {
	testutil.BaseServiceTestSuite
	service GenerationService
	scope   types.TenantScope
}

func TestGenerationService(t *testing.T) {
	suite.Run(t, new(GenerationServiceSuite))
}

func (s *GenerationServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	params := newTestServiceParams(&s.BaseServiceTestSuite)
	s.service = NewGenerationService(params, NewActivityService(params))
	s.scope = s.CreateTenantWithUser("Acme's Company", "owner@acme.test", types.UserRoleMember)
}

const webDesignDraft = `{
  "client": {"name": "ACME Ltd", "email": "billing@acme.test"},
  "items": [
    {"description": "Web design", "quantity": 10, "price": 50},
    {"description": "Hosting", "quantity": 1, "price": 100}
  ],
  "currency": "GBP",
  "due_date": "2025-03-01"
}`

func (s *GenerationServiceSuite) TestGenerate() {
	s.GetLLM().Respond(webDesignDraft)

	resp, err := s.service.Generate(s.GetContext(), s.scope, &dto.GenerateInvoiceRequest{
		Description: "10 hours web design at £50 for ACME Ltd, plus £100 hosting",
	})
	s.Require().NoError(err)

	inv := resp.Invoice
	s.Equal("INV-0001", inv.InvoiceNumber)
	s.Equal(s.scope.TenantID, inv.TenantID)
	s.Equal(s.scope.UserID, inv.UserID)
	s.Equal("ACME Ltd", inv.ClientName)
	s.Equal("billing@acme.test", *inv.ClientEmail)
	s.Equal(types.InvoiceStatusDraft, inv.Status)
	s.Equal("GBP", inv.Currency)
	s.Equal("600.00", inv.Subtotal)
	s.Equal("0.00", inv.Tax)
	s.Equal("600.00", inv.Total)
	s.Require().NotNil(inv.DueDate)
	s.Contains(*inv.DueDate, "2025-03-01")
	s.Nil(inv.SentAt)
	s.Nil(inv.PaidAt)

	s.Require().Len(resp.Items, 2)
	s.Equal("Web design", resp.Items[0].Description)
	s.Equal("10", resp.Items[0].Quantity)
	s.Equal("50.00", resp.Items[0].UnitPrice)
	s.Equal("500.00", resp.Items[0].Total)
	s.Equal("100.00", resp.Items[1].Total)

	stored, err := s.GetStores().InvoiceRepo.ListItems(s.GetContext(), inv.ID)
	s.NoError(err)
	s.Len(stored, 2)

	logs, err := s.GetStores().ActivityRepo.ListByTenant(s.GetContext(), s.scope.TenantID, string(types.ActivityInvoiceCreated), 10)
	s.NoError(err)
	s.Require().Len(logs, 1)
	s.Equal(activity.Metadata{"invoiceNumber": "INV-0001"}, logs[0].Metadata)

	requests := s.GetLLM().Requests()
	s.Require().Len(requests, 1)
	s.Zero(requests[0].MaxTokens)
	s.Contains(requests[0].UserPrompt, "10 hours web design")
}

func (s *GenerationServiceSuite) TestGenerateNumbersPerTenant() {
	s.GetLLM().Respond(webDesignDraft)
	other := s.CreateTenantWithUser("Other's Company", "other@other.test", types.UserRoleMember)
	req := &dto.GenerateInvoiceRequest{Description: "web design"}

	for _, want := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		resp, err := s.service.Generate(s.GetContext(), s.scope, req)
		s.Require().NoError(err)
		s.Equal(want, resp.Invoice.InvoiceNumber)
	}

	resp, err := s.service.Generate(s.GetContext(), other, req)
	s.Require().NoError(err)
	s.Equal("INV-0001", resp.Invoice.InvoiceNumber)
}

func (s *GenerationServiceSuite) TestGenerateUsesClientHints() {
	s.GetLLM().Respond(`{"client": {"name": ""}, "items": [{"description": "Logo", "quantity": 1, "price": 250.5}]}`)

	resp, err := s.service.Generate(s.GetContext(), s.scope, &dto.GenerateInvoiceRequest{
		Description: "logo design",
		ClientName:  "Jane Doe",
		ClientEmail: "jane@doe.test",
	})
	s.Require().NoError(err)
	s.Equal("Jane Doe", resp.Invoice.ClientName)
	s.Equal("jane@doe.test", *resp.Invoice.ClientEmail)
	s.Equal(types.DefaultCurrency, resp.Invoice.Currency)
	s.Equal("250.50", resp.Invoice.Total)
	s.Nil(resp.Invoice.DueDate)

	prompt := s.GetLLM().Requests()[0].UserPrompt
	s.Contains(prompt, "Client Name: Jane Doe")
	s.Contains(prompt, "Client Email: jane@doe.test")
}

func (s *GenerationServiceSuite) TestGenerateRoundsMoney() {
	s.GetLLM().Respond(`{"client": {"name": "Round Co"}, "items": [
		{"description": "Consulting", "quantity": 1.5, "price": 33.335},
		{"description": "Support", "quantity": 3, "price": 0.1}
	], "currency": "usd"}`)

	resp, err := s.service.Generate(s.GetContext(), s.scope, &dto.GenerateInvoiceRequest{Description: "consulting"})
	s.Require().NoError(err)

	// 50.0025 + 0.3
	s.Equal("50.00", resp.Items[0].Total)
	s.Equal("0.30", resp.Items[1].Total)
	s.Equal("50.30", resp.Invoice.Subtotal)
	s.Equal(resp.Invoice.Subtotal, resp.Invoice.Total)
	s.Equal("USD", resp.Invoice.Currency)
}

func (s *GenerationServiceSuite) TestGenerateKeepsStoredQuantityPrecision() {
	s.GetLLM().Respond(`{"client": {"name": "Round Co"}, "items": [
		{"description": "Licences", "quantity": 1.555, "price": 2}
	]}`)

	resp, err := s.service.Generate(s.GetContext(), s.scope, &dto.GenerateInvoiceRequest{Description: "licences"})
	s.Require().NoError(err)

	s.Equal("1.56", resp.Items[0].Quantity)
	s.Equal("3.12", resp.Items[0].Total)
	s.Equal("3.12", resp.Invoice.Total)
}

func (s *GenerationServiceSuite) TestGenerateFailures() {
	testCases := []struct {
		name         string
		description  string
		content      string
		llmErr       error
		expectedKind error
		expectCall   bool
		expectErrors bool
	}{
		{
			name:         "empty_description",
			description:  "   ",
			expectedKind: ierr.ErrValidation,
			expectErrors: true,
		},
		{
			name:         "empty_model_output",
			description:  "web design",
			content:      "",
			expectedKind: ierr.ErrGenerationMalformed,
			expectCall:   true,
		},
		{
			name:         "malformed_json",
			description:  "web design",
			content:      `{"client": {"name": "ACME"`,
			expectedKind: ierr.ErrGenerationMalformed,
			expectCall:   true,
		},
		{
			name:         "missing_items",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": []}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "missing_client_name",
			description:  "web design",
			content:      `{"client": {}, "items": [{"description": "Design", "quantity": 1, "price": 10}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "wrong_types",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": "ten", "price": 10}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "non_positive_price",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1, "price": 0}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "currency_not_a_code",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1, "price": 500}], "currency": "POUNDS"}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "price_above_column_limit",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1.555, "price": 1e12}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "line_total_above_column_limit",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1000, "price": 1000000}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "total_above_column_limit",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1, "price": 60000000}, {"description": "Build", "quantity": 1, "price": 60000000}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "quantity_rounds_to_zero",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 0.001, "price": 10}]}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "bad_due_date",
			description:  "web design",
			content:      `{"client": {"name": "ACME"}, "items": [{"description": "Design", "quantity": 1, "price": 10}], "due_date": "next tuesday"}`,
			expectedKind: ierr.ErrGenerationInvalid,
			expectCall:   true,
			expectErrors: true,
		},
		{
			name:         "upstream_failure",
			description:  "web design",
			llmErr:       errors.New("connection reset"),
			expectedKind: ierr.ErrGenerationUpstreamFailure,
			expectCall:   true,
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.GetLLM().Reset()
			if tc.llmErr != nil {
				s.GetLLM().Fail(tc.llmErr)
			} else {
				s.GetLLM().Respond(tc.content)
			}

			resp, err := s.service.Generate(s.GetContext(), s.scope, &dto.GenerateInvoiceRequest{
				Description: tc.description,
			})
			s.Nil(resp)
			s.Require().Error(err)
			s.True(ierr.Is(err, tc.expectedKind), "unexpected error kind: %v", err)

			if tc.expectErrors {
				s.NotEmpty(ierr.ValidationMessages(err))
			}
			if tc.expectCall {
				s.Len(s.GetLLM().Requests(), 1)
			} else {
				s.Empty(s.GetLLM().Requests())
			}

			count, err := s.GetStores().InvoiceRepo.CountByTenant(s.GetContext(), s.scope.TenantID)
			s.NoError(err)
			s.Zero(count)
		})
	}
}
