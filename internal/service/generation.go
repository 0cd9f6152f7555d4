package service

import (
	"context"
	"fmt"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/llm"
	"github.com/invoiceai/invoiceai/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// maxStoredAmount is the largest value a NUMERIC(10,2) money column holds
var maxStoredAmount = decimal.RequireFromString("99999999.99")

// GenerationService turns a free-text work description into a persisted
// draft invoice with one language model call.
type GenerationService interface {
	Generate(ctx context.Context, scope types.TenantScope, req *dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error)
}

type generationService struct {
	ServiceParams
	activity ActivityService
}

func NewGenerationService(params ServiceParams, activity ActivityService) GenerationService {
	return &generationService{
		ServiceParams: params,
		activity:      activity,
	}
}

func (s *generationService) Generate(ctx context.Context, scope types.TenantScope, req *dto.GenerateInvoiceRequest) (*dto.GenerateInvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	content, err := s.LLM.CompleteJSON(ctx, llm.CompletionRequest{
		SystemPrompt: generationSystemPrompt,
		UserPrompt:   buildGenerationUserPrompt(req.Description, req.ClientName, req.ClientEmail),
	})
	if err != nil {
		s.Logger.Errorw("invoice generation model call failed",
			"tenant_id", scope.TenantID,
			"request_id", types.GetRequestID(ctx),
			"error", err,
		)
		if ierr.Is(err, ierr.ErrGenerationUpstreamFailure) {
			return nil, err
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to generate invoice. Please try again.").
			Mark(ierr.ErrGenerationUpstreamFailure)
	}

	draft, err := decodeInvoiceDraft(content, req.ClientName, req.ClientEmail)
	if err != nil {
		s.Logger.Warnw("model output rejected",
			"tenant_id", scope.TenantID,
			"request_id", types.GetRequestID(ctx),
			"error", err,
		)
		return nil, err
	}

	inv, items, err := s.buildInvoice(scope, draft)
	if err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		// serializes numbering per tenant; the unique index is the backstop
		if err := s.TenantRepo.Lock(ctx, scope.TenantID); err != nil {
			return err
		}

		count, err := s.InvoiceRepo.CountByTenant(ctx, scope.TenantID)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = fmt.Sprintf(types.InvoiceNumberFormat, count+1)

		if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
			return err
		}
		if err := s.InvoiceRepo.CreateItems(ctx, items); err != nil {
			return err
		}

		return s.activity.Record(ctx, scope, RecordActivityParams{
			Action:     types.ActivityInvoiceCreated,
			EntityType: types.EntityTypeInvoice,
			EntityID:   inv.ID,
			Metadata:   map[string]any{"invoiceNumber": inv.InvoiceNumber},
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("generated invoice",
		"tenant_id", scope.TenantID,
		"invoice_id", inv.ID,
		"invoice_number", inv.InvoiceNumber,
		"items", len(items),
		"request_id", types.GetRequestID(ctx),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return &dto.GenerateInvoiceResponse{
		Invoice: dto.NewInvoiceResponse(inv),
		Items:   dto.NewInvoiceItemResponses(items),
	}, nil
}

// buildInvoice applies the money rules: quantities are kept to 2 places,
// each line total is quantity times price rounded to 2 places, the subtotal
// is the rounded sum of the unrounded products, tax is zero and the total
// equals the subtotal. Amounts must fit the stored NUMERIC(10,2) columns.
func (s *generationService) buildInvoice(scope types.TenantScope, draft *invoiceDraft) (*invoice.Invoice, []*invoice.InvoiceItem, error) {
	dueDate, err := types.ParseDueDate(draft.DueDate)
	if err != nil {
		return nil, nil, ierr.NewError("model returned an invalid due date").
			WithHint(generationInvalidHint).
			WithValidationErrors([]string{fmt.Sprintf("due_date: %q is not a date in YYYY-MM-DD format", draft.DueDate)}).
			Mark(ierr.ErrGenerationInvalid)
	}

	now := time.Now().UTC()
	inv := &invoice.Invoice{
		ID:            types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE),
		TenantID:      scope.TenantID,
		UserID:        scope.UserID,
		ClientName:    draft.Client.Name,
		ClientEmail:   lo.EmptyableToPtr(draft.Client.Email),
		ClientAddress: lo.EmptyableToPtr(draft.Client.Address),
		Status:        types.InvoiceStatusDraft,
		Currency:      types.NormalizeCurrency(draft.Currency),
		Tax:           decimal.Zero,
		Notes:         lo.EmptyableToPtr(draft.Notes),
		IssuedDate:    now,
		DueDate:       dueDate,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	sum := decimal.Zero
	items := make([]*invoice.InvoiceItem, 0, len(draft.Items))
	for _, d := range draft.Items {
		quantity := decimal.NewFromFloat(*d.Quantity).Round(2)
		price := decimal.NewFromFloat(*d.Price)
		product := quantity.Mul(price)
		sum = sum.Add(product)

		items = append(items, &invoice.InvoiceItem{
			ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_INVOICE_LINE_ITEM),
			InvoiceID:   inv.ID,
			Description: d.Description,
			Quantity:    quantity,
			UnitPrice:   price.Round(2),
			Total:       product.Round(2),
			CreatedAt:   now,
		})
	}

	inv.Subtotal = sum.Round(2)
	inv.Total = inv.Subtotal.Add(inv.Tax)

	var overflow []string
	for i, item := range items {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			overflow = append(overflow, fmt.Sprintf("items[%d].quantity: must be at least 0.01", i))
		}
		if item.Total.GreaterThan(maxStoredAmount) {
			overflow = append(overflow, fmt.Sprintf("items[%d]: line total exceeds %s", i, maxStoredAmount.StringFixed(2)))
		}
	}
	if inv.Total.GreaterThan(maxStoredAmount) {
		overflow = append(overflow, fmt.Sprintf("total: exceeds %s", maxStoredAmount.StringFixed(2)))
	}
	if len(overflow) > 0 {
		return nil, nil, ierr.NewError("model returned amounts out of range").
			WithHint(generationInvalidHint).
			WithValidationErrors(overflow).
			Mark(ierr.ErrGenerationInvalid)
	}

	return inv, items, nil
}
