package service

import (
	"context"
	"time"

	"github.com/invoiceai/invoiceai/internal/api/dto"
	"github.com/invoiceai/invoiceai/internal/domain/invoice"
	"github.com/invoiceai/invoiceai/internal/email"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/types"
)

// LifecycleService moves invoices between statuses and delivers them
type LifecycleService interface {
	SetStatus(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error)
	// Send emails the invoice to its client and marks it sent. Nothing is
	// changed when delivery fails.
	Send(ctx context.Context, scope types.TenantScope, id string) (*dto.SendInvoiceResponse, error)
}

type lifecycleService struct {
	ServiceParams
	activity ActivityService
}

func NewLifecycleService(params ServiceParams, activity ActivityService) LifecycleService {
	return &lifecycleService{
		ServiceParams: params,
		activity:      activity,
	}
}

func (s *lifecycleService) SetStatus(ctx context.Context, scope types.TenantScope, id string, req *dto.UpdateInvoiceStatusRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv, err := getOwnedInvoice(ctx, s.InvoiceRepo, scope, id)
	if err != nil {
		return nil, err
	}

	var updated *invoice.Invoice
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		update := invoice.StatusTransition(inv, req.Status, time.Now().UTC())
		updated, err = s.InvoiceRepo.Update(ctx, inv.ID, update)
		if err != nil {
			return err
		}

		return s.activity.Record(ctx, scope, RecordActivityParams{
			Action:     types.ActivityForInvoiceStatus(req.Status),
			EntityType: types.EntityTypeInvoice,
			EntityID:   inv.ID,
			Metadata:   map[string]any{"invoiceNumber": inv.InvoiceNumber},
		})
	})
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("invoice status updated",
		"tenant_id", scope.TenantID,
		"invoice_id", inv.ID,
		"from", inv.Status,
		"to", req.Status,
	)

	return dto.NewInvoiceResponse(updated), nil
}

func (s *lifecycleService) Send(ctx context.Context, scope types.TenantScope, id string) (*dto.SendInvoiceResponse, error) {
	inv, err := getOwnedInvoice(ctx, s.InvoiceRepo, scope, id)
	if err != nil {
		return nil, err
	}

	if !inv.HasClientEmail() {
		return nil, ierr.NewError("invoice has no client email").
			WithHint("Client email is required to send invoice").
			WithValidationErrors([]string{"clientEmail: is required to send an invoice"}).
			Mark(ierr.ErrNoClientEmail)
	}

	items, err := s.InvoiceRepo.ListItems(ctx, inv.ID)
	if err != nil {
		return nil, err
	}

	comp, err := s.CompanyRepo.GetByTenant(ctx, scope.TenantID)
	if err != nil {
		if !ierr.IsNotFound(err) {
			return nil, err
		}
		comp = nil
	}

	result := s.Email.SendInvoiceEmail(ctx, email.InvoiceEmailData{
		Invoice: inv,
		Items:   items,
		Company: comp,
	})
	if !result.Success {
		s.Sentry.AddBreadcrumb("email", "invoice email failed", map[string]interface{}{
			"invoice_id": inv.ID,
		})
		return nil, ierr.NewError(result.Error).
			WithHint(result.Error).
			WithReportableDetails(map[string]any{"invoice_id": inv.ID}).
			Mark(ierr.ErrNotificationUpstreamFailure)
	}

	var updated *invoice.Invoice
	err = s.DB.WithTx(ctx, func(ctx context.Context) error {
		update := invoice.StatusTransition(inv, types.InvoiceStatusSent, time.Now().UTC())
		updated, err = s.InvoiceRepo.Update(ctx, inv.ID, update)
		if err != nil {
			return err
		}

		return s.activity.Record(ctx, scope, RecordActivityParams{
			Action:     types.ActivityInvoiceSent,
			EntityType: types.EntityTypeInvoice,
			EntityID:   inv.ID,
			Metadata: map[string]any{
				"invoiceNumber": inv.InvoiceNumber,
				"sentTo":        *inv.ClientEmail,
				"messageId":     result.MessageID,
			},
		})
	})
	if err != nil {
		s.Logger.Errorw("invoice emailed but not marked sent",
			"tenant_id", scope.TenantID,
			"invoice_id", inv.ID,
			"message_id", result.MessageID,
			"error", err,
		)
		return nil, err
	}

	s.Logger.Infow("invoice sent",
		"tenant_id", scope.TenantID,
		"invoice_id", inv.ID,
		"message_id", result.MessageID,
		"request_id", types.GetRequestID(ctx),
	)

	return &dto.SendInvoiceResponse{
		Success: true,
		Invoice: dto.NewInvoiceResponse(updated),
	}, nil
}
