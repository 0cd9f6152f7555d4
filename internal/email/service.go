package email

import (
	"context"

	"github.com/invoiceai/invoiceai/internal/logger"
)

// Email is the notification dispatcher for invoices
type Email struct {
	sender Sender
	logger *logger.Logger
}

// NewEmail creates a new email service
func NewEmail(sender Sender, logger *logger.Logger) *Email {
	return &Email{
		sender: sender,
		logger: logger,
	}
}

// SendInvoiceEmail renders the invoice and sends it to the invoice's client.
// It never returns an error: every failure is reported in the response.
func (s *Email) SendInvoiceEmail(ctx context.Context, data InvoiceEmailData) *SendEmailResponse {
	if !s.sender.IsEnabled() {
		s.logger.Warnw("email client is disabled, skipping invoice email",
			"invoice_id", data.Invoice.ID,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   NotConfiguredMessage,
		}
	}

	to := ""
	if data.Invoice.ClientEmail != nil {
		to = *data.Invoice.ClientEmail
	}

	html, err := RenderInvoiceHTML(data)
	if err != nil {
		s.logger.Errorw("failed to render invoice email", "invoice_id", data.Invoice.ID, "error", err)
		return &SendEmailResponse{Success: false, Error: err.Error()}
	}

	text, err := RenderInvoiceText(data)
	if err != nil {
		s.logger.Errorw("failed to render invoice email text", "invoice_id", data.Invoice.ID, "error", err)
		return &SendEmailResponse{Success: false, Error: err.Error()}
	}

	subject := Subject(data)
	messageID, err := s.sender.Send(ctx, Message{
		From:    s.sender.GetFromAddress(),
		To:      to,
		Subject: subject,
		HTML:    html,
		Text:    text,
	})
	if err != nil {
		s.logger.Errorw("failed to send invoice email",
			"error", err,
			"invoice_id", data.Invoice.ID,
			"subject", subject,
		)
		return &SendEmailResponse{
			Success: false,
			Error:   err.Error(),
		}
	}

	s.logger.Infow("invoice email sent",
		"message_id", messageID,
		"invoice_id", data.Invoice.ID,
		"subject", subject,
	)

	return &SendEmailResponse{
		MessageID: messageID,
		Success:   true,
	}
}
