package email

import (
	"context"
	"fmt"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/resend/resend-go/v2"
)

const defaultSendTimeout = 15 * time.Second

// Message is a single outbound email
type Message struct {
	From    string
	To      string
	Subject string
	HTML    string
	Text    string
}

// Sender hands a message to the email transport and returns its message id
type Sender interface {
	IsEnabled() bool
	GetFromAddress() string
	Send(ctx context.Context, msg Message) (string, error)
}

// EmailClient represents an email client wrapper
type EmailClient struct {
	client      *resend.Client
	enabled     bool
	fromAddress string
	replyTo     string
	timeout     time.Duration
}

// NewEmailClient creates a new email client. Without an API key the client
// is disabled and every send is reported as not configured.
func NewEmailClient(cfg *config.Configuration) Sender {
	timeout := cfg.Email.Timeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}

	if cfg.Email.APIKey == "" {
		return &EmailClient{
			enabled:     false,
			fromAddress: cfg.Email.FromAddress,
			timeout:     timeout,
		}
	}

	return &EmailClient{
		client:      resend.NewClient(cfg.Email.APIKey),
		enabled:     true,
		fromAddress: cfg.Email.FromAddress,
		replyTo:     cfg.Email.ReplyTo,
		timeout:     timeout,
	}
}

// IsEnabled returns whether the email client is enabled
func (c *EmailClient) IsEnabled() bool {
	return c.enabled
}

// GetFromAddress returns the default from address
func (c *EmailClient) GetFromAddress() string {
	return c.fromAddress
}

// Send sends an HTML email with an optional plain text alternative
func (c *EmailClient) Send(ctx context.Context, msg Message) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("email client is disabled")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	from := msg.From
	if from == "" {
		from = c.fromAddress
	}

	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
		Text:    msg.Text,
	}

	if c.replyTo != "" {
		params.ReplyTo = c.replyTo
	}

	sent, err := c.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return "", fmt.Errorf("failed to send email: %w", err)
	}

	return sent.Id, nil
}
