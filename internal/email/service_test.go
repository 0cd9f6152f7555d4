package email

import (
	"context"
	"errors"
	"testing"

	"github.com/invoiceai/invoiceai/internal/config"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSender struct {
	enabled  bool
	err      error
	messages []Message
}

func (r *recordingSender) IsEnabled() bool        { return r.enabled }
func (r *recordingSender) GetFromAddress() string { return "InvoiceAI <noreply@invoiceai.test>" }

func (r *recordingSender) Send(_ context.Context, msg Message) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	r.messages = append(r.messages, msg)
	return "msg_123", nil
}

func TestSendInvoiceEmail(t *testing.T) {
	ctx := context.Background()

	t.Run("sends rendered invoice to the client", func(t *testing.T) {
		sender := &recordingSender{enabled: true}
		svc := NewEmail(sender, logger.NewNopLogger())

		resp := svc.SendInvoiceEmail(ctx, testInvoiceData("GBP"))
		assert.True(t, resp.Success)
		assert.Equal(t, "msg_123", resp.MessageID)
		assert.Empty(t, resp.Error)

		require.Len(t, sender.messages, 1)
		msg := sender.messages[0]
		assert.Equal(t, "ap@globex.test", msg.To)
		assert.Equal(t, "InvoiceAI <noreply@invoiceai.test>", msg.From)
		assert.Equal(t, "Invoice INV-0007 from Your Company", msg.Subject)
		assert.Contains(t, msg.HTML, "£600.00")
		assert.Contains(t, msg.Text, "Total: £600.00")
	})

	t.Run("not configured", func(t *testing.T) {
		sender := &recordingSender{enabled: false}
		svc := NewEmail(sender, logger.NewNopLogger())

		resp := svc.SendInvoiceEmail(ctx, testInvoiceData("GBP"))
		assert.False(t, resp.Success)
		assert.Equal(t, NotConfiguredMessage, resp.Error)
		assert.Empty(t, sender.messages)
	})

	t.Run("transport failure", func(t *testing.T) {
		sender := &recordingSender{enabled: true, err: errors.New("domain not verified")}
		svc := NewEmail(sender, logger.NewNopLogger())

		resp := svc.SendInvoiceEmail(ctx, testInvoiceData("GBP"))
		assert.False(t, resp.Success)
		assert.Equal(t, "domain not verified", resp.Error)
		assert.Empty(t, resp.MessageID)
	})
}

func TestNewEmailClient(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.Email.APIKey = ""
	cfg.Email.FromAddress = "InvoiceAI <noreply@invoiceai.test>"

	disabled := NewEmailClient(cfg)
	assert.False(t, disabled.IsEnabled())
	assert.Equal(t, "InvoiceAI <noreply@invoiceai.test>", disabled.GetFromAddress())

	_, err := disabled.Send(context.Background(), Message{To: "a@b.test"})
	assert.Error(t, err)

	cfg.Email.APIKey = "re_test_key"
	assert.True(t, NewEmailClient(cfg).IsEnabled())
}
