package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/invoiceai/invoiceai/internal/email"
)

var _ email.Sender = (*MockEmailSender)(nil)

// MockEmailSender captures outbound messages instead of sending them
type MockEmailSender struct {
	mu       sync.Mutex
	enabled  bool
	from     string
	err      error
	messages []email.Message
}

func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{
		enabled: true,
		from:    "InvoiceAI <noreply@invoiceai.com>",
	}
}

func (m *MockEmailSender) IsEnabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func (m *MockEmailSender) GetFromAddress() string {
	return m.from
}

// SetEnabled toggles whether the sender reports itself configured
func (m *MockEmailSender) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// Fail makes the next sends return err
func (m *MockEmailSender) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockEmailSender) Send(ctx context.Context, msg email.Message) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return "", m.err
	}
	m.messages = append(m.messages, msg)
	return fmt.Sprintf("msg_%d", len(m.messages)), nil
}

// Messages returns the captured messages
func (m *MockEmailSender) Messages() []email.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]email.Message(nil), m.messages...)
}

func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = true
	m.err = nil
	m.messages = nil
}
