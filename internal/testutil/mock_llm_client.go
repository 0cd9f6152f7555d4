package testutil

import (
	"context"
	"sync"

	"github.com/invoiceai/invoiceai/internal/llm"
)

var _ llm.Client = (*MockLLMClient)(nil)

// MockLLMClient returns a canned completion and records every request
type MockLLMClient struct {
	mu       sync.Mutex
	content  string
	err      error
	requests []llm.CompletionRequest
}

func NewMockLLMClient() *MockLLMClient {
	return &MockLLMClient{}
}

// Respond sets the content returned by the next calls
func (m *MockLLMClient) Respond(content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = content
	m.err = nil
}

// Fail makes the next calls return err
func (m *MockLLMClient) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockLLMClient) CompleteJSON(ctx context.Context, req llm.CompletionRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}

// Requests returns the recorded requests
func (m *MockLLMClient) Requests() []llm.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]llm.CompletionRequest(nil), m.requests...)
}

func (m *MockLLMClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content = ""
	m.err = nil
	m.requests = nil
}
