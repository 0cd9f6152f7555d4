// Package llm is the boundary to the hosted language model.
package llm

import (
	"context"
)

// CompletionRequest is a single system+user exchange constrained to JSON output
type CompletionRequest struct {
	SystemPrompt string
	UserPrompt   string
	// MaxTokens overrides the configured completion budget when positive
	MaxTokens int
}

// Client performs exactly one model call per Complete invocation.
// Implementations never retry.
type Client interface {
	// CompleteJSON returns the raw text content of the first choice.
	// An empty string means the model produced no content.
	CompleteJSON(ctx context.Context, req CompletionRequest) (string, error)
}
