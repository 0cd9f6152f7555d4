package llm

import (
	"context"
	"errors"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/sashabaranov/go-openai"
)

const defaultTimeout = 60 * time.Second

type OpenAIClient struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
	enabled   bool
	logger    *logger.Logger
	sentry    *sentry.Service
}

func NewOpenAIClient(cfg *config.Configuration, log *logger.Logger, sentry *sentry.Service) Client {
	clientConfig := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAI.BaseURL
	}

	timeout := cfg.OpenAI.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	if cfg.OpenAI.APIKey == "" {
		log.Warn("OpenAI API key not configured, invoice generation will fail")
	}
	log.Infow("initializing OpenAI client", "model", cfg.OpenAI.Model, "timeout", timeout)

	return &OpenAIClient{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     cfg.OpenAI.Model,
		maxTokens: cfg.OpenAI.MaxCompletionTokens,
		timeout:   timeout,
		enabled:   cfg.OpenAI.APIKey != "",
		logger:    log,
		sentry:    sentry,
	}
}

func (o *OpenAIClient) CompleteJSON(ctx context.Context, req CompletionRequest) (string, error) {
	if !o.enabled {
		return "", ierr.NewError("openai api key not configured").
			WithHint("AI generation is not configured. Please add OPENAI_API_KEY to enable it.").
			Mark(ierr.ErrGenerationUpstreamFailure)
	}

	span, ctx := o.sentry.StartHTTPClientSpan(ctx, "openai.chat_completion", map[string]interface{}{
		"model": o.model,
	})
	if span != nil {
		defer span.Finish()
	}

	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	maxTokens := o.maxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	chatReq := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		MaxCompletionTokens: maxTokens,
	}

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		o.logger.Errorw("openai chat completion failed",
			"model", o.model,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		hint := "Failed to generate invoice. Please try again."
		if errors.Is(err, context.DeadlineExceeded) {
			hint = "Invoice generation timed out. Please try again."
		}
		return "", ierr.WithError(err).
			WithHint(hint).
			Mark(ierr.ErrGenerationUpstreamFailure)
	}

	if len(resp.Choices) == 0 {
		o.logger.Warnw("openai returned no choices", "model", o.model)
		return "", nil
	}

	o.logger.Debugw("received openai completion",
		"model", o.model,
		"finish_reason", resp.Choices[0].FinishReason,
		"total_tokens", resp.Usage.TotalTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return resp.Choices[0].Message.Content, nil
}
