package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/invoiceai/invoiceai/internal/config"
	ierr "github.com/invoiceai/invoiceai/internal/errors"
	"github.com/invoiceai/invoiceai/internal/logger"
	"github.com/invoiceai/invoiceai/internal/sentry"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := config.GetDefaultConfig()
	cfg.OpenAI.APIKey = "sk-test"
	cfg.OpenAI.BaseURL = server.URL + "/v1"
	cfg.OpenAI.Timeout = 5 * time.Second

	log := logger.NewNopLogger()
	return NewOpenAIClient(cfg, log, sentry.NewSentryService(cfg, log)), server
}

func TestCompleteJSON(t *testing.T) {
	var received openai.ChatCompletionRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID: "chatcmpl-1",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: `{"items":[]}`},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	})

	content, err := client.CompleteJSON(context.Background(), CompletionRequest{
		SystemPrompt: "system",
		UserPrompt:   "user",
		MaxTokens:    512,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"items":[]}`, content)

	assert.Equal(t, "gpt-4o-mini", received.Model)
	assert.Equal(t, 512, received.MaxCompletionTokens)
	require.NotNil(t, received.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, received.ResponseFormat.Type)
	require.Len(t, received.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, received.Messages[0].Role)
	assert.Equal(t, "user", received.Messages[1].Content)
}

func TestCompleteJSONUsesConfiguredMaxTokens(t *testing.T) {
	var received openai.ChatCompletionRequest
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-3","choices":[]}`))
	})

	_, err := client.CompleteJSON(context.Background(), CompletionRequest{UserPrompt: "user"})
	require.NoError(t, err)
	assert.Equal(t, config.GetDefaultConfig().OpenAI.MaxCompletionTokens, received.MaxCompletionTokens)
}

func TestCompleteJSONNoChoices(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"chatcmpl-2","choices":[]}`))
	})

	content, err := client.CompleteJSON(context.Background(), CompletionRequest{UserPrompt: "user"})
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestCompleteJSONUpstreamError(t *testing.T) {
	calls := 0
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	})

	_, err := client.CompleteJSON(context.Background(), CompletionRequest{UserPrompt: "user"})
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrGenerationUpstreamFailure))
	assert.Equal(t, 1, calls)
}

func TestCompleteJSONNotConfigured(t *testing.T) {
	cfg := config.GetDefaultConfig()
	log := logger.NewNopLogger()
	client := NewOpenAIClient(cfg, log, sentry.NewSentryService(cfg, log))

	_, err := client.CompleteJSON(context.Background(), CompletionRequest{UserPrompt: "user"})
	require.Error(t, err)
	assert.True(t, ierr.Is(err, ierr.ErrGenerationUpstreamFailure))
	assert.Contains(t, ierr.DisplayMessage(err), "OPENAI_API_KEY")
}
