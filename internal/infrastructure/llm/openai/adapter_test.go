package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"
	"newsletter-agent/internal/infrastructure/logger"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Model       string  `json:"model"`
	Temperature float32 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newChatServer(t *testing.T, reply string, captured *capturedRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(captured))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{
				Message: openai.ChatCompletionMessage{Role: "assistant", Content: reply},
			}},
		})
	}))
}

func TestAdapter_Chat(t *testing.T) {
	var got capturedRequest
	srv := newChatServer(t, `[{"url":"https://example.com"}]`, &got)
	defer srv.Close()

	a := New(Config{APIKey: "sk-test", Model: "gpt-3.5-turbo", BaseURL: srv.URL, Logger: logger.NewNop()})

	resp, err := a.Chat(context.Background(), output.ChatRequest{
		Messages: []output.Message{
			{Role: output.RoleSystem, Content: "system"},
			{Role: output.RoleUser, Content: "hello"},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	})
	require.NoError(t, err)

	assert.Equal(t, output.RoleAssistant, resp.Message.Role)
	assert.Equal(t, `[{"url":"https://example.com"}]`, resp.Message.Content)

	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	assert.InDelta(t, 0.1, got.Temperature, 0.0001)
	assert.Equal(t, 2000, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}

func TestAdapter_Chat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	a := New(Config{APIKey: "sk-test", Model: "m", BaseURL: srv.URL})

	_, err := a.Chat(context.Background(), output.ChatRequest{})
	assert.ErrorIs(t, err, entity.ErrParse)
}

func TestAdapter_Chat_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad key","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	a := New(Config{APIKey: "sk-test", Model: "m", BaseURL: srv.URL})

	_, err := a.Chat(context.Background(), output.ChatRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrRemoteAPI)
	assert.Contains(t, err.Error(), "status 401")
}

func TestAdapter_Chat_Canceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(Config{APIKey: "sk-test", Model: "m", BaseURL: srv.URL})

	_, err := a.Chat(ctx, output.ChatRequest{})
	assert.ErrorIs(t, err, entity.ErrTimeout)
}

func TestConvertMessages(t *testing.T) {
	result := convertMessages([]output.Message{
		{Role: output.RoleSystem, Content: "a"},
		{Role: output.RoleUser, Content: "b"},
	})

	require.Len(t, result, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, result[0].Role)
	assert.Equal(t, "b", result[1].Content)
}
