package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"newsletter-agent/internal/application/port/output"
	"newsletter-agent/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*Adapter)(nil)

type Adapter struct {
	client *openai.Client
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Logger  output.LoggerPort
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyLen int
	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		bodyLen = len(bodyBytes)
	}

	t.logger.Debug("HTTP request",
		"method", req.Method,
		"url", req.URL.String(),
		"bodyBytes", bodyLen,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP transport error", "url", req.URL.String(), "error", err)
		return nil, err
	}

	t.logger.Debug("HTTP response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}

func New(cfg Config) *Adapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if cfg.Logger != nil {
		config.HTTPClient = &http.Client{
			Transport: &loggingTransport{
				base:   http.DefaultTransport,
				logger: cfg.Logger,
			},
		}
	}

	return &Adapter{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
		logger: cfg.Logger,
	}
}

func (a *Adapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, chatError(ctx, err)
	}

	if len(resp.Choices) == 0 {
		return nil, entity.NewError(entity.KindParse, "no choices in response", nil)
	}

	if a.logger != nil {
		a.logger.Debug("chat completion",
			"model", resp.Model,
			"promptTokens", resp.Usage.PromptTokens,
			"completionTokens", resp.Usage.CompletionTokens,
		)
	}

	return &output.ChatResponse{
		Message: output.Message{
			Role:    output.MessageRole(resp.Choices[0].Message.Role),
			Content: resp.Choices[0].Message.Content,
		},
	}, nil
}

func chatError(ctx context.Context, err error) error {
	var apiErr *openai.APIError
	switch {
	case errors.As(err, &apiErr):
		return entity.NewError(entity.KindRemoteAPI, fmt.Sprintf("chat completion failed with status %d", apiErr.HTTPStatusCode), err)
	case ctx.Err() != nil:
		return entity.NewError(entity.KindTimeout, "chat completion failed", err)
	default:
		return entity.NewError(entity.KindNetwork, "chat completion failed", err)
	}
}

func convertMessages(messages []output.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}
