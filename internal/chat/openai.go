package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.uber.org/zap"
)

// OpenAIClient completes through the openai-go SDK. SDK retries are disabled
// so a call is a single round trip.
type OpenAIClient struct {
	client *openai.Client
	log    *zap.Logger
}

func NewOpenAIClient(cfg Config, log *zap.Logger) *OpenAIClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}

	opts := []option.RequestOption{
		option.WithBaseURL(strings.TrimRight(baseURL, "/") + "/"),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	client := openai.NewClient(opts...)
	return &OpenAIClient{client: &client, log: log}
}

func (c *OpenAIClient) Complete(ctx context.Context, systemPrompt, userText, model string) (string, error) {
	c.log.Debug("sending chat completion", zap.String("model", model), zap.String("backend", "openai"))

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userText),
		},
		Model: model,
	})
	if err != nil {
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			c.log.Warn("chat completion failed", zap.Int("status", apiErr.StatusCode))
			return "", &HTTPError{Status: apiErr.StatusCode, Body: apiErr.Message}
		}
		return "", fmt.Errorf("request failed: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	msg := completion.Choices[0].Message
	if !msg.JSON.Content.Valid() {
		return "", fmt.Errorf("%w: choices[0].message.content missing", ErrMalformedResponse)
	}
	return msg.Content, nil
}
