// Package chat talks to OpenAI-compatible chat-completion endpoints.
package chat

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	DefaultBaseURL = "https://api.openai.com/v1"

	RoleSystem = "system"
	RoleUser   = "user"
)

// ErrMalformedResponse is returned when the response lacks
// choices[0].message.content.
var ErrMalformedResponse = errors.New("malformed chat completion response")

// HTTPError reports a non-2xx status from the endpoint.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("API returned status %d", e.Status)
	}
	return fmt.Sprintf("API returned status %d: %s", e.Status, e.Body)
}

// Completer performs a single system+user chat completion and returns the
// assistant message text.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userText, model string) (string, error)
}

type Config struct {
	APIKey  string        `mapstructure:"api_key" json:"api_key"`
	BaseURL string        `mapstructure:"base_url" json:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" json:"timeout"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// NewRequest builds the two-message request used by every call site.
func NewRequest(systemPrompt, userText, model string) Request {
	return Request{
		Model: model,
		Messages: []Message{
			{Role: RoleSystem, Content: systemPrompt},
			{Role: RoleUser, Content: userText},
		},
	}
}

type Response struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Content returns the first choice's message content.
func (r *Response) Content() (string, error) {
	if len(r.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	c := r.Choices[0].Message.Content
	if c == nil {
		return "", fmt.Errorf("%w: choices[0].message.content missing", ErrMalformedResponse)
	}
	return *c, nil
}
