// Package ai adapts a Gemini-compatible text generation API for note
// integration. It is the only place provider SDK types appear.
package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ueser-furina/noote-website/internal/entity"
)

const defaultTimeout = 120 * time.Second

// Config carries the provider settings shared by every client. The API key
// is deliberately not part of it: callers supply one per request and it is
// never stored.
type Config struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// Client issues single synchronous generation calls against a fixed model.
// It holds no state besides the configured credential.
type Client struct {
	client *openai.Client
	model  string
}

// New builds a client for one caller-supplied API key. An empty key fails
// with entity.ErrMissingAPIKey before any network activity.
func New(cfg Config, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, entity.ErrMissingAPIKey
	}

	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	clientConfig.HTTPClient = &http.Client{Timeout: timeout}

	return &Client{
		client: openai.NewClientWithConfig(clientConfig),
		model:  cfg.Model,
	}, nil
}

// Generate sends the prompt as the sole input of one completion request and
// returns the trimmed text. Every provider failure, including an empty
// response body, surfaces as entity.ErrProvider with the cause attached.
func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrProvider, err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", entity.ErrProvider)
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("%w: empty response", entity.ErrProvider)
	}

	return text, nil
}
