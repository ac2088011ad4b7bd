package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apphttp "github.com/shashiranjanraj/voucherhub/pkg/http"
)

// OpenAI talks to any OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client *apphttp.Client
	apiKey string
	model  string
}

func NewOpenAI(cfg Config) *OpenAI {
	return &OpenAI{
		client: apphttp.NewClient(cfg.BaseURL),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

// WithClient swaps the transport client. Used by tests.
func (o *OpenAI) WithClient(c *apphttp.Client) *OpenAI {
	o.client = c
	return o
}

func (o *OpenAI) Provider() string { return "openai" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (o *OpenAI) Complete(ctx context.Context, system, prompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if strings.TrimSpace(system) != "" {
		messages = append(messages, chatMessage{Role: "system", Content: system})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	resp, err := o.client.Post("/chat/completions").
		WithContext(ctx).
		Bearer(o.apiKey).
		Timeout(60*time.Second).
		Retry(2, time.Second).
		Body(chatRequest{Model: o.model, Messages: messages, Temperature: 0.7, MaxTokens: 2048}).
		Send()
	if err != nil {
		return "", fmt.Errorf("llm/openai: %w", err)
	}
	if err := resp.Throw(); err != nil {
		return "", fmt.Errorf("llm/openai: %w", err)
	}

	var out chatResponse
	if err := resp.JSON(&out); err != nil {
		return "", fmt.Errorf("llm/openai: %w", err)
	}
	if out.Error != nil {
		return "", fmt.Errorf("llm/openai: api error: %s", out.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("llm/openai: no completion returned")
	}
	return out.Choices[0].Message.Content, nil
}
