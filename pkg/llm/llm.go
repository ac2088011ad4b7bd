// Package llm forwards chat prompts to a hosted inference provider.
//
// Two providers implement Completer: an OpenAI-compatible /chat/completions
// endpoint (Groq, OpenAI, OpenRouter, local servers) and Google Gemini via
// the GenAI SDK. New picks one from Config.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shashiranjanraj/voucherhub/config"
)

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("llm: AI service not configured")

// Completer sends one system+user exchange and returns the raw reply.
type Completer interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
	// Provider names the backend for metrics and logs.
	Provider() string
}

// Config selects and configures a provider.
type Config struct {
	Provider string // "openai" or "gemini"
	APIKey   string
	BaseURL  string
	Model    string
}

// ConfigFromEnv reads the AI_* keys.
func ConfigFromEnv() Config {
	return Config{
		Provider: config.AIProvider(),
		APIKey:   config.AIAPIKey(),
		BaseURL:  config.AIBaseURL(),
		Model:    config.AIModel(),
	}
}

// New builds the configured provider. It returns ErrNotConfigured when the
// key is missing so callers can still boot and answer 500 per request.
func New(ctx context.Context, cfg Config) (Completer, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}

	switch cfg.Provider {
	case "", "openai":
		return NewOpenAI(cfg), nil
	case "gemini":
		return NewGemini(ctx, cfg)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", cfg.Provider)
	}
}
