package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shashiranjanraj/voucherhub/pkg/llm"
	"github.com/shashiranjanraj/voucherhub/pkg/logger"
	"github.com/shashiranjanraj/voucherhub/pkg/metrics"
)

// DefaultSystemPrompt frames the assistant for shop customers.
const DefaultSystemPrompt = "You are the VoucherHub assistant. Answer questions about vouchers, points and orders briefly and politely."

// ChatInput is the /ai/chat payload.
type ChatInput struct {
	Prompt string `json:"prompt" validate:"max=4000"`
}

type ChatService struct {
	llm    llm.Completer
	system string
}

// NewChatService wraps completer. A nil completer makes every call fail
// with llm.ErrNotConfigured.
func NewChatService(completer llm.Completer, system string) *ChatService {
	if system == "" {
		system = DefaultSystemPrompt
	}
	return &ChatService{llm: completer, system: system}
}

// Reply forwards prompt and returns the provider text with reasoning blocks
// removed.
func (s *ChatService) Reply(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", invalid("prompt", "The prompt field is required.")
	}
	if s.llm == nil {
		return "", llm.ErrNotConfigured
	}

	start := time.Now()
	raw, err := s.llm.Complete(ctx, s.system, prompt)
	metrics.RecordAI(s.llm.Provider(), err, start)
	if err != nil {
		logger.WithCtx(ctx).Error("ai chat failed", "provider", s.llm.Provider(), "error", err)
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return llm.StripThinking(raw), nil
}
