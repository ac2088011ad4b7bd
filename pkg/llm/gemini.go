package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// Gemini calls Google's Gemini API through the GenAI SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates the SDK client. AI_BASE_URL is ignored; the model
// falls back to gemini-2.5-flash when AI_MODEL is still the OpenAI default.
func NewGemini(ctx context.Context, cfg Config) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm/gemini: create client: %w", err)
	}

	model := cfg.Model
	if model == "" || !isGeminiModel(model) {
		model = defaultGeminiModel
	}
	return &Gemini{client: client, model: model}, nil
}

func isGeminiModel(m string) bool {
	return len(m) >= 6 && m[:6] == "gemini"
}

func (g *Gemini) Provider() string { return "gemini" }

func (g *Gemini) Complete(ctx context.Context, system, prompt string) (string, error) {
	var cfg *genai.GenerateContentConfig
	if system != "" {
		cfg = &genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model,
		[]*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}, cfg)
	if err != nil {
		return "", fmt.Errorf("llm/gemini: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("llm/gemini: empty response")
	}
	return text, nil
}
