package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"leadflare/internal/core/port"
)

// Gemini is a port.TextGenerator backed by Google's Gemini API.
type Gemini struct {
	models *genai.Models
	model  string
}

// NewGemini creates a Gemini text generator.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	if apiKey == "" {
		return nil, errors.New("gemini: API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	return &Gemini{models: client.Models, model: model}, nil
}

// Name returns the provider name used in logs.
func (g *Gemini) Name() string {
	return "gemini:" + g.model
}

// GenerateText sends p as a single-turn request with p.System as the system
// instruction.
func (g *Gemini) GenerateText(ctx context.Context, p port.TextPrompt) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(p.Temperature),
		MaxOutputTokens: int32(p.MaxTokens),
	}
	if p.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.System, genai.RoleUser)
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(p.User), cfg)
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", errors.New("gemini: empty response")
	}
	return text, nil
}
