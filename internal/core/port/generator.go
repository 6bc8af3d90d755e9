package port

import "context"

// TextPrompt is a single chat-style completion request.
type TextPrompt struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float32
}

// TextGenerator is an outbound port to a generative text provider.
type TextGenerator interface {
	// Name identifies the provider in logs.
	Name() string
	// GenerateText returns the raw completion text.
	GenerateText(ctx context.Context, p TextPrompt) (string, error)
}

// ImageGenerator is an outbound port to a generative image provider.
type ImageGenerator interface {
	Name() string
	// GenerateImage returns the URL of an image rendered from prompt.
	GenerateImage(ctx context.Context, prompt string) (string, error)
}
