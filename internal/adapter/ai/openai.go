package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/tidwall/gjson"

	"leadflare/internal/core/port"
)

// OpenAIConfig configures an OpenAI-compatible provider.
type OpenAIConfig struct {
	APIKey     string
	BaseURL    string
	ChatModel  string
	ImageModel string
	Timeout    time.Duration
	RetryMax   int
}

// OpenAI talks to an OpenAI-compatible REST API. It serves as both a
// port.TextGenerator (chat completions) and a port.ImageGenerator (image
// generations). Transient failures are retried by go-retryablehttp.
type OpenAI struct {
	cfg    OpenAIConfig
	client *retryablehttp.Client
}

// NewOpenAI creates an OpenAI client. Retries are logged through logger.
func NewOpenAI(cfg OpenAIConfig, logger *slog.Logger) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openai: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com/v1"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ChatModel == "" {
		cfg.ChatModel = "gpt-4"
	}
	if cfg.ImageModel == "" {
		cfg.ImageModel = "dall-e-3"
	}

	client := retryablehttp.NewClient()
	client.RetryMax = cfg.RetryMax
	client.RetryWaitMin = 200 * time.Millisecond
	client.RetryWaitMax = 2 * time.Second
	client.HTTPClient.Timeout = cfg.Timeout
	client.ErrorHandler = retryablehttp.PassthroughErrorHandler
	client.Logger = nil
	if logger != nil {
		client.Logger = logger
	}

	return &OpenAI{cfg: cfg, client: client}, nil
}

// Name returns the provider name used in logs.
func (o *OpenAI) Name() string {
	return "openai:" + o.cfg.ChatModel
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float32       `json:"temperature"`
}

// GenerateText calls the chat completions endpoint and returns the first
// choice.
func (o *OpenAI) GenerateText(ctx context.Context, p port.TextPrompt) (string, error) {
	req := chatRequest{
		Model:       o.cfg.ChatModel,
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	}
	if p.System != "" {
		req.Messages = append(req.Messages, chatMessage{Role: "system", Content: p.System})
	}
	req.Messages = append(req.Messages, chatMessage{Role: "user", Content: p.User})

	body, err := o.post(ctx, "/chat/completions", req)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(gjson.GetBytes(body, "choices.0.message.content").String())
	if text == "" {
		return "", errors.New("openai: response has no content")
	}
	return text, nil
}

type imageRequest struct {
	Model   string `json:"model"`
	Prompt  string `json:"prompt"`
	N       int    `json:"n"`
	Size    string `json:"size"`
	Quality string `json:"quality"`
}

// GenerateImage renders one 1024x1024 image and returns its URL.
func (o *OpenAI) GenerateImage(ctx context.Context, prompt string) (string, error) {
	body, err := o.post(ctx, "/images/generations", imageRequest{
		Model:   o.cfg.ImageModel,
		Prompt:  prompt,
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
	})
	if err != nil {
		return "", err
	}
	url := gjson.GetBytes(body, "data.0.url").String()
	if url == "" {
		return "", errors.New("openai: response has no image url")
	}
	return url, nil
}

func (o *OpenAI) post(ctx context.Context, path string, payload any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.cfg.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openai: %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := gjson.GetBytes(body, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &StatusError{Code: resp.StatusCode, Message: msg}
	}
	return body, nil
}

// StatusError is returned when the provider answers with a non-200 status.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("openai: status %d: %s", e.Code, e.Message)
}
