package configs

import "time"

// AI configures the generative providers used by the creative generator.
// A provider without an API key is left out of the fallback chain; with no
// keys at all the generator serves static content only.
type AI struct {
	// GeminiAPIKey enables Gemini as the primary text provider.
	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash"`

	// OpenAIAPIKey enables the OpenAI-compatible provider as the secondary
	// text provider and as the image provider.
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	OpenAIChatModel  string `env:"OPENAI_CHAT_MODEL" envDefault:"gpt-4"`
	OpenAIImageModel string `env:"OPENAI_IMAGE_MODEL" envDefault:"dall-e-3"`

	// Timeout bounds a single provider call including retries.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"30s"`
	// RetryMax is the number of retries on transient HTTP failures.
	RetryMax int `env:"RETRY_MAX" envDefault:"2"`
}
