package textgen

import (
	"os"
	"strconv"
)

// Config holds the text-generation endpoint settings used for song
// descriptions. Any OpenAI-compatible completion endpoint works.
type Config struct {
	BaseURL      string  // Base URL of the completion API, optional
	APIKey       string  // Bearer token
	Model        string  // Completion model identifier
	MaxTokens    int     // Upper bound on generated tokens (default 96)
	Temperature  float32 // Sampling temperature (default 0.7)
	HTTPTimeoutS int     // HTTP timeout seconds (default 20)
}

// NewConfig reads from environment variables.
func NewConfig() *Config {
	maxTokens := 96
	if v := os.Getenv("TEXTGEN_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxTokens = n
		}
	}

	timeout := 20
	if v := os.Getenv("TEXTGEN_HTTP_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = n
		}
	}

	temperature := float32(0.7)
	if v := os.Getenv("TEXTGEN_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil && f >= 0 {
			temperature = float32(f)
		}
	}

	model := os.Getenv("TEXTGEN_MODEL")
	if model == "" {
		model = "gpt-3.5-turbo-instruct"
	}

	return &Config{
		BaseURL:      os.Getenv("TEXTGEN_BASE_URL"),
		APIKey:       os.Getenv("TEXTGEN_API_KEY"),
		Model:        model,
		MaxTokens:    maxTokens,
		Temperature:  temperature,
		HTTPTimeoutS: timeout,
	}
}
