package assistant

import (
	"os"
	"strconv"
)

// Config holds all configuration for the assistant gateway.
type Config struct {
	Enabled     bool
	LogCalls    bool
	Endpoint    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
	TimeoutMs   int
	MaxRetries  int
}

// DefaultConfig returns a Config with sensible defaults.
// The assistant is enabled by default; sessions without it are a
// deployment choice, not the common case.
func DefaultConfig() Config {
	return Config{
		Enabled:     true,
		LogCalls:    false,
		Endpoint:    "https://api.openai.com",
		Model:       "gpt-4o-mini",
		Temperature: 0.7,
		MaxTokens:   1024,
		TimeoutMs:   30000,
		MaxRetries:  1,
	}
}

// LoadConfig reads assistant configuration from environment variables,
// falling back to defaults for any unset values. The API key is read
// once at startup and never re-read.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("STUDYFLOW_ASSISTANT_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.Temperature = f
		}
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxTokens = n
		}
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("STUDYFLOW_ASSISTANT_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxRetries = n
		}
	}

	return cfg
}
