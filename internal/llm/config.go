package llm

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Provider names accepted by DRILLZ_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string `env:"DRILLZ_LLM_PROVIDER"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration `env:"DRILLZ_LLM_TIMEOUT"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `env:"DRILLZ_ANTHROPIC_API_KEY"`
	Model  string `env:"DRILLZ_ANTHROPIC_MODEL"`
}

// OpenAIConfig holds OpenAI-specific configuration. BaseURL targets any
// OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string `env:"DRILLZ_OPENAI_API_KEY"`
	Model   string `env:"DRILLZ_OPENAI_MODEL"`
	BaseURL string `env:"DRILLZ_OPENAI_BASE_URL"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `env:"DRILLZ_GEMINI_API_KEY"`
	Model  string `env:"DRILLZ_GEMINI_MODEL"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `env:"DRILLZ_OPENROUTER_API_KEY"`
	Model   string `env:"DRILLZ_OPENROUTER_MODEL"`
	BaseURL string `env:"DRILLZ_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retries of transient provider failures.
type RetryConfig struct {
	MaxAttempts int           `env:"DRILLZ_LLM_MAX_ATTEMPTS"`
	InitialWait time.Duration `env:"DRILLZ_LLM_INITIAL_WAIT"`
	MaxWait     time.Duration `env:"DRILLZ_LLM_MAX_WAIT"`
	Multiplier  float64
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 60 * time.Second,
	}
}

// ConfigFromEnv overlays DRILLZ_* environment variables on DefaultConfig.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse LLM environment: %w", err)
	}
	return cfg, nil
}

// vendorKeys are the API key variables each vendor's own tooling reads.
type vendorKeys struct {
	Gemini     string `env:"GEMINI_API_KEY"`
	OpenAI     string `env:"OPENAI_API_KEY"`
	Anthropic  string `env:"ANTHROPIC_API_KEY"`
	OpenRouter string `env:"OPENROUTER_API_KEY"`
}

// DiscoverConfig checks the vendor API key variables (Gemini, OpenAI,
// Anthropic, OpenRouter, in that order) and returns a Config for the first
// one set. It returns false when none is.
func DiscoverConfig() (Config, bool) {
	var keys vendorKeys
	if err := env.Parse(&keys); err != nil {
		return Config{}, false
	}

	cfg := DefaultConfig()
	switch {
	case keys.Gemini != "":
		cfg.Provider = ProviderGemini
		cfg.Gemini.APIKey = keys.Gemini
	case keys.OpenAI != "":
		cfg.Provider = ProviderOpenAI
		cfg.OpenAI.APIKey = keys.OpenAI
	case keys.Anthropic != "":
		cfg.Provider = ProviderAnthropic
		cfg.Anthropic.APIKey = keys.Anthropic
	case keys.OpenRouter != "":
		cfg.Provider = ProviderOpenRouter
		cfg.OpenRouter.APIKey = keys.OpenRouter
	default:
		return Config{}, false
	}
	return cfg, true
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	var key, name string
	switch c.Provider {
	case ProviderAnthropic:
		key, name = c.Anthropic.APIKey, "DRILLZ_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, name = c.OpenAI.APIKey, "DRILLZ_OPENAI_API_KEY"
	case ProviderGemini:
		key, name = c.Gemini.APIKey, "DRILLZ_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, name = c.OpenRouter.APIKey, "DRILLZ_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%s is required for the %s provider", name, c.Provider)
	}
	return nil
}
