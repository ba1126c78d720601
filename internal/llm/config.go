package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	Provider string

	Anthropic  ProviderConfig
	OpenAI     ProviderConfig
	Gemini     ProviderConfig
	OpenRouter ProviderConfig
	Retry      RetryConfig

	// Timeout bounds a single request including retries.
	Timeout time.Duration
}

// ProviderConfig holds the credentials and model for one provider.
type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, OpenAI-compatible APIs only
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  ProviderConfig{Model: "claude-haiku"},
		OpenAI:     ProviderConfig{Model: "gpt-4o-mini"},
		Gemini:     ProviderConfig{Model: "gemini-flash"},
		OpenRouter: ProviderConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// section returns the per-provider config for name, or nil.
func (c *Config) section(name string) *ProviderConfig {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	}
	return nil
}

// envPrefix maps provider names to their EXAMIZ_* variable prefix.
var envPrefix = map[string]string{
	ProviderAnthropic:  "EXAMIZ_ANTHROPIC",
	ProviderOpenAI:     "EXAMIZ_OPENAI",
	ProviderGemini:     "EXAMIZ_GEMINI",
	ProviderOpenRouter: "EXAMIZ_OPENROUTER",
}

// ConfigFromEnv builds a Config from EXAMIZ_* variables, falling back to
// defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if p := os.Getenv("EXAMIZ_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}
	for name, prefix := range envPrefix {
		sec := cfg.section(name)
		if k := os.Getenv(prefix + "_API_KEY"); k != "" {
			sec.APIKey = k
		}
		if m := os.Getenv(prefix + "_MODEL"); m != "" {
			sec.Model = m
		}
		if u := os.Getenv(prefix + "_BASE_URL"); u != "" {
			sec.BaseURL = u
		}
	}
	return cfg
}

// discoveryOrder lists the standard key variables probed by DiscoverConfig.
var discoveryOrder = []struct {
	provider string
	env      string
}{
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// DiscoverConfig probes the standard API key variables and returns a Config
// for the first provider whose key is found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	for _, d := range discoveryOrder {
		if k := os.Getenv(d.env); k != "" {
			cfg.Provider = d.provider
			cfg.section(d.provider).APIKey = k
			return cfg, true
		}
	}
	return Config{}, false
}

// ResolveConfig prefers explicit EXAMIZ_* settings and falls back to
// discovery. ok is false when no provider is usable.
func ResolveConfig() (Config, bool) {
	cfg := ConfigFromEnv()
	if cfg.Validate() == nil {
		return cfg, true
	}
	return DiscoverConfig()
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	prefix, ok := envPrefix[c.Provider]
	if !ok {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.section(c.Provider).APIKey == "" {
		return fmt.Errorf("%s_API_KEY is required for the %s provider", prefix, c.Provider)
	}
	return nil
}
