package llm

import (
	"math"
	"testing"
)

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"EXAMIZ_LLM_PROVIDER",
		"EXAMIZ_ANTHROPIC_API_KEY", "EXAMIZ_OPENAI_API_KEY", "EXAMIZ_GEMINI_API_KEY", "EXAMIZ_OPENROUTER_API_KEY",
		"EXAMIZ_OPENAI_MODEL", "EXAMIZ_OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("EXAMIZ_LLM_PROVIDER", "openai")
	t.Setenv("EXAMIZ_OPENAI_API_KEY", "sk-test")
	t.Setenv("EXAMIZ_OPENAI_MODEL", "gpt-4.1-mini")
	t.Setenv("EXAMIZ_OPENAI_BASE_URL", "http://localhost:8080/v1")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("expected openai, got %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-mini" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Fatalf("unexpected openai section %+v", cfg.OpenAI)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("expected default anthropic model, got %q", cfg.Anthropic.Model)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}
}

func TestDiscoverConfig(t *testing.T) {
	clearProviderEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider without keys")
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENROUTER_API_KEY", "or-key")
	cfg, ok := DiscoverConfig()
	if !ok {
		t.Fatal("expected a provider to be discovered")
	}
	if cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g-key" {
		t.Fatalf("expected gemini to win discovery, got %+v", cfg)
	}
}

func TestResolveConfig_PrefersExplicit(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("EXAMIZ_LLM_PROVIDER", "openrouter")
	t.Setenv("EXAMIZ_OPENROUTER_API_KEY", "or-key")

	cfg, ok := ResolveConfig()
	if !ok || cfg.Provider != ProviderOpenRouter {
		t.Fatalf("expected explicit openrouter config, got %q ok=%v", cfg.Provider, ok)
	}

	t.Setenv("EXAMIZ_OPENROUTER_API_KEY", "")
	cfg, ok = ResolveConfig()
	if !ok || cfg.Provider != ProviderAnthropic {
		t.Fatalf("expected discovery fallback to anthropic, got %q ok=%v", cfg.Provider, ok)
	}
}

func TestLookupCost(t *testing.T) {
	if LookupCost("gpt-4o-mini") == nil {
		t.Fatal("expected pricing for gpt-4o-mini")
	}
	c := LookupCost("google/gemini-2.0-flash-001")
	if c == nil {
		t.Fatal("expected OpenRouter id to resolve to bare model pricing")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected $0.50, got %v", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Fatal("expected nil for unknown model")
	}
}
