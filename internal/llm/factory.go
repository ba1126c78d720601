package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/examiz/internal/logging"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → retry → events → base.
func NewProvider(ctx context.Context, cfg Config, recorder EventRecorder, logger *logging.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logging.OrNop(logger).Info("llm provider ready", "provider", base.Name(), "model", base.ModelID())
	return WithRetry(WithEvents(base, recorder, logger), cfg.Retry, logger), nil
}
