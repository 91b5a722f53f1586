package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/linguaspark/internal/store"
)

// NewProvider creates a Provider from configuration. The groq provider
// shares client; SDK providers are wrapped with event logging.
func NewProvider(ctx context.Context, cfg Config, client *Client, eventRepo store.EventRepo, log *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "", "groq":
		if client == nil {
			return nil, fmt.Errorf("groq provider requires a client")
		}
		return NewGroqProvider(client), nil
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo == nil {
		return base, nil
	}
	return WithLogging(base, cfg.Provider, eventRepo, log), nil
}
