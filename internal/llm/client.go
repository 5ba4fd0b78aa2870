package llm

import (
	"context"
	"fmt"
)

// Client is the text-generation surface the advisor needs from a provider.
type Client interface {
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel returns the provider model name that serves tier
	GetModel(tier ModelTier) string
	Close() error
}

// NewClient returns the provider client named by config.Provider.
// A nil config selects Gemini with default models.
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultGeminiConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%s: API key is required", config.Provider)
	}

	switch config.Provider {
	case ProviderOpenAI:
		return NewOpenAIClient(config, apiKey)
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}
