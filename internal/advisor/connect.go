package advisor

import (
	"context"
	"log/slog"

	"github.com/jonathan/career-mentor/internal/llm"
)

// Keys holds provider API keys. An empty key leaves that backend unconfigured.
type Keys struct {
	Gemini string
	OpenAI string
}

// Connect builds a Gateway and registers a client for every backend that has a key.
// A backend whose client cannot be created is logged and left unconfigured.
func Connect(ctx context.Context, opts Options, keys Keys, gemini, openai *llm.Config) *Gateway {
	g := NewGateway(opts)
	if gemini == nil {
		gemini = llm.DefaultGeminiConfig()
	}
	if openai == nil {
		openai = llm.DefaultOpenAIConfig()
	}

	if keys.Gemini != "" {
		if c, err := llm.NewClient(ctx, gemini, keys.Gemini); err != nil {
			slog.Warn("gemini backend unavailable", slog.Any("error", err))
		} else {
			g.Register(BackendGemini, c)
		}
	}
	if keys.OpenAI != "" {
		if c, err := llm.NewClient(ctx, openai, keys.OpenAI); err != nil {
			slog.Warn("openai backend unavailable", slog.Any("error", err))
		} else {
			g.Register(BackendOpenAI, c)
		}
	}
	return g
}
