// Package advisor sends prompts to a remote language model on behalf of the mentor.
//
// Generate reports failures as *ExternalServiceError. Advise applies the
// degrade policy: callers always get text, either the model's answer or an
// inline diagnostic such as "[Gemini Error] quota exceeded".
package advisor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/jonathan/career-mentor/internal/llm"
	"github.com/jonathan/career-mentor/internal/retry"
)

// Backend selects the language model provider.
type Backend string

// Supported backends
const (
	BackendGemini Backend = "gemini"
	BackendOpenAI Backend = "openai"
)

// DefaultTimeout bounds each model call.
const DefaultTimeout = 60 * time.Second

// ParseBackend resolves a selector case-insensitively. Anything other than
// "openai" selects Gemini.
func ParseBackend(name string) Backend {
	if strings.EqualFold(strings.TrimSpace(name), string(BackendOpenAI)) {
		return BackendOpenAI
	}
	return BackendGemini
}

// DisplayName is the user-facing provider name.
func (b Backend) DisplayName() string {
	switch b {
	case BackendOpenAI:
		return "OpenAI"
	default:
		return "Gemini"
	}
}

// Options configures a Gateway.
type Options struct {
	Tier    llm.ModelTier
	Timeout time.Duration
	Retry   retry.Config
}

// Gateway routes prompts to registered llm clients.
type Gateway struct {
	mu      sync.RWMutex
	clients map[Backend]llm.Client
	opts    Options
}

// NewGateway creates a Gateway with no backends registered.
func NewGateway(opts Options) *Gateway {
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Retry == (retry.Config{}) {
		opts.Retry = retry.Default
	}
	return &Gateway{clients: make(map[Backend]llm.Client), opts: opts}
}

// Register attaches a client to a backend, replacing any previous one.
func (g *Gateway) Register(b Backend, c llm.Client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[b] = c
}

// Backends lists the configured backends, Gemini first.
func (g *Gateway) Backends() []Backend {
	g.mu.RLock()
	defer g.mu.RUnlock()
	var out []Backend
	for _, b := range []Backend{BackendGemini, BackendOpenAI} {
		if _, ok := g.clients[b]; ok {
			out = append(out, b)
		}
	}
	return out
}

// Resolve returns the backend that will serve a request for requested.
// OpenAI falls back to Gemini when it has no client.
func (g *Gateway) Resolve(requested Backend) Backend {
	g.mu.RLock()
	defer g.mu.RUnlock()
	if requested == BackendOpenAI {
		if _, ok := g.clients[BackendOpenAI]; ok {
			return BackendOpenAI
		}
	}
	return BackendGemini
}

// Model returns the model name that serves requested, or "" when unconfigured.
func (g *Gateway) Model(requested Backend) string {
	b := g.Resolve(requested)
	g.mu.RLock()
	defer g.mu.RUnlock()
	if c, ok := g.clients[b]; ok {
		return c.GetModel(g.opts.Tier)
	}
	return ""
}

// Generate sends prompt to the resolved backend with a bounded timeout and
// retries on transient errors.
func (g *Gateway) Generate(ctx context.Context, prompt string, requested Backend) (string, error) {
	return g.GenerateTier(ctx, prompt, requested, g.opts.Tier)
}

// GenerateTier is Generate with an explicit model tier.
func (g *Gateway) GenerateTier(ctx context.Context, prompt string, requested Backend, tier llm.ModelTier) (string, error) {
	b := g.Resolve(requested)

	g.mu.RLock()
	client, ok := g.clients[b]
	g.mu.RUnlock()
	if !ok {
		return "", &ExternalServiceError{Backend: b, Err: ErrNotConfigured}
	}

	ctx, cancel := context.WithTimeout(ctx, g.opts.Timeout)
	defer cancel()

	text, err := retry.Do(ctx, g.opts.Retry, func() (string, error) {
		return client.GenerateContent(ctx, prompt, tier)
	})
	if err != nil {
		return "", &ExternalServiceError{Backend: b, Err: err}
	}
	return strings.TrimSpace(text), nil
}

// Advise is Generate with failures rendered as an inline diagnostic string.
func (g *Gateway) Advise(ctx context.Context, prompt string, requested Backend) string {
	return g.AdviseTier(ctx, prompt, requested, g.opts.Tier)
}

// AdviseTier is Advise with an explicit model tier.
func (g *Gateway) AdviseTier(ctx context.Context, prompt string, requested Backend, tier llm.ModelTier) string {
	text, err := g.GenerateTier(ctx, prompt, requested, tier)
	if err == nil {
		return text
	}
	var svcErr *ExternalServiceError
	if errors.As(err, &svcErr) {
		slog.Warn("advisor call degraded",
			slog.String("backend", string(svcErr.Backend)),
			slog.Any("error", svcErr.Err),
		)
		return svcErr.Diagnostic()
	}
	return "[" + requested.DisplayName() + " Error] " + err.Error()
}

// Close releases every registered client.
func (g *Gateway) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	var errs []error
	for b, c := range g.clients {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
		delete(g.clients, b)
	}
	return errors.Join(errs...)
}
