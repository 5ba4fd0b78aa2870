package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyResponse is returned when a model answers without any text.
var ErrEmptyResponse = errors.New("model returned no text")

// GeminiClient talks to Google Gemini through generative-ai-go.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient opens a Gemini API client. No request is made until GenerateContent.
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultGeminiConfig()
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, config: config}, nil
}

// GenerateContent sends prompt as a single-turn request to the model for tier.
func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	name := c.config.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(name)
	model.SetTemperature(c.config.temperature())

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if resp != nil && resp.UsageMetadata != nil {
		slog.Debug("gemini usage",
			slog.String("model", name),
			slog.Int("prompt_tokens", int(resp.UsageMetadata.PromptTokenCount)),
			slog.Int("total_tokens", int(resp.UsageMetadata.TotalTokenCount)),
		)
	}
	return geminiText(resp)
}

// GetModel returns the Gemini model that serves tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// geminiText joins the text parts of the first candidate.
// A blocked prompt or candidate is reported with its reason.
func geminiText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", ErrEmptyResponse
	}
	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockReasonUnspecified {
		return "", fmt.Errorf("prompt blocked: %s", fb.BlockReason)
	}
	if len(resp.Candidates) == 0 {
		return "", ErrEmptyResponse
	}

	cand := resp.Candidates[0]
	if cand.Content == nil {
		if cand.FinishReason == genai.FinishReasonSafety {
			return "", fmt.Errorf("response blocked: %s", cand.FinishReason)
		}
		return "", ErrEmptyResponse
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
