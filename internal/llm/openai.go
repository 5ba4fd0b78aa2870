package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/career-mentor/internal/retry"
)

// DefaultOpenAIBaseURL is the public OpenAI API root.
const DefaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient implements Client using OpenAI Chat Completions.
type OpenAIClient struct {
	apiKey     string
	config     *Config
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIClient constructs a new OpenAI client. Request deadlines come from the caller's context.
func NewOpenAIClient(config *Config, apiKey string) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if config == nil {
		config = DefaultOpenAIConfig()
	}
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOpenAIBaseURL
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		config:     config,
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature *float32      `json:"temperature,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateContent sends prompt as a single user message.
func (c *OpenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	temp := c.config.temperature()
	payload, err := json.Marshal(chatRequest{
		Model:       modelName,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: &temp,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read openai response: %w", err)
	}

	var parsed chatResponse
	parseErr := json.Unmarshal(body, &parsed)

	if resp.StatusCode != http.StatusOK {
		msg := strings.TrimSpace(string(body))
		if parseErr == nil && parsed.Error != nil {
			msg = parsed.Error.Message
		}
		return "", &retry.StatusError{StatusCode: resp.StatusCode, Body: msg}
	}
	if parseErr != nil {
		return "", fmt.Errorf("openai response parse: %w", parseErr)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	return content, nil
}

// GetModel returns the model name for a tier
func (c *OpenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the HTTP client holds no dedicated resources.
func (c *OpenAIClient) Close() error {
	return nil
}

var _ Client = (*OpenAIClient)(nil)
var _ Client = (*GeminiClient)(nil)
