// Package llm provides centralized LLM configuration and client abstractions
// for the Gemini and OpenAI backends.
package llm

import "maps"

// ModelTier selects how capable, and how expensive, a model should be.
type ModelTier string

const (
	// TierLite answers short classification prompts such as job-level inference.
	TierLite ModelTier = "lite"
	// TierStandard serves advice, roadmaps and interview questions.
	TierStandard ModelTier = "standard"
	// TierAdvanced is for long-form planning.
	TierAdvanced ModelTier = "advanced"
)

// Provider names an LLM vendor.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// DefaultTemperature is used when a Config leaves Temperature unset.
const DefaultTemperature float32 = 0.7

// Config maps tiers to one provider's model names.
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	// BaseURL overrides the provider endpoint. Only honoured by OpenAI.
	BaseURL string
}

var defaultModels = map[Provider]map[ModelTier]string{
	ProviderGemini: {
		TierLite:     "gemini-2.5-flash-lite",
		TierStandard: "gemini-2.5-flash",
		TierAdvanced: "gemini-2.5-pro",
	},
	ProviderOpenAI: {
		TierLite:     "gpt-4o-mini",
		TierStandard: "gpt-4o-mini",
		TierAdvanced: "gpt-4o",
	},
}

// DefaultConfigFor returns the default configuration for p. Unknown providers get Gemini.
func DefaultConfigFor(p Provider) *Config {
	if _, ok := defaultModels[p]; !ok {
		p = ProviderGemini
	}
	c := &Config{
		Provider:    p,
		Models:      maps.Clone(defaultModels[p]),
		Temperature: DefaultTemperature,
	}
	if p == ProviderOpenAI {
		c.BaseURL = DefaultOpenAIBaseURL
	}
	return c
}

// DefaultGeminiConfig returns the Gemini defaults.
func DefaultGeminiConfig() *Config { return DefaultConfigFor(ProviderGemini) }

// DefaultOpenAIConfig returns the OpenAI defaults.
func DefaultOpenAIConfig() *Config { return DefaultConfigFor(ProviderOpenAI) }

// GetModel returns the model for tier. A missing tier falls back to standard,
// then lite, then "".
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if m, ok := c.Models[t]; ok {
			return m
		}
	}
	return ""
}

// WithModel returns a copy of c serving tier with model.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = maps.Clone(c.Models)
	if out.Models == nil {
		out.Models = make(map[ModelTier]string)
	}
	out.Models[tier] = model
	return &out
}

func (c *Config) temperature() float32 {
	if c.Temperature <= 0 {
		return DefaultTemperature
	}
	return c.Temperature
}
