// Package llm provides centralized LLM configuration and client abstractions.
// Clients are selected by provider and address models by capability tier.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider SDK
type Provider string

const (
	// ProviderGemini uses github.com/google/generative-ai-go
	ProviderGemini Provider = "gemini"
	// ProviderGenAI uses the unified google.golang.org/genai SDK
	ProviderGenAI Provider = "genai"
)

// DefaultTemperature keeps extraction output stable across calls.
const DefaultTemperature float32 = 0.1

// Config holds the model configuration for the application
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature float32
	Timeout     time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature: DefaultTemperature,
		Timeout:     60 * time.Second,
	}
}

// NewConfig builds a Config from loosely typed settings. Tiers missing from
// models keep their defaults.
func NewConfig(provider string, models map[string]string, timeout time.Duration) *Config {
	cfg := DefaultConfig()
	if provider != "" {
		cfg.Provider = Provider(provider)
	}
	for tier, model := range models {
		if model != "" {
			cfg.Models[ModelTier(tier)] = model
		}
	}
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	return cfg
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string),
		Temperature: c.Temperature,
		Timeout:     c.Timeout,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
