package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, DefaultTemperature, config.Temperature)
}

func TestNewConfig(t *testing.T) {
	config := NewConfig("genai", map[string]string{"standard": "custom-flash", "lite": ""}, 15*time.Second)

	assert.Equal(t, ProviderGenAI, config.Provider)
	assert.Equal(t, "custom-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, 15*time.Second, config.Timeout)
}

func TestNewConfig_KeepsDefaults(t *testing.T) {
	config := NewConfig("", nil, 0)

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, 60*time.Second, config.Timeout)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
	assert.Equal(t, config.Timeout, newConfig.Timeout)
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(t.Context(), DefaultConfig(), "")
	assert.Error(t, err)

	_, err = NewClient(t.Context(), NewConfig("genai", nil, 0), "")
	assert.Error(t, err)
}

func TestNewClient_UnknownProvider(t *testing.T) {
	_, err := NewClient(t.Context(), NewConfig("openai", nil, 0), "key")
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
