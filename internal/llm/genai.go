package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GenAIClient implements Client on the unified Google GenAI SDK.
type GenAIClient struct {
	client *genai.Client
	config *Config
}

// NewGenAIClient creates a client for the Gemini API backend.
func NewGenAIClient(ctx context.Context, config *Config, apiKey string) (*GenAIClient, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GenAIClient{client: client, config: config}, nil
}

// GenerateContent generates text content using the specified model tier
func (c *GenAIClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, c.baseConfig())
}

// GenerateJSON generates JSON content using the specified model tier
func (c *GenAIClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	cfg := c.baseConfig()
	cfg.ResponseMIMEType = "application/json"

	text, err := c.generate(ctx, prompt, tier, cfg)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GenerateStructured generates JSON constrained by schema
func (c *GenAIClient) GenerateStructured(ctx context.Context, prompt string, schema *Schema, tier ModelTier) (string, error) {
	cfg := c.baseConfig()
	cfg.ResponseMIMEType = "application/json"
	cfg.ResponseSchema = toGenAISchema(schema)

	text, err := c.generate(ctx, prompt, tier, cfg)
	if err != nil {
		return "", err
	}
	return CleanJSONBlock(text), nil
}

// GetModel returns the model name for a tier
func (c *GenAIClient) GetModel(tier ModelTier) string {
	return c.config.GetModel(tier)
}

// Close is a no-op; the SDK holds no long-lived connections.
func (c *GenAIClient) Close() error {
	return nil
}

func (c *GenAIClient) baseConfig() *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{Temperature: genai.Ptr(c.config.Temperature)}
}

func (c *GenAIClient) generate(ctx context.Context, prompt string, tier ModelTier, cfg *genai.GenerateContentConfig) (string, error) {
	modelName := c.config.GetModel(tier)
	if modelName == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return joinCandidateText(resp)
}

func joinCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("empty response")
	}

	var builder strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part == nil || part.Thought || part.Text == "" {
				continue
			}
			builder.WriteString(part.Text)
		}
		// only the first candidate with content is used
		if builder.Len() > 0 {
			break
		}
	}

	output := strings.TrimSpace(builder.String())
	if output == "" {
		return "", errors.New("model returned empty response")
	}
	return output, nil
}

func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Enum:        s.Enum,
		Items:       toGenAISchema(s.Items),
		Required:    s.Required,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}

func genaiType(t SchemaType) genai.Type {
	switch t {
	case TypeString:
		return genai.TypeString
	case TypeNumber:
		return genai.TypeNumber
	case TypeInteger:
		return genai.TypeInteger
	case TypeBoolean:
		return genai.TypeBoolean
	case TypeArray:
		return genai.TypeArray
	case TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeUnspecified
	}
}
