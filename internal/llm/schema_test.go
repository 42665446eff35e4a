package llm

import (
	"testing"

	gemini "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func sampleSchema() *Schema {
	return Object("resume", map[string]*Schema{
		"name":   String("full name"),
		"skills": StringArray("skills"),
		"jobs": ArrayOf("positions", Object("", map[string]*Schema{
			"company": String(""),
			"current": {Type: TypeBoolean, Nullable: true},
		}, "company")),
	}, "name")
}

func TestToGeminiSchema(t *testing.T) {
	out := toGeminiSchema(sampleSchema())
	require.NotNil(t, out)

	assert.Equal(t, gemini.TypeObject, out.Type)
	assert.Equal(t, []string{"name"}, out.Required)
	assert.Equal(t, gemini.TypeString, out.Properties["name"].Type)
	assert.Equal(t, gemini.TypeArray, out.Properties["skills"].Type)
	assert.Equal(t, gemini.TypeString, out.Properties["skills"].Items.Type)

	job := out.Properties["jobs"].Items
	assert.Equal(t, []string{"company"}, job.Required)
	assert.True(t, job.Properties["current"].Nullable)
	assert.Nil(t, toGeminiSchema(nil))
}

func TestToGenAISchema(t *testing.T) {
	out := toGenAISchema(sampleSchema())
	require.NotNil(t, out)

	assert.Equal(t, genai.TypeObject, out.Type)
	assert.Equal(t, "resume", out.Description)
	assert.Equal(t, genai.TypeArray, out.Properties["skills"].Type)

	current := out.Properties["jobs"].Items.Properties["current"]
	assert.Equal(t, genai.TypeBoolean, current.Type)
	require.NotNil(t, current.Nullable)
	assert.True(t, *current.Nullable)
	assert.Nil(t, out.Properties["name"].Nullable)
}
