package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `{"key": "value"}`,
			expected: `{"key": "value"}`,
		},
		{
			name:     "preamble before JSON object",
			input:    "As requested, here is the JSON:\n{\"name\": \"Jane\"}",
			expected: `{"name": "Jane"}`,
		},
		{
			name:     "preamble before JSON array",
			input:    "Here are the skills:\n[\"Go\", \"SQL\"]",
			expected: `["Go", "SQL"]`,
		},
		{
			name:     "JSON with trailing text",
			input:    "{\"key\": \"value\"}\n\nLet me know if you need anything else!",
			expected: `{"key": "value"}`,
		},
		{
			name:     "JSON with escaped quotes",
			input:    "Result: {\"message\": \"He said \\\"hello\\\"\"}",
			expected: `{"message": "He said \"hello\""}`,
		},
		{
			name:     "no JSON",
			input:    "  nothing here  ",
			expected: "nothing here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"nested objects", `{"outer": {"inner": "value"}}`, `{"outer": {"inner": "value"}}`},
		{"object with trailing text", `{"key": "value"} and more`, `{"key": "value"}`},
		{"string with braces inside", `{"template": "Hello {name}!"}`, `{"template": "Hello {name}!"}`},
		{"unbalanced", `{"key": "value"`, ""},
		{"empty input", "", ""},
		{"not starting with brace", "not json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractJSONObject(tt.input))
		})
	}
}

func TestExtractJSONArray(t *testing.T) {
	assert.Equal(t, `[[1, 2], [3, 4]]`, extractJSONArray(`[[1, 2], [3, 4]] extra`))
	assert.Equal(t, `[{"id": 1}, {"id": 2}]`, extractJSONArray(`[{"id": 1}, {"id": 2}]`))
	assert.Equal(t, "", extractJSONArray("not array"))
}
