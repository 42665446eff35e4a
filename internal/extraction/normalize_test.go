package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText_NormalizeWhitespace(t *testing.T) {
	result := NormalizeText("Line    with \t  multiple  spaces   ")

	assert.Equal(t, "Line with multiple spaces", result)
}

func TestNormalizeText_CollapsesBlankLines(t *testing.T) {
	result := NormalizeText("Line 1\n\n\n\n\nLine 2\n  \n \nLine 3")

	assert.Equal(t, "Line 1\n\nLine 2\n\nLine 3", result)
}

func TestNormalizeText_NormalizeLineEndings(t *testing.T) {
	result := NormalizeText("Line 1\r\nLine 2\rLine 3\nLine 4")

	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestNormalizeText_Trims(t *testing.T) {
	assert.Equal(t, "content", NormalizeText("\n\n   content  \n\n"))
	assert.Equal(t, "", NormalizeText(""))
	assert.Equal(t, "", NormalizeText(" \n\t\n "))
}

func TestNormalizeText_DeterministicOutput(t *testing.T) {
	input := "Test content   with   spaces\n\n\nMultiple   blank   lines"

	first := NormalizeText(input)
	assert.Equal(t, first, NormalizeText(first))
}
