package extraction

import (
	"regexp"
	"strings"
)

var (
	horizontalSpace = regexp.MustCompile(`[ \t\f\v\x{00A0}]+`)
	blankLineRuns   = regexp.MustCompile(`\n{3,}`)
)

// NormalizeText cleans extracted text while preserving line structure:
// line endings become LF, runs of horizontal whitespace collapse to one space,
// lines are trimmed and at most one blank line separates paragraphs.
func NormalizeText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(horizontalSpace.ReplaceAllString(line, " "))
	}

	result := strings.Join(lines, "\n")
	result = blankLineRuns.ReplaceAllString(result, "\n\n")
	return strings.TrimSpace(result)
}
